package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Alternative selects the tail of the rank-sum test.
type Alternative int

const (
	// Less tests whether the first sample is stochastically smaller.
	Less Alternative = iota
	// Greater tests whether the first sample is stochastically larger.
	Greater
	// TwoSided tests for any distributional shift.
	TwoSided
)

// exactLimit bounds the sample sizes for which the exact null distribution
// is enumerated. Above it, or in the presence of ties, the normal
// approximation with tie and continuity corrections is used instead.
const exactLimit = 25

// MannWhitneyResult holds the U statistic of the first sample and the
// p-value for the chosen alternative.
type MannWhitneyResult struct {
	U     float64
	P     float64
	Exact bool
}

// MannWhitneyU runs the Mann-Whitney U rank-sum test of x against y. It is
// distribution-free: only the ranks of the pooled samples matter.
func MannWhitneyU(x, y []float64, alt Alternative) (MannWhitneyResult, error) {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return MannWhitneyResult{}, fmt.Errorf("both samples must be non-empty (got %d and %d)", n1, n2)
	}

	rankSumX, tieTerm := rankSum(x, y)
	u1 := rankSumX - float64(n1*(n1+1))/2
	u2 := float64(n1*n2) - u1

	res := MannWhitneyResult{U: u1}

	if tieTerm == 0 && n1 <= exactLimit && n2 <= exactLimit {
		res.Exact = true
		less := exactCDF(u1, n1, n2)
		greater := exactCDF(u2, n1, n2)
		switch alt {
		case Less:
			res.P = less
		case Greater:
			res.P = greater
		default:
			res.P = math.Min(1, 2*math.Min(less, greater))
		}
		return res, nil
	}

	n := float64(n1 + n2)
	mu := float64(n1*n2) / 2
	sigma := math.Sqrt(float64(n1*n2) / 12 * ((n + 1) - tieTerm/(n*(n-1))))
	if sigma == 0 {
		// Every pooled value is tied; the ranks carry no information.
		res.P = 1
		return res, nil
	}

	norm := distuv.Normal{Mu: 0, Sigma: 1}
	less := norm.CDF((u1 - mu + 0.5) / sigma)
	greater := 1 - norm.CDF((u1 - mu - 0.5) / sigma)
	switch alt {
	case Less:
		res.P = less
	case Greater:
		res.P = greater
	default:
		res.P = math.Min(1, 2*math.Min(less, greater))
	}
	return res, nil
}

// rankSum pools both samples, assigns midranks to ties, and returns the rank
// sum of the first sample together with the tie correction term sum(t^3-t).
func rankSum(x, y []float64) (float64, float64) {
	type obs struct {
		value float64
		first bool
	}
	pooled := make([]obs, 0, len(x)+len(y))
	for _, v := range x {
		pooled = append(pooled, obs{value: v, first: true})
	}
	for _, v := range y {
		pooled = append(pooled, obs{value: v})
	}
	sort.Slice(pooled, func(i, j int) bool { return pooled[i].value < pooled[j].value })

	var sum, tieTerm float64
	for i := 0; i < len(pooled); {
		j := i
		for j < len(pooled) && pooled[j].value == pooled[i].value {
			j++
		}
		t := float64(j - i)
		if t > 1 {
			tieTerm += t*t*t - t
		}
		midrank := float64(i+j+1) / 2 // average of 1-based ranks i+1..j
		for k := i; k < j; k++ {
			if pooled[k].first {
				sum += midrank
			}
		}
		i = j
	}
	return sum, tieTerm
}

// exactCDF returns P(U <= u) under the null for tie-free samples of sizes m
// and n. The counts follow the classic recurrence on the last pooled
// element: f(i,j,u) = f(i-1,j,u-j) + f(i,j-1,u).
func exactCDF(u float64, m, n int) float64 {
	k := int(math.Floor(u))
	if k < 0 {
		return 0
	}
	if k >= m*n {
		return 1
	}

	max := m * n
	// cur[i][v] = number of interleavings of i first-sample and j
	// second-sample values with statistic v, for the current j.
	cur := make([][]float64, m+1)
	for i := range cur {
		cur[i] = make([]float64, max+1)
		cur[i][0] = 1 // j == 0
	}
	for j := 1; j <= n; j++ {
		next := make([][]float64, m+1)
		for i := 0; i <= m; i++ {
			next[i] = make([]float64, max+1)
			for v := 0; v <= max; v++ {
				c := cur[i][v]
				if i > 0 && v >= j {
					c += next[i-1][v-j]
				}
				next[i][v] = c
			}
		}
		cur = next
	}

	var below, total float64
	for v, c := range cur[m] {
		total += c
		if v <= k {
			below += c
		}
	}
	return below / total
}
