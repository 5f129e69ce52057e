package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"airimpact/internal/logger"
	"airimpact/internal/models"
)

var (
	// ErrMissingDataSource marks a missing input file. The tool cannot
	// self-heal a missing file, so callers treat this as fatal.
	ErrMissingDataSource = errors.New("data source missing")

	// ErrDuplicateDate marks a repeated date for the target city.
	ErrDuplicateDate = errors.New("duplicate date")
)

// Required CSV columns, matched case-insensitively against the header row.
const (
	colCity = "city"
	colDate = "date"
	colPM25 = "pm2.5"
	colNO2  = "no2"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Preparer loads, filters, cleans and labels the daily series for one city.
type Preparer struct {
	city   string
	phases []models.PolicyPhase
}

// NewPreparer validates the phase set up front so labeling never has to
// resolve ambiguous windows.
func NewPreparer(city string, phases []models.PolicyPhase) (*Preparer, error) {
	if city == "" {
		return nil, fmt.Errorf("target city not set")
	}
	if err := models.ValidatePhases(phases); err != nil {
		return nil, fmt.Errorf("invalid phase configuration: %w", err)
	}
	return &Preparer{city: city, phases: phases}, nil
}

// PrepareFile runs Prepare against a CSV file on disk.
func (p *Preparer) PrepareFile(path string) ([]models.DailyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingDataSource, path)
		}
		return nil, fmt.Errorf("failed to open data file %s: %w", path, err)
	}
	defer f.Close()

	logger.Infof("Loading data from %s", path)
	return p.Prepare(f)
}

// row is a parsed observation before cleaning. Missing measurements are NaN.
type row struct {
	date time.Time
	pm25 float64
	no2  float64
}

// Prepare reads the raw CSV, keeps rows for the target city, establishes one
// sorted row per date, forward-fills missing PM2.5 and NO2 values, drops any
// leading rows that are still incomplete, and labels every surviving date
// with its policy status.
func (p *Preparer) Prepare(r io.Reader) ([]models.DailyRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("data file is empty")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colCity, colDate, colPM25, colNO2} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv is missing required column %q", required)
		}
	}

	var rows []row
	seen := make(map[time.Time]bool)
	total := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read error at line %d: %w", total+2, err)
		}
		total++

		if !strings.EqualFold(field(record, cols[colCity]), p.city) {
			continue
		}

		date, err := parseDate(field(record, cols[colDate]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", total+1, err)
		}
		if seen[date] {
			return nil, fmt.Errorf("%w: %s for city %s", ErrDuplicateDate, date.Format("2006-01-02"), p.city)
		}
		seen[date] = true

		pm25, err := parseMeasurement(field(record, cols[colPM25]))
		if err != nil {
			return nil, fmt.Errorf("line %d: pm2.5: %w", total+1, err)
		}
		no2, err := parseMeasurement(field(record, cols[colNO2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: no2: %w", total+1, err)
		}

		rows = append(rows, row{date: date, pm25: pm25, no2: no2})
	}

	logger.Infof("Found %d rows for %s out of %d", len(rows), p.city, total)

	sort.Slice(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })
	forwardFill(rows)

	series := make([]models.DailyRecord, 0, len(rows))
	dropped := 0
	for _, r := range rows {
		if math.IsNaN(r.pm25) || math.IsNaN(r.no2) {
			dropped++
			continue
		}
		series = append(series, models.DailyRecord{
			Date:   r.date,
			PM25:   r.pm25,
			NO2:    r.no2,
			Status: models.ClassifyDay(r.date, p.phases),
		})
	}

	if dropped > 0 {
		logger.Infof("Dropped %d leading rows with no prior observation", dropped)
	}
	logger.Infof("Data preparation complete: %d labeled days", len(series))
	return series, nil
}

// forwardFill replaces each missing measurement with the most recent earlier
// observation of the same pollutant. Rows before the first observation stay
// NaN and are dropped by the caller.
func forwardFill(rows []row) {
	lastPM25 := math.NaN()
	lastNO2 := math.NaN()
	for i := range rows {
		if math.IsNaN(rows[i].pm25) {
			rows[i].pm25 = lastPM25
		} else {
			lastPM25 = rows[i].pm25
		}
		if math.IsNaN(rows[i].no2) {
			rows[i].no2 = lastNO2
		} else {
			lastNO2 = rows[i].no2
		}
	}
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseDate accepts ISO dates with an optional time part and normalizes to
// UTC midnight, the partition key of the series.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Day(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// parseMeasurement treats an empty or NA cell as missing; any other
// non-numeric value is a fatal parse error.
func parseMeasurement(s string) (float64, error) {
	if s == "" || strings.EqualFold(s, "na") || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid measurement %q", s)
	}
	return v, nil
}
