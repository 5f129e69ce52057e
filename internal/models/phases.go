package models

import (
	"fmt"
	"time"
)

// PolicyPhase is a named vehicle-restriction period. Start and End are
// inclusive calendar days at UTC midnight, End >= Start.
type PolicyPhase struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Day builds a calendar day at UTC midnight.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DefaultPhases returns the four Delhi odd-even trial periods.
func DefaultPhases() []PolicyPhase {
	return []PolicyPhase{
		{Name: "Phase 1", Start: Day(2016, time.January, 1), End: Day(2016, time.January, 15)},
		{Name: "Phase 2", Start: Day(2016, time.April, 15), End: Day(2016, time.April, 30)},
		{Name: "Phase 3", Start: Day(2017, time.November, 13), End: Day(2017, time.November, 17)},
		{Name: "Phase 4", Start: Day(2019, time.November, 4), End: Day(2019, time.November, 15)},
	}
}

// DurationDays returns the phase length End-Start in whole days.
func (p PolicyPhase) DurationDays() int {
	return int(p.End.Sub(p.Start) / (24 * time.Hour))
}

// InDuring reports whether d falls inside the active window [Start, End].
func (p PolicyPhase) InDuring(d time.Time) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// InBefore reports whether d falls inside the pre-policy window
// [Start-D-1d, Start), the same length as the phase and directly before it.
func (p PolicyPhase) InBefore(d time.Time) bool {
	lower := p.Start.AddDate(0, 0, -(p.DurationDays() + 1))
	return !d.Before(lower) && d.Before(p.Start)
}

// InControl reports whether d falls inside the prior-year control window
// [Start-1y, End-1y]. The shift is calendar-aware, not a 365-day offset.
func (p PolicyPhase) InControl(d time.Time) bool {
	return !d.Before(p.Start.AddDate(-1, 0, 0)) && !d.After(p.End.AddDate(-1, 0, 0))
}

// ControlYear returns the calendar year the control window falls into.
func (p PolicyPhase) ControlYear() int {
	return p.Start.AddDate(-1, 0, 0).Year()
}

// ClassifyDay resolves the policy status of a single day against a phase set
// that has passed ValidatePhases. Validation guarantees at most one window
// matches, so the scan order carries no precedence semantics.
func ClassifyDay(d time.Time, phases []PolicyPhase) PolicyStatus {
	for _, p := range phases {
		switch {
		case p.InDuring(d):
			return During(p.Name)
		case p.InBefore(d):
			return Before(p.Name)
		case p.InControl(d):
			return Control(p.Name)
		}
	}
	return Normal()
}

// PhaseByName looks up a phase in the set.
func PhaseByName(phases []PolicyPhase, name string) (PolicyPhase, bool) {
	for _, p := range phases {
		if p.Name == name {
			return p, true
		}
	}
	return PolicyPhase{}, false
}

// window is a closed day interval used for overlap checks.
type window struct {
	kind StatusKind
	from time.Time
	to   time.Time
}

// windows returns the three derived closed intervals of a phase. The Before
// window is half-open at Start, so its upper bound is Start-1d.
func (p PolicyPhase) windows() []window {
	return []window{
		{StatusDuring, p.Start, p.End},
		{StatusBefore, p.Start.AddDate(0, 0, -(p.DurationDays() + 1)), p.Start.AddDate(0, 0, -1)},
		{StatusControl, p.Start.AddDate(-1, 0, 0), p.End.AddDate(-1, 0, 0)},
	}
}

func (w window) overlaps(o window) bool {
	return !w.to.Before(o.from) && !o.to.Before(w.from)
}

// ValidatePhases rejects malformed phases, duplicate names, and any overlap
// between derived windows of two different phases. Overlap would make the
// day labels ambiguous, so it is a configuration error rather than a silent
// declaration-order precedence.
func ValidatePhases(phases []PolicyPhase) error {
	if len(phases) == 0 {
		return fmt.Errorf("phase set is empty")
	}
	names := make(map[string]bool, len(phases))
	for _, p := range phases {
		if p.Name == "" {
			return fmt.Errorf("phase with empty name")
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate phase name %q", p.Name)
		}
		names[p.Name] = true
		if p.End.Before(p.Start) {
			return fmt.Errorf("phase %q ends %s before it starts %s",
				p.Name, p.End.Format("2006-01-02"), p.Start.Format("2006-01-02"))
		}
	}
	for i := 0; i < len(phases); i++ {
		for j := i + 1; j < len(phases); j++ {
			for _, wi := range phases[i].windows() {
				for _, wj := range phases[j].windows() {
					if wi.overlaps(wj) {
						return fmt.Errorf("phase %q %s window overlaps phase %q %s window",
							phases[i].Name, wi.kind, phases[j].Name, wj.kind)
					}
				}
			}
		}
	}
	return nil
}
