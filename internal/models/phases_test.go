package models

import (
	"strings"
	"testing"
	"time"
)

func TestClassifyDayWindows(t *testing.T) {
	phases := DefaultPhases()

	tests := []struct {
		name string
		day  time.Time
		want PolicyStatus
	}{
		{"phase 1 first day", Day(2016, time.January, 1), During("Phase 1")},
		{"phase 1 last day", Day(2016, time.January, 15), During("Phase 1")},
		{"day after phase 1", Day(2016, time.January, 16), Normal()},
		{"day before phase 1 start", Day(2015, time.December, 31), Before("Phase 1")},
		{"before window lower bound", Day(2015, time.December, 17), Before("Phase 1")},
		{"day before the before window", Day(2015, time.December, 16), Normal()},
		{"phase 1 control first day", Day(2015, time.January, 1), Control("Phase 1")},
		{"phase 1 control last day", Day(2015, time.January, 15), Control("Phase 1")},
		{"phase 2 during", Day(2016, time.April, 20), During("Phase 2")},
		{"phase 2 control", Day(2015, time.April, 20), Control("Phase 2")},
		{"phase 4 during", Day(2019, time.November, 10), During("Phase 4")},
		{"phase 4 control", Day(2018, time.November, 10), Control("Phase 4")},
		{"plain day", Day(2018, time.June, 1), Normal()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDay(tt.day, phases)
			if got != tt.want {
				t.Errorf("ClassifyDay(%s) = %v, want %v", tt.day.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestBeforeWindowHalfOpen(t *testing.T) {
	phase := PolicyPhase{Name: "Trial", Start: Day(2020, time.March, 10), End: Day(2020, time.March, 12)}

	if got := ClassifyDay(Day(2020, time.March, 9), []PolicyPhase{phase}); got != Before("Trial") {
		t.Errorf("day before start = %v, want Before", got)
	}
	if got := ClassifyDay(Day(2020, time.March, 10), []PolicyPhase{phase}); got != During("Trial") {
		t.Errorf("start day = %v, want During", got)
	}
}

func TestControlShiftIsCalendarAware(t *testing.T) {
	// A phase in March 2016 reaches back across the Feb 29 leap day. The
	// control window must cover the same calendar dates of 2015, not a
	// fixed 365-day offset.
	phase := PolicyPhase{Name: "Trial", Start: Day(2016, time.March, 1), End: Day(2016, time.March, 5)}

	for d := 1; d <= 5; d++ {
		day := Day(2015, time.March, d)
		if !phase.InControl(day) {
			t.Errorf("InControl(%s) = false, want true", day.Format("2006-01-02"))
		}
	}
	if phase.InControl(Day(2015, time.February, 28)) {
		t.Error("InControl(2015-02-28) = true, want false")
	}
}

func TestValidatePhases(t *testing.T) {
	tests := []struct {
		name    string
		phases  []PolicyPhase
		wantErr string
	}{
		{
			name:    "defaults are valid",
			phases:  DefaultPhases(),
			wantErr: "",
		},
		{
			name:    "empty set",
			phases:  nil,
			wantErr: "empty",
		},
		{
			name: "empty name",
			phases: []PolicyPhase{
				{Name: "", Start: Day(2020, time.March, 1), End: Day(2020, time.March, 5)},
			},
			wantErr: "empty name",
		},
		{
			name: "duplicate name",
			phases: []PolicyPhase{
				{Name: "Trial", Start: Day(2020, time.March, 1), End: Day(2020, time.March, 5)},
				{Name: "Trial", Start: Day(2022, time.March, 1), End: Day(2022, time.March, 5)},
			},
			wantErr: "duplicate",
		},
		{
			name: "reversed window",
			phases: []PolicyPhase{
				{Name: "Trial", Start: Day(2020, time.March, 5), End: Day(2020, time.March, 1)},
			},
			wantErr: "before it starts",
		},
		{
			name: "during windows overlap",
			phases: []PolicyPhase{
				{Name: "A", Start: Day(2020, time.March, 1), End: Day(2020, time.March, 10)},
				{Name: "B", Start: Day(2020, time.March, 8), End: Day(2020, time.March, 15)},
			},
			wantErr: "overlaps",
		},
		{
			name: "control window collides with another during window",
			phases: []PolicyPhase{
				{Name: "A", Start: Day(2019, time.March, 1), End: Day(2019, time.March, 5)},
				{Name: "B", Start: Day(2020, time.March, 1), End: Day(2020, time.March, 5)},
			},
			wantErr: "overlaps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhases(tt.phases)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidatePhases() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidatePhases() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidatePhases() = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status PolicyStatus
		want   string
	}{
		{Normal(), "Normal Day"},
		{During("Phase 1"), "During Phase 1"},
		{Before("Phase 2"), "Before Phase 2"},
		{Control("Phase 3"), "Control Phase 3"},
	}

	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestPhaseByName(t *testing.T) {
	phases := DefaultPhases()

	p, ok := PhaseByName(phases, "Phase 3")
	if !ok {
		t.Fatal("PhaseByName(Phase 3) not found")
	}
	if p.Start != Day(2017, time.November, 13) {
		t.Errorf("Phase 3 start = %s", p.Start.Format("2006-01-02"))
	}

	if _, ok := PhaseByName(phases, "Phase 9"); ok {
		t.Error("PhaseByName(Phase 9) found, want missing")
	}
}

func TestControlYear(t *testing.T) {
	phase := PolicyPhase{Name: "Trial", Start: Day(2016, time.January, 1), End: Day(2016, time.January, 15)}
	if got := phase.ControlYear(); got != 2015 {
		t.Errorf("ControlYear() = %d, want 2015", got)
	}
}
