package models

import "fmt"

// StatusKind discriminates how a calendar day relates to the policy phases.
type StatusKind int

const (
	StatusNormal StatusKind = iota
	StatusBefore
	StatusDuring
	StatusControl
)

// String returns the string representation of the status kind
func (k StatusKind) String() string {
	switch k {
	case StatusNormal:
		return "Normal"
	case StatusBefore:
		return "Before"
	case StatusDuring:
		return "During"
	case StatusControl:
		return "Control"
	default:
		return "Unknown"
	}
}

// PolicyStatus classifies one calendar day against the configured phases.
// Phase is empty when Kind is StatusNormal.
type PolicyStatus struct {
	Kind  StatusKind `json:"kind"`
	Phase string     `json:"phase,omitempty"`
}

// Normal returns the status of a day outside every phase window.
func Normal() PolicyStatus {
	return PolicyStatus{Kind: StatusNormal}
}

// Before returns the status of a day in a phase's pre-policy window.
func Before(phase string) PolicyStatus {
	return PolicyStatus{Kind: StatusBefore, Phase: phase}
}

// During returns the status of a day inside a phase's active window.
func During(phase string) PolicyStatus {
	return PolicyStatus{Kind: StatusDuring, Phase: phase}
}

// Control returns the status of a day in a phase's prior-year control window.
func Control(phase string) PolicyStatus {
	return PolicyStatus{Kind: StatusControl, Phase: phase}
}

// Label renders the human-readable form used in reports and console output,
// e.g. "During Phase 1" or "Normal Day".
func (s PolicyStatus) Label() string {
	if s.Kind == StatusNormal {
		return "Normal Day"
	}
	return fmt.Sprintf("%s %s", s.Kind, s.Phase)
}
