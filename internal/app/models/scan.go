package models

// PatientDataStatus is the completeness verdict for one candidate patient.
// It is built field by field during an evaluation and Complete is derived
// last; after that the value is never mutated.
type PatientDataStatus struct {
	PatientID          string
	HasDemographics    bool
	BloodPressureCount int
	HasWeight          bool
	HasHeight          bool
	MedicationCount    int
	Complete           bool
}

// HasRequiredData reports whether the four gating signals are all present.
// MedicationCount is informational only and never gates the verdict.
func (s *PatientDataStatus) HasRequiredData() bool {
	return s.HasDemographics && s.BloodPressureCount > 0 && s.HasWeight && s.HasHeight
}

// ScanResult is the outcome of one scan invocation. Complete holds the
// verdicts that satisfied the predicate, in candidate order, never more
// than TargetCount entries. Evaluated holds every verdict produced, for
// diagnostics.
type ScanResult struct {
	ScanID           string
	TargetCount      int
	SearchLimit      int
	CandidatesFound  int
	Complete         []PatientDataStatus
	Evaluated        []PatientDataStatus
	EnumerationError string
	Interrupted      bool
}

// Exhausted reports whether every enumerated candidate was evaluated
// without reaching the requested target.
func (r *ScanResult) Exhausted() bool {
	return len(r.Complete) < r.TargetCount && !r.Interrupted && r.EnumerationError == ""
}
