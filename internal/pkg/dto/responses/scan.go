package responses

type PatientDataStatus struct {
	PatientID          string `json:"patient_id"`
	HasDemographics    bool   `json:"has_demographics"`
	BloodPressureCount int    `json:"blood_pressure_count"`
	HasWeight          bool   `json:"has_weight"`
	HasHeight          bool   `json:"has_height"`
	MedicationCount    int    `json:"medication_count"`
	Complete           bool   `json:"complete"`
}

type ScanReport struct {
	ScanID           string              `json:"scan_id"`
	TargetCount      int                 `json:"target_count"`
	SearchLimit      int                 `json:"search_limit"`
	CandidatesFound  int                 `json:"candidates_found"`
	Complete         []PatientDataStatus `json:"complete"`
	Evaluated        []PatientDataStatus `json:"evaluated"`
	CompleteIDs      []string            `json:"complete_ids"`
	Exhausted        bool                `json:"exhausted"`
	Interrupted      bool                `json:"interrupted,omitempty"`
	EnumerationError string              `json:"enumeration_error,omitempty"`
}
