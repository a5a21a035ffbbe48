package constvars

// FHIR resource types the scanner touches.
const (
	ResourcePatient           = "Patient"
	ResourceObservation       = "Observation"
	ResourceMedicationRequest = "MedicationRequest"
	ResourceBundle            = "Bundle"
	ResourceOperationOutcome  = "OperationOutcome"
)

// LOINC codes for the vital-sign observations that gate completeness.
const (
	LoincCodeBloodPressure = "55284-4"
	LoincCodeBodyWeight    = "29463-7"
	LoincCodeBodyHeight    = "8302-2"
)

const (
	FhirMedicationRequestStatusActive = "active"
)
