package constvars

// FHIR search parameter names.
const (
	FhirQueryParamPatient = "patient"
	FhirQueryParamCode    = "code"
	FhirQueryParamStatus  = "status"
	FhirQueryParamCount   = "_count"
)
