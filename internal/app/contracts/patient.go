package contracts

import (
	"context"

	"chartscan-service/internal/pkg/fhir_dto"
)

type PatientFhirClient interface {
	FindAllPatientIDs(ctx context.Context, count int) ([]string, error)
	FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error)
}
