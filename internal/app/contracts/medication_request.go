package contracts

import (
	"context"

	"chartscan-service/internal/pkg/fhir_dto"
)

type MedicationRequestFhirClient interface {
	FindActiveMedicationRequestsByPatientID(ctx context.Context, patientID string) ([]fhir_dto.MedicationRequest, error)
}
