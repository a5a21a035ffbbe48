package contracts

import (
	"context"

	"chartscan-service/internal/pkg/fhir_dto"
)

type ObservationFhirClient interface {
	FindObservationsByPatientAndCode(ctx context.Context, patientID, loincCode string, count int) ([]fhir_dto.Observation, error)
}
