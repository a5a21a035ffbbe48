package contracts

import (
	"context"

	"chartscan-service/internal/app/models"
	"chartscan-service/internal/pkg/dto/requests"
)

type ScanUsecase interface {
	FindCompletePatients(ctx context.Context, request *requests.Scan) (*models.ScanResult, error)
}
