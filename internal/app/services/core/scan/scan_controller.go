package scan

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"chartscan-service/internal/app/config"
	"chartscan-service/internal/app/contracts"
	"chartscan-service/internal/pkg/constvars"
	"chartscan-service/internal/pkg/dto/requests"
	"chartscan-service/internal/pkg/exceptions"
	"chartscan-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type ScanController struct {
	Log            *zap.Logger
	ScanUsecase    contracts.ScanUsecase
	InternalConfig *config.InternalConfig
}

func NewScanController(logger *zap.Logger, scanUsecase contracts.ScanUsecase, internalConfig *config.InternalConfig) *ScanController {
	return &ScanController{
		Log:            logger,
		ScanUsecase:    scanUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *ScanController) FindCompletePatients(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.Scan)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	scanTimeout := time.Duration(ctrl.InternalConfig.App.ScanTimeoutInSeconds) * time.Second
	ctx, cancel := context.WithTimeout(r.Context(), scanTimeout)
	defer cancel()

	result, err := ctrl.ScanUsecase.FindCompletePatients(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ScanCompletedSuccessMessage, utils.MapScanResultToScanReport(result))
}
