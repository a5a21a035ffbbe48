package scan

import (
	"context"
	"errors"

	"chartscan-service/internal/app/config"
	"chartscan-service/internal/app/contracts"
	"chartscan-service/internal/app/models"
	"chartscan-service/internal/pkg/constvars"
	"chartscan-service/internal/pkg/dto/requests"
	"chartscan-service/internal/pkg/exceptions"
	"chartscan-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type scanUsecase struct {
	PatientFhirClient           contracts.PatientFhirClient
	ObservationFhirClient       contracts.ObservationFhirClient
	MedicationRequestFhirClient contracts.MedicationRequestFhirClient
	InternalConfig              *config.InternalConfig
	Log                         *zap.Logger
}

func NewScanUsecase(
	patientFhirClient contracts.PatientFhirClient,
	observationFhirClient contracts.ObservationFhirClient,
	medicationRequestFhirClient contracts.MedicationRequestFhirClient,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScanUsecase {
	return &scanUsecase{
		PatientFhirClient:           patientFhirClient,
		ObservationFhirClient:       observationFhirClient,
		MedicationRequestFhirClient: medicationRequestFhirClient,
		InternalConfig:              internalConfig,
		Log:                         logger,
	}
}

// FindCompletePatients enumerates up to SearchLimit candidate patients and
// evaluates them in order until TargetCount complete records are found or
// the candidates run out. An enumeration failure yields an empty result
// carrying the diagnostic, not an error; cancellation between candidates
// yields the partial result with Interrupted set. The only error returned
// is input validation.
func (uc *scanUsecase) FindCompletePatients(ctx context.Context, request *requests.Scan) (*models.ScanResult, error) {
	requestID := utils.GetRequestID(ctx)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	result := &models.ScanResult{
		ScanID:      utils.GenerateScanID(),
		TargetCount: request.TargetCount,
		SearchLimit: request.SearchLimit,
	}

	uc.Log.Info("scanUsecase.FindCompletePatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScanIDKey, result.ScanID),
		zap.Int(constvars.LoggingTargetCountKey, request.TargetCount),
		zap.Int(constvars.LoggingSearchLimitKey, request.SearchLimit),
	)

	patientIDs, err := uc.PatientFhirClient.FindAllPatientIDs(ctx, request.SearchLimit)
	if err != nil {
		uc.Log.Error("scanUsecase.FindCompletePatients enumeration failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingScanIDKey, result.ScanID),
			zap.Error(err),
		)
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			result.EnumerationError = customErr.DevMessage
		} else {
			result.EnumerationError = err.Error()
		}
		return result, nil
	}
	result.CandidatesFound = len(patientIDs)

	// Complete never grows past the target or the enumerated candidates.
	result.Complete = make([]models.PatientDataStatus, 0, min(request.TargetCount, len(patientIDs)))

	for _, patientID := range patientIDs {
		if ctx.Err() != nil {
			uc.Log.Warn("scanUsecase.FindCompletePatients interrupted",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingScanIDKey, result.ScanID),
				zap.Int(constvars.LoggingCandidatesCheckedKey, len(result.Evaluated)),
				zap.Int(constvars.LoggingCompleteCountKey, len(result.Complete)),
			)
			result.Interrupted = true
			break
		}

		status := uc.evaluatePatient(ctx, patientID)
		result.Evaluated = append(result.Evaluated, status)

		if status.Complete {
			result.Complete = append(result.Complete, status)
			uc.Log.Info("scanUsecase.FindCompletePatients found complete patient",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingScanIDKey, result.ScanID),
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.Int(constvars.LoggingCompleteCountKey, len(result.Complete)),
				zap.Int(constvars.LoggingTargetCountKey, result.TargetCount),
			)
		}

		if len(result.Complete) >= result.TargetCount {
			break
		}
	}

	uc.Log.Info("scanUsecase.FindCompletePatients finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingScanIDKey, result.ScanID),
		zap.Int(constvars.LoggingCandidatesFoundKey, result.CandidatesFound),
		zap.Int(constvars.LoggingCandidatesCheckedKey, len(result.Evaluated)),
		zap.Int(constvars.LoggingCompleteCountKey, len(result.Complete)),
	)
	return result, nil
}

// evaluatePatient runs the five presence checks for one candidate. Each
// check is isolated: when its call fails the affected field keeps its
// zero value and the remaining checks still run. Complete is derived last
// from the four gating signals; the status never changes afterwards.
func (uc *scanUsecase) evaluatePatient(ctx context.Context, patientID string) models.PatientDataStatus {
	requestID := utils.GetRequestID(ctx)
	status := models.PatientDataStatus{PatientID: patientID}

	patient, err := uc.PatientFhirClient.FindPatientByID(ctx, patientID)
	if err != nil {
		uc.Log.Warn("scanUsecase.evaluatePatient demographics check degraded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingCheckKey, "demographics"),
			zap.Error(err),
		)
	} else {
		status.HasDemographics = patient.HasDemographics()
	}

	bloodPressure, err := uc.ObservationFhirClient.FindObservationsByPatientAndCode(ctx, patientID,
		constvars.LoincCodeBloodPressure, uc.InternalConfig.Scan.BloodPressureFetchCount)
	if err != nil {
		uc.Log.Warn("scanUsecase.evaluatePatient blood pressure check degraded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingCheckKey, "blood_pressure"),
			zap.Error(err),
		)
	} else {
		status.BloodPressureCount = len(bloodPressure)
	}

	weight, err := uc.ObservationFhirClient.FindObservationsByPatientAndCode(ctx, patientID,
		constvars.LoincCodeBodyWeight, uc.InternalConfig.Scan.WeightFetchCount)
	if err != nil {
		uc.Log.Warn("scanUsecase.evaluatePatient weight check degraded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingCheckKey, "weight"),
			zap.Error(err),
		)
	} else {
		status.HasWeight = len(weight) > 0
	}

	height, err := uc.ObservationFhirClient.FindObservationsByPatientAndCode(ctx, patientID,
		constvars.LoincCodeBodyHeight, uc.InternalConfig.Scan.HeightFetchCount)
	if err != nil {
		uc.Log.Warn("scanUsecase.evaluatePatient height check degraded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingCheckKey, "height"),
			zap.Error(err),
		)
	} else {
		status.HasHeight = len(height) > 0
	}

	medications, err := uc.MedicationRequestFhirClient.FindActiveMedicationRequestsByPatientID(ctx, patientID)
	if err != nil {
		uc.Log.Warn("scanUsecase.evaluatePatient medication check degraded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingCheckKey, "medications"),
			zap.Error(err),
		)
	} else {
		status.MedicationCount = len(medications)
	}

	status.Complete = status.HasRequiredData()

	uc.Log.Debug("scanUsecase.evaluatePatient verdict",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Bool("has_demographics", status.HasDemographics),
		zap.Int("blood_pressure_count", status.BloodPressureCount),
		zap.Bool("has_weight", status.HasWeight),
		zap.Bool("has_height", status.HasHeight),
		zap.Int("medication_count", status.MedicationCount),
		zap.Bool("complete", status.Complete),
	)
	return status
}
