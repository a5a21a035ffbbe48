package utils

import (
	"chartscan-service/internal/app/models"
	"chartscan-service/internal/pkg/dto/responses"
)

func MapPatientDataStatusToResponse(status models.PatientDataStatus) responses.PatientDataStatus {
	return responses.PatientDataStatus{
		PatientID:          status.PatientID,
		HasDemographics:    status.HasDemographics,
		BloodPressureCount: status.BloodPressureCount,
		HasWeight:          status.HasWeight,
		HasHeight:          status.HasHeight,
		MedicationCount:    status.MedicationCount,
		Complete:           status.Complete,
	}
}

func MapScanResultToScanReport(result *models.ScanResult) *responses.ScanReport {
	report := &responses.ScanReport{
		ScanID:           result.ScanID,
		TargetCount:      result.TargetCount,
		SearchLimit:      result.SearchLimit,
		CandidatesFound:  result.CandidatesFound,
		Complete:         make([]responses.PatientDataStatus, 0, len(result.Complete)),
		Evaluated:        make([]responses.PatientDataStatus, 0, len(result.Evaluated)),
		CompleteIDs:      make([]string, 0, len(result.Complete)),
		Exhausted:        result.Exhausted(),
		Interrupted:      result.Interrupted,
		EnumerationError: result.EnumerationError,
	}

	for _, status := range result.Complete {
		report.Complete = append(report.Complete, MapPatientDataStatusToResponse(status))
		report.CompleteIDs = append(report.CompleteIDs, status.PatientID)
	}
	for _, status := range result.Evaluated {
		report.Evaluated = append(report.Evaluated, MapPatientDataStatusToResponse(status))
	}

	return report
}
