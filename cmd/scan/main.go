package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chartscan-service/internal/app/config"
	"chartscan-service/internal/app/drivers/httpclient"
	"chartscan-service/internal/app/drivers/logger"
	"chartscan-service/internal/app/models"
	"chartscan-service/internal/app/services/core/scan"
	medicationRequests "chartscan-service/internal/app/services/fhir_smart/medication_requests"
	"chartscan-service/internal/app/services/fhir_smart/observations"
	"chartscan-service/internal/app/services/fhir_smart/patients"
	"chartscan-service/internal/app/services/shared/ratelimiter"
	"chartscan-service/internal/pkg/dto/requests"
	"chartscan-service/internal/pkg/dto/responses"
	"chartscan-service/internal/pkg/exceptions"
	"chartscan-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	rootCmd := &cobra.Command{
		Use:   "chartscan",
		Short: "Find patients with complete chart data on a FHIR server",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetCount, _ := cmd.Flags().GetInt("target-count")
			searchLimit, _ := cmd.Flags().GetInt("search-limit")
			return runScan(driverConfig, internalConfig, targetCount, searchLimit)
		},
	}
	rootCmd.Flags().Int("target-count", internalConfig.Scan.DefaultTargetCount, "How many complete patients to find before stopping")
	rootCmd.Flags().Int("search-limit", internalConfig.Scan.DefaultSearchLimit, "How many candidate patients to pull from the server")

	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(fmt.Sprintf("Version: %s", Version))
			fmt.Println(fmt.Sprintf("Tag: %s", Tag))
		},
	}
}

func runScan(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig, targetCount, searchLimit int) error {
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	// Interrupting the scan keeps the partial result instead of failing it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fhirHttpClient := httpclient.NewFHIRHttpClient(driverConfig)
	outboundLimiter := ratelimiter.NewOutboundLimiter(driverConfig.FHIRClient.MaxRequestsPerSecond)

	patientFhirClient := patients.NewPatientFhirClient(internalConfig.FHIR.BaseUrl, fhirHttpClient, outboundLimiter, zapLogger)
	observationFhirClient := observations.NewObservationFhirClient(internalConfig.FHIR.BaseUrl, fhirHttpClient, outboundLimiter)
	medicationRequestFhirClient := medicationRequests.NewMedicationRequestFhirClient(internalConfig.FHIR.BaseUrl, fhirHttpClient, outboundLimiter)

	scanUsecase := scan.NewScanUsecase(patientFhirClient, observationFhirClient, medicationRequestFhirClient, internalConfig, zapLogger)

	request := &requests.Scan{
		TargetCount: targetCount,
		SearchLimit: searchLimit,
	}

	var result *models.ScanResult
	err := utils.LogOperation(zapLogger, "chartscan.runScan", "", func() error {
		var opErr error
		result, opErr = scanUsecase.FindCompletePatients(ctx, request)
		return opErr
	})
	if err != nil {
		return err
	}

	return printScanReport(utils.MapScanResultToScanReport(result))
}

func printScanReport(report *responses.ScanReport) error {
	if report.EnumerationError != "" {
		fmt.Println(fmt.Sprintf("Could not enumerate candidate patients: %s", report.EnumerationError))
		fmt.Println("Check the FHIR server connection and try again.")
		return nil
	}

	if report.CandidatesFound == 0 {
		fmt.Println("No candidate patients available on the server.")
		return nil
	}

	for i, status := range report.Evaluated {
		if status.Complete {
			fmt.Println(fmt.Sprintf("[%d/%d] Patient %s: complete", i+1, report.CandidatesFound, status.PatientID))
			continue
		}
		fmt.Println(fmt.Sprintf("[%d/%d] Patient %s: incomplete (BP:%d W:%t H:%t Med:%d)",
			i+1, report.CandidatesFound, status.PatientID,
			status.BloodPressureCount, status.HasWeight, status.HasHeight, status.MedicationCount))
	}

	if report.Interrupted {
		fmt.Println(fmt.Sprintf("Scan interrupted after checking %d of %d candidates.", len(report.Evaluated), report.CandidatesFound))
	}

	fmt.Println(fmt.Sprintf("Found %d of %d patients with complete data (checked %d of %d candidates).",
		len(report.Complete), report.TargetCount, len(report.Evaluated), report.CandidatesFound))

	if len(report.Complete) == 0 {
		if report.Exhausted {
			fmt.Println("No patients with complete data found within the search limit. Try increasing --search-limit.")
		}
		return nil
	}

	for i, patient := range report.Complete {
		fmt.Println(fmt.Sprintf("%d. Patient ID: %s (blood pressure records: %d, active medications: %d)",
			i+1, patient.PatientID, patient.BloodPressureCount, patient.MedicationCount))
	}

	completeIDs, err := json.MarshalIndent(report.CompleteIDs, "", "  ")
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	fmt.Println("Patient IDs (copy-paste ready):")
	fmt.Println(string(completeIDs))
	return nil
}
