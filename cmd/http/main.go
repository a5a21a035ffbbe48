package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chartscan-service/internal/app/config"
	"chartscan-service/internal/app/delivery/http/middlewares"
	"chartscan-service/internal/app/delivery/http/routers"
	"chartscan-service/internal/app/drivers/httpclient"
	"chartscan-service/internal/app/drivers/logger"
	"chartscan-service/internal/app/services/core/scan"
	medicationRequests "chartscan-service/internal/app/services/fhir_smart/medication_requests"
	"chartscan-service/internal/app/services/fhir_smart/observations"
	"chartscan-service/internal/app/services/fhir_smart/patients"
	"chartscan-service/internal/app/services/shared/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	fhirHttpClient := httpclient.NewFHIRHttpClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		Logger:         zapLogger,
		FHIRHttpClient: fhirHttpClient,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	// Shutdown the server
	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error while releasing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Shared
	outboundLimiter := ratelimiter.NewOutboundLimiter(bootstrap.DriverConfig.FHIRClient.MaxRequestsPerSecond)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Patient
	patientFhirClient := patients.NewPatientFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl, bootstrap.FHIRHttpClient, outboundLimiter, bootstrap.Logger)

	// Observation
	observationFhirClient := observations.NewObservationFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl, bootstrap.FHIRHttpClient, outboundLimiter)

	// MedicationRequest
	medicationRequestFhirClient := medicationRequests.NewMedicationRequestFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl, bootstrap.FHIRHttpClient, outboundLimiter)

	// Scan
	scanUsecase := scan.NewScanUsecase(patientFhirClient, observationFhirClient, medicationRequestFhirClient, bootstrap.InternalConfig, bootstrap.Logger)
	scanController := scan.NewScanController(bootstrap.Logger, scanUsecase, bootstrap.InternalConfig)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, bootstrap.Logger, middlewares, scanController)
}
