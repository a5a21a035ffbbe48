package config

import (
	"chartscan-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		FHIRClient: FHIRClient{
			RequestTimeoutInSeconds: utils.GetEnvInt("FHIR_CLIENT_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RetryMax:                utils.GetEnvInt("FHIR_CLIENT_RETRY_MAX", 3),
			MaxRequestsPerSecond:    utils.GetEnvInt("FHIR_CLIENT_MAX_REQUESTS_PER_SECOND", 10),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                  utils.GetEnvString("APP_ENV", "development"),
			Port:                 utils.GetEnvString("APP_PORT", ":8080"),
			Version:              utils.GetEnvString("APP_VERSION", "v1"),
			Address:              utils.GetEnvString("APP_ADDRESS", "localhost"),
			EndpointPrefix:       utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:          utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout:      utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			ScanTimeoutInSeconds: utils.GetEnvInt("APP_SCAN_TIMEOUT_IN_SECONDS", 120),
		},
		FHIR: FHIR{
			BaseUrl: utils.GetEnvString("FHIR_BASE_URL", "https://r3.smarthealthit.org"),
		},
		Scan: Scan{
			DefaultTargetCount:      utils.GetEnvInt("SCAN_DEFAULT_TARGET_COUNT", 10),
			DefaultSearchLimit:      utils.GetEnvInt("SCAN_DEFAULT_SEARCH_LIMIT", 30),
			BloodPressureFetchCount: utils.GetEnvInt("SCAN_BLOOD_PRESSURE_FETCH_COUNT", 50),
			WeightFetchCount:        utils.GetEnvInt("SCAN_WEIGHT_FETCH_COUNT", 1),
			HeightFetchCount:        utils.GetEnvInt("SCAN_HEIGHT_FETCH_COUNT", 1),
		},
	}
}
