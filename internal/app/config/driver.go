package config

type (
	DriverConfig struct {
		Logger     Logger
		FHIRClient FHIRClient
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	FHIRClient struct {
		RequestTimeoutInSeconds int
		RetryMax                int
		MaxRequestsPerSecond    int
	}
)
