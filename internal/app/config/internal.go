package config

type (
	InternalConfig struct {
		App  App
		FHIR FHIR
		Scan Scan
	}
	App struct {
		Env                  string
		Port                 string
		Version              string
		Address              string
		EndpointPrefix       string
		MaxRequests          int
		ShutdownTimeout      int
		ScanTimeoutInSeconds int
	}
	FHIR struct {
		BaseUrl string
	}
	Scan struct {
		DefaultTargetCount      int
		DefaultSearchLimit      int
		BloodPressureFetchCount int
		WeightFetchCount        int
		HeightFetchCount        int
	}
)
