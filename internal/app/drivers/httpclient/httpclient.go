package httpclient

import (
	"net/http"
	"time"

	"chartscan-service/internal/app/config"

	"github.com/hashicorp/go-retryablehttp"
)

// NewFHIRHttpClient builds the outbound client shared by every FHIR
// resource client. Retries cover transient transport faults; the inner
// timeout bounds each attempt so no remote call can hang a scan.
func NewFHIRHttpClient(driverConfig *config.DriverConfig) *http.Client {
	timeout := time.Duration(driverConfig.FHIRClient.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = driverConfig.FHIRClient.RetryMax
	retryClient.HTTPClient = &http.Client{Timeout: timeout}
	retryClient.Logger = nil

	return retryClient.StandardClient()
}
