package observations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"chartscan-service/internal/app/contracts"
	"chartscan-service/internal/app/services/shared/ratelimiter"
	"chartscan-service/internal/pkg/constvars"
	"chartscan-service/internal/pkg/exceptions"
	"chartscan-service/internal/pkg/fhir_dto"
)

type observationFhirClient struct {
	BaseUrl string
	Client  *http.Client
	Limiter *ratelimiter.OutboundLimiter
}

func NewObservationFhirClient(baseUrl string, httpClient *http.Client, limiter *ratelimiter.OutboundLimiter) contracts.ObservationFhirClient {
	return &observationFhirClient{
		BaseUrl: fmt.Sprintf("%s/%s", baseUrl, constvars.ResourceObservation),
		Client:  httpClient,
		Limiter: limiter,
	}
}

func (c *observationFhirClient) FindObservationsByPatientAndCode(ctx context.Context, patientID, loincCode string, count int) ([]fhir_dto.Observation, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet,
		fmt.Sprintf("%s?%s=%s&%s=%s&%s=%d",
			c.BaseUrl,
			constvars.FhirQueryParamPatient, patientID,
			constvars.FhirQueryParamCode, loincCode,
			constvars.FhirQueryParamCount, count,
		), nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourceObservation)
		}

		var outcome fhir_dto.OperationOutcome
		err = json.Unmarshal(bodyBytes, &outcome)
		if err == nil && len(outcome.Issue) > 0 {
			return nil, exceptions.ErrGetFHIRResource(errors.New(outcome.Issue[0].Diagnostics), constvars.ResourceObservation)
		}
		return nil, exceptions.ErrGetFHIRResource(fmt.Errorf("unexpected status code %d", resp.StatusCode), constvars.ResourceObservation)
	}

	var result struct {
		Total        int    `json:"total"`
		ResourceType string `json:"resourceType"`
		Entry        []struct {
			FullUrl  string               `json:"fullUrl"`
			Resource fhir_dto.Observation `json:"resource"`
		} `json:"entry"`
	}
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceObservation)
	}

	observations := make([]fhir_dto.Observation, 0, len(result.Entry))
	for _, entry := range result.Entry {
		observations = append(observations, entry.Resource)
	}
	return observations, nil
}
