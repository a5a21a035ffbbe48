package medicationRequests

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

type medicationRequestFhirClient struct {
	BaseUrl string
	Client  *http.Client
	Limiter *ratelimiter.OutboundLimiter
}

func NewMedicationRequestFhirClient(baseUrl string, httpClient *http.Client, limiter *ratelimiter.OutboundLimiter) contracts.MedicationRequestFhirClient {
	return &medicationRequestFhirClient{
		BaseUrl: fmt.Sprintf("%s/%s", baseUrl, constvars.ResourceMedicationRequest),
		Client:  httpClient,
		Limiter: limiter,
	}
}

func (c *medicationRequestFhirClient) FindActiveMedicationRequestsByPatientID(ctx context.Context, patientID string) ([]fhir_dto.MedicationRequest, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet,
		fmt.Sprintf("%s?%s=%s&%s=%s",
			c.BaseUrl,
			constvars.FhirQueryParamPatient, patientID,
			constvars.FhirQueryParamStatus, constvars.FhirMedicationRequestStatusActive,
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
			return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourceMedicationRequest)
		}

		var outcome fhir_dto.OperationOutcome
		err = json.Unmarshal(bodyBytes, &outcome)
		if err == nil && len(outcome.Issue) > 0 {
			return nil, exceptions.ErrGetFHIRResource(errors.New(outcome.Issue[0].Diagnostics), constvars.ResourceMedicationRequest)
		}
		return nil, exceptions.ErrGetFHIRResource(fmt.Errorf("unexpected status code %d", resp.StatusCode), constvars.ResourceMedicationRequest)
	}

	var result struct {
		Total        int    `json:"total"`
		ResourceType string `json:"resourceType"`
		Entry        []struct {
			FullUrl  string                     `json:"fullUrl"`
			Resource fhir_dto.MedicationRequest `json:"resource"`
		} `json:"entry"`
	}
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceMedicationRequest)
	}

	medicationRequests := make([]fhir_dto.MedicationRequest, 0, len(result.Entry))
	for _, entry := range result.Entry {
		medicationRequests = append(medicationRequests, entry.Resource)
	}
	return medicationRequests, nil
}
