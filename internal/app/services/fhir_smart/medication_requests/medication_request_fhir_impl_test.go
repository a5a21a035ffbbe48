package medicationRequests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"chartscan-service/internal/app/contracts"
	"chartscan-service/internal/app/services/shared/ratelimiter"
	"chartscan-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func newTestMedicationRequestFhirClient(server *httptest.Server) contracts.MedicationRequestFhirClient {
	return NewMedicationRequestFhirClient(server.URL, server.Client(), ratelimiter.NewOutboundLimiter(1000))
}

func TestMedicationRequestFhirClient_FindActiveMedicationRequestsByPatientID(t *testing.T) {
	t.Run("Searches Active Medications Only", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/MedicationRequest", r.URL.Path, "should search the MedicationRequest endpoint")
			assert.Equal(t, "p1", r.URL.Query().Get("patient"), "should scope the search to the patient")
			assert.Equal(t, constvars.FhirMedicationRequestStatusActive, r.URL.Query().Get("status"), "should only count active medications")
			assert.Empty(t, r.URL.Query().Get("_count"), "the medication count is informational and not capped")

			w.Header().Set("Content-Type", "application/fhir+json")
			w.Write([]byte(`{
				"resourceType": "Bundle",
				"type": "searchset",
				"total": 2,
				"entry": [
					{"resource": {"resourceType": "MedicationRequest", "id": "mr-1", "status": "active"}},
					{"resource": {"resourceType": "MedicationRequest", "id": "mr-2", "status": "active"}}
				]
			}`))
		}))
		defer server.Close()

		client := newTestMedicationRequestFhirClient(server)
		medicationRequests, err := client.FindActiveMedicationRequestsByPatientID(context.Background(), "p1")

		assert.NoError(t, err)
		assert.Len(t, medicationRequests, 2)
		assert.Equal(t, "mr-1", medicationRequests[0].ID)
	})

	t.Run("No Active Medications", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/fhir+json")
			w.Write([]byte(`{"resourceType": "Bundle", "type": "searchset", "total": 0}`))
		}))
		defer server.Close()

		client := newTestMedicationRequestFhirClient(server)
		medicationRequests, err := client.FindActiveMedicationRequestsByPatientID(context.Background(), "p1")

		assert.NoError(t, err, "no active medications is a valid answer")
		assert.Empty(t, medicationRequests)
	})

	t.Run("Server Failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/fhir+json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{
				"resourceType": "OperationOutcome",
				"issue": [{"severity": "error", "code": "transient", "diagnostics": "try again later"}]
			}`))
		}))
		defer server.Close()

		client := newTestMedicationRequestFhirClient(server)
		medicationRequests, err := client.FindActiveMedicationRequestsByPatientID(context.Background(), "p1")

		assert.Error(t, err, "a failing medication search should surface for the caller to degrade")
		assert.Nil(t, medicationRequests)
		assert.Contains(t, err.Error(), "try again later")
	})
}
