package patients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chartscan-service/internal/app/contracts"
	"chartscan-service/internal/app/services/shared/ratelimiter"
	"chartscan-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestPatientFhirClient(server *httptest.Server) contracts.PatientFhirClient {
	return NewPatientFhirClient(server.URL, server.Client(), ratelimiter.NewOutboundLimiter(1000), zap.NewNop())
}

func TestPatientFhirClient_FindAllPatientIDs(t *testing.T) {
	t.Run("Returns IDs In Bundle Order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/Patient", r.URL.Path, "should search the Patient endpoint")
			assert.Equal(t, "30", r.URL.Query().Get("_count"), "should forward the search limit as _count")

			w.Header().Set("Content-Type", "application/fhir+json")
			w.Write([]byte(`{
				"resourceType": "Bundle",
				"type": "searchset",
				"total": 3,
				"entry": [
					{"resource": {"resourceType": "Patient", "id": "p1"}},
					{"resource": {"resourceType": "Patient"}},
					{"resource": {"resourceType": "Patient", "id": "p2"}}
				]
			}`))
		}))
		defer server.Close()

		client := newTestPatientFhirClient(server)
		patientIDs, err := client.FindAllPatientIDs(context.Background(), 30)

		assert.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2"}, patientIDs, "entries without an id should be skipped")
	})

	t.Run("Zero Count Never Calls The Server", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := newTestPatientFhirClient(server)
		patientIDs, err := client.FindAllPatientIDs(context.Background(), 0)

		assert.NoError(t, err)
		assert.Empty(t, patientIDs, "a zero limit yields no candidates")
		assert.False(t, called, "a zero limit should not hit the server")
	})

	t.Run("Missing Entry Field Yields Empty List", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/fhir+json")
			w.Write([]byte(`{"resourceType": "Bundle", "type": "searchset", "total": 0}`))
		}))
		defer server.Close()

		client := newTestPatientFhirClient(server)
		patientIDs, err := client.FindAllPatientIDs(context.Background(), 30)

		assert.NoError(t, err, "a bundle without entries is a valid empty search result")
		assert.Empty(t, patientIDs)
	})

	t.Run("Operation Outcome Diagnostics Are Preserved", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/fhir+json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{
				"resourceType": "OperationOutcome",
				"issue": [{"severity": "error", "code": "processing", "diagnostics": "search index unavailable"}]
			}`))
		}))
		defer server.Close()

		client := newTestPatientFhirClient(server)
		patientIDs, err := client.FindAllPatientIDs(context.Background(), 30)

		assert.Error(t, err, "a non-2xx response should fail the enumeration")
		assert.Nil(t, patientIDs)

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr), "should return a CustomError")
		assert.Contains(t, customErr.DevMessage, "search index unavailable", "the server diagnostics should be preserved")
	})

	t.Run("Non OK Status Without Outcome", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream down"))
		}))
		defer server.Close()

		client := newTestPatientFhirClient(server)
		patientIDs, err := client.FindAllPatientIDs(context.Background(), 30)

		assert.Error(t, err)
		assert.Nil(t, patientIDs)
		assert.Contains(t, err.Error(), "unexpected status code 502", "the status code should be reported when no outcome is present")
	})

	t.Run("Malformed Bundle Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/fhir+json")
			w.Write([]byte(`{"resourceType": "Bundle", "entry": [`))
		}))
		defer server.Close()

		client := newTestPatientFhirClient(server)
		patientIDs, err := client.FindAllPatientIDs(context.Background(), 30)

		assert.Error(t, err, "a truncated body should fail decoding")
		assert.Nil(t, patientIDs)
	})
}

func TestPatientFhirClient_FindPatientByID(t *testing.T) {
	t.Run("Fetches The Patient Record", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/Patient/p1", r.URL.Path, "should read the patient by id")

			w.Header().Set("Content-Type", "application/fhir+json")
			w.Write([]byte(`{
				"resourceType": "Patient",
				"id": "p1",
				"name": [{"family": "Chalmers", "given": ["Peter"]}],
				"birthDate": "1974-12-25"
			}`))
		}))
		defer server.Close()

		client := newTestPatientFhirClient(server)
		patient, err := client.FindPatientByID(context.Background(), "p1")

		assert.NoError(t, err)
		assert.Equal(t, "p1", patient.ID)
		assert.True(t, patient.HasDemographics(), "name and birth date should satisfy the demographics check")
	})

	t.Run("Missing Name Fails Demographics", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/fhir+json")
			w.Write([]byte(`{"resourceType": "Patient", "id": "p1", "birthDate": "1974-12-25"}`))
		}))
		defer server.Close()

		client := newTestPatientFhirClient(server)
		patient, err := client.FindPatientByID(context.Background(), "p1")

		assert.NoError(t, err)
		assert.False(t, patient.HasDemographics(), "a record without a name is not demographically complete")
	})

	t.Run("Not Found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/fhir+json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{
				"resourceType": "OperationOutcome",
				"issue": [{"severity": "error", "code": "not-found", "diagnostics": "Patient/p1 is not known"}]
			}`))
		}))
		defer server.Close()

		client := newTestPatientFhirClient(server)
		patient, err := client.FindPatientByID(context.Background(), "p1")

		assert.Error(t, err, "a missing patient should surface as an error for the caller to degrade")
		assert.Nil(t, patient)
		assert.Contains(t, err.Error(), "Patient/p1 is not known")
	})
}
