package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chartscan-service/internal/app/config"
	"chartscan-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestIDMiddleware(t *testing.T) {
	middlewares := &Middlewares{
		Log:            zap.NewNop(),
		InternalConfig: &config.InternalConfig{},
	}

	t.Run("Generates Request ID When Missing", func(t *testing.T) {
		var contextRequestID string
		var isClientRequestID bool

		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contextRequestID, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			isClientRequestID, _ = r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("POST", "/api/v1/scans", nil)
		rr := httptest.NewRecorder()

		middlewares.RequestIDMiddleware(testHandler).ServeHTTP(rr, req)

		assert.NotEmpty(t, contextRequestID, "a request id should be generated when the client sends none")
		assert.True(t, strings.HasPrefix(contextRequestID, constvars.REQUEST_ID_PREFIX), "generated ids should carry the service prefix")
		assert.False(t, isClientRequestID, "a generated id is not a client id")
		assert.Equal(t, contextRequestID, rr.Header().Get(constvars.HeaderXRequestID), "the id should be echoed in the response header")
	})

	t.Run("Keeps Client Request ID", func(t *testing.T) {
		var contextRequestID string
		var isClientRequestID bool

		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contextRequestID, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			isClientRequestID, _ = r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("POST", "/api/v1/scans", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id-123")
		rr := httptest.NewRecorder()

		middlewares.RequestIDMiddleware(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, "client-id-123", contextRequestID, "a client supplied id should be kept")
		assert.True(t, isClientRequestID, "a client supplied id should be flagged as such")
		assert.Equal(t, "client-id-123", rr.Header().Get(constvars.HeaderXRequestID), "the client id should be echoed back")
	})
}

func TestLoggingMiddleware(t *testing.T) {
	middlewares := &Middlewares{
		Log:            zap.NewNop(),
		InternalConfig: &config.InternalConfig{},
	}

	t.Run("Preserves Handler Status Code", func(t *testing.T) {
		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})

		req := httptest.NewRequest("POST", "/api/v1/scans", nil)
		rr := httptest.NewRecorder()

		middlewares.Logging(zap.NewNop())(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code, "the logging wrapper should not change the response")
	})
}

func TestErrorHandler(t *testing.T) {
	middlewares := &Middlewares{
		Log:            zap.NewNop(),
		InternalConfig: &config.InternalConfig{},
	}

	t.Run("Recovers From Panic", func(t *testing.T) {
		t.Setenv("APP_ENV", constvars.AppEnvDevelopment)

		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})

		req := httptest.NewRequest("POST", "/api/v1/scans", nil)
		rr := httptest.NewRecorder()

		middlewares.ErrorHandler(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code, "a panic should become a 500 response")
		assert.Contains(t, rr.Body.String(), `"success":false`, "the error envelope should mark the request as failed")
		assert.Contains(t, rr.Body.String(), constvars.ErrClientCannotProcessRequest, "the client should see the generic processing message")
		assert.Contains(t, rr.Body.String(), "boom", "the dev message should carry the recovered panic value outside production")
	})

	t.Run("Passes Through Healthy Handlers", func(t *testing.T) {
		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})

		req := httptest.NewRequest("GET", "/api/v1/scans", nil)
		rr := httptest.NewRecorder()

		middlewares.ErrorHandler(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ok", rr.Body.String())
	})
}
