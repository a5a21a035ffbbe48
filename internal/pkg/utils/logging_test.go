package utils

import (
	"context"
	"errors"
	"testing"

	"chartscan-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetRequestID(t *testing.T) {
	t.Run("Returns The Context Request ID", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "chartscan-abc123")

		assert.Equal(t, "chartscan-abc123", GetRequestID(ctx), "the id stored by the middleware should come back unchanged")
	})

	t.Run("Missing Request ID Yields Empty String", func(t *testing.T) {
		assert.Equal(t, "", GetRequestID(context.Background()), "a context without an id should not fabricate one")
	})
}

func TestLogOperation(t *testing.T) {
	t.Run("Returns The Wrapped Error", func(t *testing.T) {
		wantErr := errors.New("backend unavailable")

		err := LogOperation(zap.NewNop(), "find_complete_patients", "req-1", func() error {
			return wantErr
		})

		assert.Equal(t, wantErr, err, "the wrapper should hand back the operation error untouched")
	})

	t.Run("Returns Nil On Success", func(t *testing.T) {
		ran := false

		err := LogOperation(zap.NewNop(), "find_complete_patients", "req-1", func() error {
			ran = true
			return nil
		})

		assert.NoError(t, err)
		assert.True(t, ran, "the wrapped operation should run exactly once")
	})
}
