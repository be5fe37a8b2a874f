package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"readiness-workers/internal/common/config"
	"readiness-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		RetryConfig: &RetryConfig{MaxRetries: maxRetries, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
	}}
}

func TestExecuteWithRetry(t *testing.T) {
	tests := []struct {
		name         string
		failures     []error
		expectedCode errors.ErrorCode
		expectedRuns int
	}{
		{"succeeds first time", nil, "", 1},
		{"recovers after transient failures", []error{stderrors.New("connection refused"), stderrors.New("Unavailable")}, "", 3},
		{"gives up on timeout", []error{
			stderrors.New("deadline exceeded"), stderrors.New("deadline exceeded"),
			stderrors.New("deadline exceeded"), stderrors.New("deadline exceeded"),
		}, errors.ErrCodeTimeout, 4},
		{"does not retry permission errors", []error{stderrors.New("permission denied")}, errors.ErrCodeAuthentication, 1},
		{"not found", []error{stderrors.New("process not found")}, errors.ErrCodeResourceNotFound, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(3)
			runs := 0
			_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
				runs++
				if runs <= len(tt.failures) {
					return nil, tt.failures[runs-1]
				}
				return "ok", nil
			}, "test")

			assert.Equal(t, tt.expectedRuns, runs)
			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}
			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, tt.expectedCode, stdErr.Code)
		})
	}
}

func TestExecuteWithRetry_Cancelled(t *testing.T) {
	c := &Client{config: &ClientConfig{
		RetryConfig: &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ExecuteWithRetry(ctx, func(context.Context) (interface{}, error) {
		return nil, stderrors.New("connection reset")
	}, "topology")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientConfigFrom(t *testing.T) {
	cfg := ClientConfigFrom(config.CamundaConfig{
		BrokerAddress:  "zeebe:26500",
		Timeout:        5000,
		RequestTimeout: 2000,
		UsePlaintext:   true,
	})
	assert.Equal(t, "zeebe:26500", cfg.GatewayAddress)
	assert.True(t, cfg.UsePlaintextConnection)
	assert.Equal(t, 5*time.Second, cfg.ConnectionTimeout)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Same(t, DefaultRetryConfig, cfg.RetryConfig)
}
