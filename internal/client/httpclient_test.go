package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/koungkub/fcm-push-notification/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func noopCollector(t *testing.T) *metrics.HTTPClientCollector {
	t.Helper()

	collector, err := metrics.NewHTTPClientCollector(nil)
	require.NoError(t, err)
	return collector
}

func newTestHTTPClient(t *testing.T, collector *metrics.HTTPClientCollector, cbConfig CircuitBreakerRegistryConfig) *HTTPClient {
	t.Helper()

	return NewHTTPClient(HTTPClientParams{
		Config: HTTPClientConfig{Timeout: 5 * time.Second},
		CircuitBreakerRegistry: NewCircuitBreakerRegistry(CircuitBreakerRegistryParams{
			Config: cbConfig,
			Logger: zap.NewNop(),
		}),
		MetricsCollector: collector,
		Logger:           zap.NewNop(),
	})
}

func TestNewHTTPClient(t *testing.T) {
	client := newTestHTTPClient(t, noopCollector(t), DefaultCircuitBreakerRegistryConfig())

	assert.NotNil(t, client.httpclient)
	assert.NotNil(t, client.circuitBreakerRegistry)
	assert.NotNil(t, client.metricsCollector)
	assert.NotNil(t, client.logger)
	assert.Equal(t, 5*time.Second, client.httpclient.Timeout)
}

func TestNewHTTPClientConfig(t *testing.T) {
	t.Run("defaults to no timeout", func(t *testing.T) {
		t.Setenv("HTTP_CLIENT_TIMEOUT", "")
		require.NoError(t, os.Unsetenv("HTTP_CLIENT_TIMEOUT"))

		assert.Zero(t, NewHTTPClientConfig().Timeout)
	})

	t.Run("reads timeout from env", func(t *testing.T) {
		t.Setenv("HTTP_CLIENT_TIMEOUT", "750ms")

		assert.Equal(t, 750*time.Millisecond, NewHTTPClientConfig().Timeout)
	})
}

func TestHTTPClient_Post_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		var req NotificationRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "Test Title", req.Title)
		assert.Equal(t, "Test Body", req.Body)
		assert.Equal(t, []string{"tok1"}, req.FCMTokens)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": true}`))
	}))
	defer server.Close()

	client := newTestHTTPClient(t, noopCollector(t), DefaultCircuitBreakerRegistryConfig())

	resp, err := client.Post(context.Background(), server.URL+"/send", NotificationRequest{
		Title:     "Test Title",
		Body:      "Test Body",
		FCMTokens: []string{"tok1"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": true}`, string(resp.Body))
}

func TestHTTPClient_Post_NonOKStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"Bad Request", http.StatusBadRequest},
		{"Unauthorized", http.StatusUnauthorized},
		{"Internal Server Error", http.StatusInternalServerError},
		{"Service Unavailable", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(`{"status": false}`))
			}))
			defer server.Close()

			client := newTestHTTPClient(t, noopCollector(t), DefaultCircuitBreakerRegistryConfig())

			resp, err := client.Post(context.Background(), server.URL, NotificationRequest{})

			require.NoError(t, err, "the status is the caller's to interpret")
			assert.Equal(t, tt.statusCode, resp.StatusCode)
			assert.JSONEq(t, `{"status": false}`, string(resp.Body))
		})
	}
}

func TestHTTPClient_Post_InvalidURL(t *testing.T) {
	client := newTestHTTPClient(t, noopCollector(t), DefaultCircuitBreakerRegistryConfig())

	_, err := client.Post(context.Background(), "://invalid-url", NotificationRequest{})

	assert.Error(t, err)
}

func TestHTTPClient_Post_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestHTTPClient(t, noopCollector(t), DefaultCircuitBreakerRegistryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Post(ctx, server.URL, NotificationRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractHost(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		expectedHost string
		expectError  bool
	}{
		{"legacy endpoint", "https://push.example.com:3001/send", "push.example.com:3001", false},
		{"api endpoint", "http://localhost:5000/api/send", "localhost:5000", false},
		{"no port", "https://push.example.com/send", "push.example.com", false},
		{"invalid URL", "://invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, err := extractHost(tt.url)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedHost, host)
		})
	}
}

func TestHTTPClient_WithMetrics(t *testing.T) {
	tests := []struct {
		name              string
		statusCode        int
		expectedErrorType string
	}{
		{"successful request", http.StatusOK, ""},
		{"client error", http.StatusBadRequest, "invalid_status"},
		{"server error", http.StatusInternalServerError, "invalid_status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			reader := metric.NewManualReader()
			provider := metric.NewMeterProvider(metric.WithReader(reader))
			collector, err := metrics.NewHTTPClientCollector(provider.Meter("test"))
			require.NoError(t, err)

			client := newTestHTTPClient(t, collector, DefaultCircuitBreakerRegistryConfig())

			ctx := context.Background()
			_, err = client.Post(ctx, server.URL, NotificationRequest{})
			require.NoError(t, err)

			var rm metricdata.ResourceMetrics
			require.NoError(t, reader.Collect(ctx, &rm))
			require.NotEmpty(t, rm.ScopeMetrics)

			var foundRequests, foundState, foundErrors bool
			for _, m := range rm.ScopeMetrics[0].Metrics {
				switch m.Name {
				case "http.client.requests":
					foundRequests = true
					sum := m.Data.(metricdata.Sum[int64])
					require.Len(t, sum.DataPoints, 1)
					code, _ := sum.DataPoints[0].Attributes.Value(attribute.Key("http.status_code"))
					assert.Equal(t, int64(tt.statusCode), code.AsInt64())
				case "http.client.circuit_breaker.state":
					foundState = true
				case "http.client.errors":
					foundErrors = true
					sum := m.Data.(metricdata.Sum[int64])
					require.Len(t, sum.DataPoints, 1)
					errType, _ := sum.DataPoints[0].Attributes.Value(attribute.Key("error.type"))
					assert.Equal(t, tt.expectedErrorType, errType.AsString())
				}
			}
			assert.True(t, foundRequests, "request count metric should be recorded")
			assert.True(t, foundState, "circuit breaker state metric should be recorded")
			assert.Equal(t, tt.expectedErrorType != "", foundErrors)
		})
	}
}

func TestHTTPClient_ServerErrorsTripBreaker(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestHTTPClient(t, noopCollector(t), CircuitBreakerRegistryConfig{
		MaxHalfOpenRequests:     1,
		OpenStateTimeout:        time.Minute,
		MinRequestsBeforeTrip:   2,
		FailureThresholdPercent: 50,
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		resp, err := client.Post(ctx, server.URL, NotificationRequest{})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	}

	_, err := client.Post(ctx, server.URL, NotificationRequest{})

	assert.Error(t, err)
	assert.Equal(t, int32(2), requests.Load())
}

func TestHTTPClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := newTestHTTPClient(t, noopCollector(t), CircuitBreakerRegistryConfig{
		MaxHalfOpenRequests:     1,
		OpenStateTimeout:        time.Minute,
		MinRequestsBeforeTrip:   2,
		FailureThresholdPercent: 50,
	})

	for i := 0; i < 5; i++ {
		_, err := client.Post(context.Background(), server.URL, NotificationRequest{})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(5), requests.Load())
}
