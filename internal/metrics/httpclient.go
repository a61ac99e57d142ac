package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// HTTPClientCollector records the outbound side: requests to the push backend,
// the circuit breaker guarding them and the deliveries they report.
type HTTPClientCollector struct {
	requestCount          metric.Int64Counter
	requestDuration       metric.Float64Histogram
	errorCount            metric.Int64Counter
	circuitBreakerState   metric.Int64Gauge
	circuitBreakerChanges metric.Int64Counter
	deliveryCount         metric.Int64Counter
	tokenCount            metric.Int64Counter
}

func NewHTTPClientCollector(meter metric.Meter) (*HTTPClientCollector, error) {
	// The noop meter never returns errors
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("noop")
	}
	requestCount, err := meter.Int64Counter(
		"http.client.requests",
		metric.WithDescription("Total HTTP client requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.client.duration",
		metric.WithDescription("HTTP client request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"http.client.errors",
		metric.WithDescription("Total HTTP client errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	circuitBreakerState, err := meter.Int64Gauge(
		"http.client.circuit_breaker.state",
		metric.WithDescription("Circuit breaker state (0=Closed, 1=Open, 2=HalfOpen)"),
		metric.WithUnit("{state}"),
	)
	if err != nil {
		return nil, err
	}

	circuitBreakerChanges, err := meter.Int64Counter(
		"http.client.circuit_breaker.state_changes",
		metric.WithDescription("Circuit breaker state changes"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, err
	}

	deliveryCount, err := meter.Int64Counter(
		"push.deliveries",
		metric.WithDescription("Push notifications answered by the backend"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	tokenCount, err := meter.Int64Counter(
		"push.tokens",
		metric.WithDescription("FCM tokens reported by the backend per outcome"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, err
	}

	return &HTTPClientCollector{
		requestCount:          requestCount,
		requestDuration:       requestDuration,
		errorCount:            errorCount,
		circuitBreakerState:   circuitBreakerState,
		circuitBreakerChanges: circuitBreakerChanges,
		deliveryCount:         deliveryCount,
		tokenCount:            tokenCount,
	}, nil
}

// RecordRequest records HTTP client request metrics
func (c *HTTPClientCollector) RecordRequest(
	ctx context.Context,
	method string,
	host string,
	statusCode int,
	duration time.Duration,
	err error,
) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.host", host),
		attribute.Int("http.status_code", statusCode),
	}

	c.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))

	if err != nil {
		errorAttrs := []attribute.KeyValue{
			attribute.String("http.host", host),
			attribute.String("error.type", getErrorType(err)),
		}
		c.errorCount.Add(ctx, 1, metric.WithAttributes(errorAttrs...))
	}
}

// RecordDelivery records one answered notification and the per-token counts the backend reported.
func (c *HTTPClientCollector) RecordDelivery(
	ctx context.Context,
	host string,
	delivered bool,
	successCount int,
	failureCount int,
) {
	c.deliveryCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.host", host),
		attribute.Bool("push.delivered", delivered),
	))

	if successCount > 0 {
		c.tokenCount.Add(ctx, int64(successCount), metric.WithAttributes(
			attribute.String("http.host", host),
			attribute.String("push.outcome", "success"),
		))
	}
	if failureCount > 0 {
		c.tokenCount.Add(ctx, int64(failureCount), metric.WithAttributes(
			attribute.String("http.host", host),
			attribute.String("push.outcome", "failure"),
		))
	}
}

// RecordCircuitBreakerState records the current circuit breaker state
func (c *HTTPClientCollector) RecordCircuitBreakerState(
	ctx context.Context,
	host string,
	state string,
) {
	attrs := []attribute.KeyValue{
		attribute.String("http.host", host),
		attribute.String("circuit_breaker.state", state),
	}

	stateValue := circuitBreakerStateToInt(state)
	c.circuitBreakerState.Record(ctx, stateValue, metric.WithAttributes(attrs...))
}

// RecordCircuitBreakerStateChange records circuit breaker state transitions
func (c *HTTPClientCollector) RecordCircuitBreakerStateChange(
	ctx context.Context,
	host string,
	fromState string,
	toState string,
) {
	attrs := []attribute.KeyValue{
		attribute.String("http.host", host),
		attribute.String("circuit_breaker.from_state", fromState),
		attribute.String("circuit_breaker.to_state", toState),
	}

	c.circuitBreakerChanges.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func circuitBreakerStateToInt(state string) int64 {
	switch state {
	case gobreaker.StateClosed.String():
		return 0
	case gobreaker.StateOpen.String():
		return 1
	case gobreaker.StateHalfOpen.String():
		return 2
	default:
		return -1
	}
}

// typedError is implemented by the client's error types.
type typedError interface {
	ErrorType() string
}

// getErrorType maps err to a low-cardinality label.
func getErrorType(err error) string {
	if err == nil {
		return "none"
	}

	var typed typedError
	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		return "circuit_breaker_open"
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_breaker_half_open"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &typed):
		return typed.ErrorType()
	default:
		return "unknown"
	}
}
