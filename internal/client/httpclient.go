package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/fcm-push-notification/internal/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:generate mockgen -package mockclient -destination ./mock/mockclient.go . HTTPClientProvider,NotificationSender
type HTTPClientProvider interface {
	Post(ctx context.Context, u string, reqBody any) (Response, error)
}

var _ HTTPClientProvider = (*HTTPClient)(nil)

type HTTPClient struct {
	httpclient             *http.Client
	circuitBreakerRegistry *CircuitBreakerRegistry
	metricsCollector       *metrics.HTTPClientCollector
	logger                 *zap.Logger
}

// Response is a fully read HTTP response of any status.
type Response struct {
	Body       []byte
	StatusCode int
}

// HTTPClientConfig.Timeout of zero leaves requests bounded only by the caller's context.
type HTTPClientConfig struct {
	Timeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"0s"`
}

type HTTPClientParams struct {
	fx.In

	Config                 HTTPClientConfig
	CircuitBreakerRegistry *CircuitBreakerRegistry
	MetricsCollector       *metrics.HTTPClientCollector
	Logger                 *zap.Logger
}

func NewHTTPClient(params HTTPClientParams) *HTTPClient {
	return &HTTPClient{
		httpclient: &http.Client{
			Timeout: params.Config.Timeout,
		},
		circuitBreakerRegistry: params.CircuitBreakerRegistry,
		metricsCollector:       params.MetricsCollector,
		logger:                 params.Logger,
	}
}

func NewHTTPClientConfig() HTTPClientConfig {
	var cfg HTTPClientConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

func (c *HTTPClient) Post(ctx context.Context, u string, reqBody any) (Response, error) {
	start := time.Now()
	host, err := extractHost(u)
	if err != nil {
		return Response{}, err
	}

	circuitBreaker := c.circuitBreakerRegistry.GetOrCreate(host)

	cbState := circuitBreaker.State().String()
	c.metricsCollector.RecordCircuitBreakerState(ctx, host, cbState)

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		u,
		bytes.NewBuffer(jsonBody),
	)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := circuitBreaker.Execute(func() (Response, error) {
		resp, err := c.httpclient.Do(req)
		if err != nil {
			return Response{}, err
		}
		defer resp.Body.Close()

		rawBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return Response{}, err
		}

		out := Response{
			Body:       rawBody,
			StatusCode: resp.StatusCode,
		}
		// 5xx counts against the breaker but is still handed back to the caller.
		if resp.StatusCode >= http.StatusInternalServerError {
			return out, &StatusError{StatusCode: resp.StatusCode}
		}
		return out, nil
	})

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		err = nil
	}

	duration := time.Since(start)

	if err != nil {
		c.logger.Warn("push backend request failed",
			zap.String("host", host),
			zap.String("breaker_state", cbState),
			zap.Error(err),
		)
		c.metricsCollector.RecordRequest(ctx, http.MethodPost, host, 0, duration, err)
		return Response{}, err
	}

	var recordErr error
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		recordErr = &StatusError{StatusCode: resp.StatusCode}
	}
	c.metricsCollector.RecordRequest(ctx, http.MethodPost, host, resp.StatusCode, duration, recordErr)

	return resp, nil
}

func extractHost(u string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", err
	}
	return parsed.Host, nil
}
