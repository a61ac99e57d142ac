package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/koungkub/fcm-push-notification/internal/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NotificationSender delivers one notification to a set of FCM tokens. ok is
// false when the backend answered but reported no successful delivery.
type NotificationSender interface {
	SendNotification(
		ctx context.Context,
		title string,
		body string,
		fcmTokens []string,
		data map[string]any,
	) (delivery DeliveryData, ok bool, err error)
}

var _ NotificationSender = (*NotificationClient)(nil)

// NotificationClient posts notifications to a push backend. Its configuration
// is fixed at construction, so one client may be shared across goroutines.
type NotificationClient struct {
	config           Config
	apiURL           string
	sendURL          string
	httpclient       HTTPClientProvider
	metricsCollector *metrics.HTTPClientCollector
	logger           *zap.Logger
}

type NotificationClientParams struct {
	fx.In

	Config           Config
	HTTPClient       HTTPClientProvider           `optional:"true"`
	MetricsCollector *metrics.HTTPClientCollector `optional:"true"`
	Logger           *zap.Logger                  `optional:"true"`
}

// New builds a client for cfg with a default transport, no metrics and no logging.
func New(cfg Config) (*NotificationClient, error) {
	return NewNotificationClient(NotificationClientParams{Config: cfg})
}

func NewNotificationClient(params NotificationClientParams) (*NotificationClient, error) {
	cfg := params.Config.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	collector := params.MetricsCollector
	if collector == nil {
		// a nil meter never fails
		collector, _ = metrics.NewHTTPClientCollector(nil)
	}

	httpclient := params.HTTPClient
	if httpclient == nil {
		httpclient = NewHTTPClient(HTTPClientParams{
			CircuitBreakerRegistry: NewCircuitBreakerRegistry(CircuitBreakerRegistryParams{
				Config:           DefaultCircuitBreakerRegistryConfig(),
				Logger:           logger,
				MetricsCollector: collector,
			}),
			MetricsCollector: collector,
			Logger:           logger,
		})
	}

	apiURL := cfg.APIURL()

	return &NotificationClient{
		config:           cfg,
		apiURL:           apiURL,
		sendURL:          apiURL + cfg.SendPath,
		httpclient:       httpclient,
		metricsCollector: collector,
		logger:           logger,
	}, nil
}

func (c *NotificationClient) APIURL() string { return c.apiURL }

func (c *NotificationClient) SendURL() string { return c.sendURL }

func (c *NotificationClient) Config() Config { return c.config }

// SendNotification validates the notification, posts it once and interprets
// the reply with the configured SuccessPolicy. A reply that reports no
// delivery yields ok == false and a nil error.
func (c *NotificationClient) SendNotification(
	ctx context.Context,
	title string,
	body string,
	fcmTokens []string,
	data map[string]any,
) (DeliveryData, bool, error) {
	req := NotificationRequest{
		Title:     title,
		Body:      body,
		FCMTokens: fcmTokens,
		Data:      data,
	}
	if err := req.Validate(); err != nil {
		return DeliveryData{}, false, err
	}
	if req.Data == nil {
		req.Data = map[string]any{}
	}

	c.logger.Debug("sending push notification",
		zap.String("url", c.sendURL),
		zap.Int("tokens", len(fcmTokens)),
	)

	resp, err := c.httpclient.Post(ctx, c.sendURL, req)
	if err != nil {
		return DeliveryData{}, false, &TransportError{Op: "post", URL: c.sendURL, Cause: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return DeliveryData{}, false, &TransportError{
			Op:         "post",
			URL:        c.sendURL,
			StatusCode: resp.StatusCode,
			Cause:      &StatusError{StatusCode: resp.StatusCode},
		}
	}

	var parsed NotificationResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return DeliveryData{}, false, &TransportError{Op: "decode", URL: c.sendURL, StatusCode: resp.StatusCode, Cause: err}
	}

	delivery, anySuccess := decodeDeliveryData(parsed.Data)
	delivered := c.config.SuccessPolicy.delivered(parsed.Status, anySuccess)
	c.metricsCollector.RecordDelivery(ctx, c.config.Host, delivered, delivery.SuccessCount, delivery.FailureCount)

	c.logger.Debug("push notification answered",
		zap.String("url", c.sendURL),
		zap.Bool("delivered", delivered),
		zap.Int("success_count", delivery.SuccessCount),
		zap.Int("failure_count", delivery.FailureCount),
	)

	if !delivered {
		return DeliveryData{}, false, nil
	}
	return delivery, true, nil
}
