package fcm

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// MaxTokensPerMessage is the FCM limit for a single multicast message.
const MaxTokensPerMessage = 500

var (
	ErrNoTokens       = errors.New("fcm: no tokens")
	ErrTooManyTokens  = fmt.Errorf("fcm: more than %d tokens", MaxTokensPerMessage)
	errNilBatchResult = errors.New("fcm: empty batch response")
)

//go:generate mockgen -package mockfcm -destination ./mock/mockfcm.go . Messenger
type Messenger interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (MulticastResult, error)
}

// MulticastResult is the per-token outcome of one multicast message.
type MulticastResult struct {
	SuccessCount int           `json:"successCount"`
	FailureCount int           `json:"failureCount"`
	Responses    []TokenResult `json:"responses"`
}

type TokenResult struct {
	Token     string `json:"token"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

var _ Messenger = (*Client)(nil)

type Client struct {
	sender multicastSender
	logger *zap.Logger
}

type ClientParams struct {
	fx.In

	Config Config
	Logger *zap.Logger
}

type Config struct {
	CredentialsFile string `envconfig:"FIREBASE_CREDENTIALS_FILE"`
	ProjectID       string `envconfig:"FIREBASE_PROJECT_ID"`
}

func NewConfig() Config {
	var cfg Config
	envconfig.MustProcess("", &cfg)

	return cfg
}

// NewClient initializes a Firebase app. Without a credentials file the
// application default credentials are used.
func NewClient(params ClientParams) (*Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if params.Config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(params.Config.CredentialsFile))
	}

	var appConfig *firebase.Config
	if params.Config.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: params.Config.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}

	return newClient(msgClient, params.Logger), nil
}

func newClient(sender multicastSender, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{sender: sender, logger: logger}
}

// SendMulticast sends one notification to every token. The token list is
// never split; more than MaxTokensPerMessage tokens is rejected.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (MulticastResult, error) {
	switch {
	case len(tokens) == 0:
		return MulticastResult{}, ErrNoTokens
	case len(tokens) > MaxTokensPerMessage:
		return MulticastResult{}, ErrTooManyTokens
	}

	resp, err := c.sender.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		return MulticastResult{}, fmt.Errorf("failed to send FCM multicast: %w", err)
	}
	if resp == nil {
		return MulticastResult{}, errNilBatchResult
	}

	result := MulticastResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
		Responses:    make([]TokenResult, 0, len(resp.Responses)),
	}
	for i, sendResp := range resp.Responses {
		tr := TokenResult{Success: sendResp.Success, MessageID: sendResp.MessageID}
		if i < len(tokens) {
			tr.Token = tokens[i]
		}
		if sendResp.Error != nil {
			tr.Error = sendResp.Error.Error()
			c.logger.Warn("fcm token rejected",
				zap.Int("index", i),
				zap.Bool("unregistered", messaging.IsUnregistered(sendResp.Error)),
				zap.Error(sendResp.Error),
			)
		}
		result.Responses = append(result.Responses, tr)
	}

	c.logger.Info("fcm multicast sent",
		zap.Int("success_count", result.SuccessCount),
		zap.Int("failure_count", result.FailureCount),
	)

	return result, nil
}
