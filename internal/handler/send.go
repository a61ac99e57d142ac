package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/koungkub/fcm-push-notification/internal/fcm"
	"github.com/koungkub/fcm-push-notification/internal/server"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RelayModule serves the push backend that NotificationClient talks to.
var RelayModule = fx.Module("relay_handler",
	fx.Provide(
		server.AsRouteRegistrar(NewSendHandler),
	),
)

type Send struct {
	messenger fcm.Messenger
	logger    *zap.Logger
}

type SendParams struct {
	fx.In

	Messenger fcm.Messenger
	Logger    *zap.Logger `optional:"true"`
}

func NewSendHandler(params SendParams) *Send {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Send{
		messenger: params.Messenger,
		logger:    logger,
	}
}

func (s *Send) RegisterRoutes(router gin.IRouter) {
	router.POST("/send", s.SendHandler)
	router.POST("/api/send", s.SendHandler)
}

func (s *Send) SendHandler(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, newRelayError(ErrorCodeRequest, err))
		return
	}

	data, err := stringifyData(req.Data)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, newRelayError(ErrorCodeRequest, err))
		return
	}

	result, err := s.messenger.SendMulticast(c.Request.Context(), req.FCMTokens, req.Title, req.Body, data)
	if err != nil {
		if errors.Is(err, fcm.ErrTooManyTokens) || errors.Is(err, fcm.ErrNoTokens) {
			c.JSON(http.StatusUnprocessableEntity, newRelayError(ErrorCodeRequest, err))
			return
		}
		s.logger.Error("fcm multicast failed", zap.Int("tokens", len(req.FCMTokens)), zap.Error(err))
		c.JSON(http.StatusBadGateway, newRelayError(ErrorCodeProvider, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": result.SuccessCount > 0,
		"data":   result,
	})
}

// stringifyData flattens the payload to the string map FCM accepts. Strings
// pass through and everything else is sent as its JSON text.
func stringifyData(data map[string]any) (map[string]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(data))
	for key, value := range data {
		if s, ok := value.(string); ok {
			out[key] = s
			continue
		}
		b, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		out[key] = string(b)
	}
	return out, nil
}
