package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/koungkub/fcm-push-notification/internal/client"
	"github.com/koungkub/fcm-push-notification/internal/repository"
	"github.com/koungkub/fcm-push-notification/internal/server"
	"github.com/koungkub/fcm-push-notification/internal/service"
	"go.uber.org/fx"
)

// Module serves the recipient gateway.
var Module = fx.Module("handler",
	fx.Provide(
		server.AsRouteRegistrar(NewNotificationHandler),
	),
)

type Notification struct {
	services service.NotificationProvider
}

type NotificationParams struct {
	fx.In

	Services service.NotificationProvider
}

func NewNotificationHandler(params NotificationParams) *Notification {
	return &Notification{
		services: params.Services,
	}
}

func (n *Notification) RegisterRoutes(router gin.IRouter) {
	v1 := router.Group("/api/v1.0")
	v1.POST("/recipient/:recipient/notify", n.NotifyHandler)
	v1.POST("/recipient/:recipient/devices", n.RegisterDeviceHandler)
	v1.POST("/notify", n.NotifyManyHandler)
}

func (n *Notification) NotifyHandler(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, GetRequestError(err))
		return
	}

	data, ok, err := n.services.NotifyRecipient(c.Request.Context(), c.Param("recipient"), service.Message{
		Title: req.Title,
		Body:  req.Body,
		Data:  req.Data,
	})
	respondDelivery(c, data, ok, err)
}

func (n *Notification) NotifyManyHandler(c *gin.Context) {
	var req NotifyManyRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, GetRequestError(err))
		return
	}

	data, ok, err := n.services.NotifyRecipients(c.Request.Context(), req.Recipients, service.Message{
		Title: req.Title,
		Body:  req.Body,
		Data:  req.Data,
	})
	respondDelivery(c, data, ok, err)
}

func (n *Notification) RegisterDeviceHandler(c *gin.Context) {
	var req RegisterDeviceRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, GetRequestError(err))
		return
	}

	err := n.services.RegisterDevice(c.Request.Context(), c.Param("recipient"), req.Token, repository.Platform(req.Platform))
	if err != nil {
		status, body := errorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "device registered",
	})
}

func respondDelivery(c *gin.Context, data client.DeliveryData, ok bool, err error) {
	if err != nil {
		status, body := errorResponse(err)
		c.JSON(status, body)
		return
	}

	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"message": "notification not delivered",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notification sent",
		"data":    data,
	})
}

func errorResponse(err error) (int, error) {
	var (
		validationErr *client.ValidationError
		transportErr  *client.TransportError
	)

	switch {
	case errors.Is(err, service.ErrNoDeviceTokens):
		return http.StatusNotFound, GetNotFoundError(err)
	case errors.Is(err, service.ErrInvalidPlatform), errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, GetRequestError(err)
	case errors.As(err, &transportErr):
		return http.StatusBadGateway, GetUpstreamError(err)
	default:
		return http.StatusInternalServerError, GetInternalError(err)
	}
}
