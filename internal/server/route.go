package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// RouteRegistrar mounts a handler's endpoints on the server router.
type RouteRegistrar interface {
	RegisterRoutes(router gin.IRouter)
}

// AsRouteRegistrar provides constructor's result to the server's route group.
func AsRouteRegistrar(constructor any) any {
	return fx.Annotate(
		constructor,
		fx.As(new(RouteRegistrar)),
		fx.ResultTags(`group:"routes"`),
	)
}

func (h *HTTPServer) setupRoutes(registrars []RouteRegistrar) {
	h.router.Use(h.httpMetrics.Middleware())

	h.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "server is running",
		})
	})
	h.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	for _, registrar := range registrars {
		registrar.RegisterRoutes(h.router)
	}
}
