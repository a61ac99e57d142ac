package main

import (
	"time"

	"github.com/koungkub/fcm-push-notification/internal/client"
	"github.com/koungkub/fcm-push-notification/internal/handler"
	"github.com/koungkub/fcm-push-notification/internal/metrics"
	"github.com/koungkub/fcm-push-notification/internal/repository"
	"github.com/koungkub/fcm-push-notification/internal/server"
	"github.com/koungkub/fcm-push-notification/internal/service"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	_ "github.com/joho/godotenv/autoload"
)

// in-flight sends get this long to finish on SIGTERM
const shutdownTimeout = 30 * time.Second

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	fx.New(
		fx.StopTimeout(shutdownTimeout),
		fx.Provide(func() *zap.Logger { return logger }),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		metrics.Module,
		server.Module,
		handler.Module,
		service.Module,
		repository.Module,
		client.Module,
		fx.Invoke(func(*server.HTTPServer) {}),
	).Run()
}
