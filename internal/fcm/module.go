package fcm

import "go.uber.org/fx"

var Module = fx.Module("fcm",
	fx.Provide(
		fx.Annotate(
			NewClient,
			fx.As(new(Messenger)),
		),
		NewConfig,
	),
)
