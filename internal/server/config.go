package server

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type HTTPConfig struct {
	Port              string        `envconfig:"HTTP_SERVER_PORT" default:":8080"`
	ReadHeaderTimeout time.Duration `envconfig:"HTTP_SERVER_READ_HEADER_TIMEOUT" default:"10s"`
}

func NewConfig() HTTPConfig {
	var cfg HTTPConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}
