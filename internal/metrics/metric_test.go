package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNewMetricConfig(t *testing.T) {
	t.Setenv("APP_NAME", "push-relay")
	t.Setenv("METRICS_NAMESPACE", "push")

	assert.Equal(t, MetricConfig{AppName: "push-relay", Namespace: "push"}, NewMetricConfig())
}

func TestNewMetric(t *testing.T) {
	provider, err := NewMeterProvider(MetricConfig{})
	require.NoError(t, err)

	lc := fxtest.NewLifecycle(t)
	meter, err := NewMetric(lc, MetricParams{
		Config:        MetricConfig{AppName: "test"},
		MeterProvider: provider,
	})
	require.NoError(t, err)

	collector, err := NewHTTPClientCollector(meter)
	require.NoError(t, err)
	assert.NotNil(t, collector)

	lc.RequireStart()
	lc.RequireStop()
}
