package observability

import (
	"context"
	"testing"
	"time"

	"github.com/ssorr707/discord-system-bot2/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

func TestMetricsProvider_Disabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewTestConfig()
	cfg.OTelEnabled = false
	mp := NewMetricsProvider(cfg)

	require.NoError(t, mp.Initialize(context.Background()))
	assert.False(t, mp.isEnabled())

	// Recording on a disabled provider is a no-op
	mp.RecordCommand("welcome-status", OutcomeSuccess, time.Millisecond)
	mp.RecordNATSMessagePublished("welcome_settings_updated")
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMetricsProvider_NilIsSafe(t *testing.T) {
	t.Parallel()

	var mp *MetricsProvider
	assert.NotPanics(t, func() {
		mp.MeasureCommand("verification-status")(OutcomeError)
		mp.RecordNATSMessagePublished("verification_settings_updated")
	})
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMetricsProvider_UnknownExporter(t *testing.T) {
	t.Parallel()

	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "carrier-pigeon"

	err := NewMetricsProvider(cfg).Initialize(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown exporter type")
}

func TestMetricsProvider_ExporterNone(t *testing.T) {
	t.Parallel()

	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "none"
	mp := NewMetricsProvider(cfg)

	require.NoError(t, mp.Initialize(context.Background()))
	assert.False(t, mp.isEnabled())
	require.NoError(t, mp.Initialize(context.Background()))
}

func TestMetricsProvider_Console(t *testing.T) {
	t.Parallel()

	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "console"
	mp := NewMetricsProvider(cfg)

	require.NoError(t, mp.Initialize(context.Background()))
	assert.True(t, mp.isEnabled())
	mp.RecordCommand("welcome-setup", OutcomeValidationFailed, 20*time.Millisecond)
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestNewResource_CarriesServiceAttributes(t *testing.T) {
	t.Parallel()

	cfg := config.NewTestConfig()
	cfg.OTelServiceName = "settings-bot-test"
	cfg.Environment = "staging"

	res, err := newResource(context.Background(), cfg)
	require.NoError(t, err)

	serviceName, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "settings-bot-test", serviceName.AsString())

	environment, ok := res.Set().Value(attribute.Key("environment"))
	require.True(t, ok)
	assert.Equal(t, "staging", environment.AsString())
}
