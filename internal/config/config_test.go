package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("APP_ENVIRONMENT", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "parking-garage", cfg.OTelServiceName)
	assert.Equal(t, "http://localhost:4318", cfg.OTelEndpoint)
	assert.False(t, cfg.OTelEndpointSet)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("OTEL_SERVICE_NAME", "garage-east")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")
	t.Setenv("APP_ENVIRONMENT", "development")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "garage-east", cfg.OTelServiceName)
	assert.Equal(t, "http://collector:4318", cfg.OTelEndpoint)
	assert.True(t, cfg.OTelEndpointSet)
	assert.Equal(t, "development", cfg.Environment)
}
