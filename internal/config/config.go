package config

import (
	"os"
)

type Config struct {
	Port            string
	OTelServiceName string
	OTelEndpoint    string
	// OTelEndpointSet reports whether the endpoint came from the environment
	// rather than the default.
	OTelEndpointSet bool
	Environment     string
}

func Load() *Config {
	endpoint, endpointSet := os.LookupEnv("OTEL_EXPORTER_OTLP_ENDPOINT")

	return &Config{
		Port:            envOr("APP_PORT", "8080"),
		OTelServiceName: envOr("OTEL_SERVICE_NAME", "parking-garage"),
		OTelEndpoint:    envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		OTelEndpointSet: endpointSet && endpoint != "",
		Environment:     envOr("APP_ENVIRONMENT", "production"),
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
