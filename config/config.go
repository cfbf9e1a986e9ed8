package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production Rechord API endpoint. The override env var
// exists for test harnesses; real deployments never change it.
const DefaultBaseURL = "https://be.rechord.life/public/api"

type Config struct {
	AppEnv    string
	API       APIConfig
	Avatar    AvatarConfig
	Drafts    DraftConfig
	Telemetry TelemetryConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AvatarConfig struct {
	JPEGQuality int
}

type DraftConfig struct {
	Path string
}

type TelemetryConfig struct {
	ServiceName          string
	ServiceVersion       string
	OTLPEndpoint         string
	OTLPTracesEndpoint   string
	OTLPMetricsEndpoint  string
	OTLPProtocol         string
	OTLPHeaders          map[string]string
	OTLPInsecure         bool
	ExportTimeout        time.Duration
	MetricExportInterval time.Duration
}

func Load() (Config, error) {
	appEnv := getEnv("APP_ENV", "dev")

	timeout, err := time.ParseDuration(getEnv("RECHORD_HTTP_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RECHORD_HTTP_TIMEOUT: %w", err)
	}

	quality, err := strconv.Atoi(getEnv("RECHORD_AVATAR_QUALITY", "80"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RECHORD_AVATAR_QUALITY: %w", err)
	}
	if quality < 1 || quality > 100 {
		return Config{}, fmt.Errorf("RECHORD_AVATAR_QUALITY out of range: %d", quality)
	}

	exportTimeout, err := time.ParseDuration(getEnv("OTEL_EXPORT_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid OTEL_EXPORT_TIMEOUT: %w", err)
	}
	metricInterval, err := time.ParseDuration(getEnv("OTEL_METRIC_EXPORT_INTERVAL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid OTEL_METRIC_EXPORT_INTERVAL: %w", err)
	}

	cfg := Config{
		AppEnv: appEnv,
		API: APIConfig{
			BaseURL: getEnv("RECHORD_API_BASE_URL", DefaultBaseURL),
			Timeout: timeout,
		},
		Avatar: AvatarConfig{
			JPEGQuality: quality,
		},
		Drafts: DraftConfig{
			Path: getEnv("RECHORD_DRAFTS_PATH", "rechord-drafts.db"),
		},
		Telemetry: TelemetryConfig{
			ServiceName:          getEnv("OTEL_SERVICE_NAME", "rechord-client"),
			ServiceVersion:       getEnv("OTEL_SERVICE_VERSION", "dev"),
			OTLPEndpoint:         os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			OTLPTracesEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"),
			OTLPMetricsEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"),
			OTLPProtocol:         getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
			OTLPHeaders:          parseHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")),
			OTLPInsecure:         getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", appEnv != "prod"),
			ExportTimeout:        exportTimeout,
			MetricExportInterval: metricInterval,
		},
	}

	if !strings.HasPrefix(cfg.API.BaseURL, "http://") && !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		return Config{}, fmt.Errorf("invalid RECHORD_API_BASE_URL: %s", cfg.API.BaseURL)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// parseHeaders reads the comma-separated key=value list used by the
// OTEL_EXPORTER_OTLP_HEADERS convention.
func parseHeaders(value string) map[string]string {
	if value == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		headers[parts[0]] = parts[1]
	}
	if len(headers) == 0 {
		return nil
	}
	return headers
}
