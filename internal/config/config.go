package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"vital-alert-service/internal/models"
	"vital-alert-service/internal/vitals"
)

// ChannelConfig holds the outbound endpoint for one notification channel.
// Either field missing means the channel is disabled.
type ChannelConfig struct {
	Endpoint string
	APIKey   string
}

// Enabled reports whether the channel has both an endpoint and a key.
func (c ChannelConfig) Enabled() bool {
	return c.Endpoint != "" && c.APIKey != ""
}

// Config holds application configuration loaded from environment.
type Config struct {
	API struct {
		Port     string
		BasePath string
	}
	DB struct {
		DSN string
	}
	Kafka struct {
		Broker  string
		Topic   string
		GroupID string
	}
	Logging struct {
		Dir   string
		Level string
	}
	SMS struct {
		ChannelConfig
		RatePerSecond int
	}
	Push      ChannelConfig
	Messaging ChannelConfig

	Thresholds vitals.ThresholdConfig
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	cfg.DB.DSN = os.Getenv("DB_DSN")

	// Kafka is optional; without a broker the IoT ingestion path is off.
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	cfg.Kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")

	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	cfg.SMS.Endpoint = os.Getenv("SMS_ENDPOINT")
	cfg.SMS.APIKey = os.Getenv("SMS_API_KEY")
	if rps, err := strconv.Atoi(os.Getenv("SMS_RATE_PER_SECOND")); err == nil && rps > 0 {
		cfg.SMS.RatePerSecond = rps
	}
	cfg.Push.Endpoint = os.Getenv("PUSH_ENDPOINT")
	cfg.Push.APIKey = os.Getenv("PUSH_API_KEY")
	cfg.Messaging.Endpoint = os.Getenv("MESSAGING_ENDPOINT")
	cfg.Messaging.APIKey = os.Getenv("MESSAGING_API_KEY")

	cfg.Thresholds = loadThresholds()

	// Validate required settings
	missing := []string{}
	if cfg.DB.DSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configurations: %v", missing)
	}

	// Apply defaults
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v1"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "vital_readings"
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "vital-alert-service"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.SMS.RatePerSecond == 0 {
		cfg.SMS.RatePerSecond = 10
	}

	return cfg, nil
}

// thresholdEnv names the override variable for each bound.
var thresholdEnv = map[models.VitalKind]struct{ low, high string }{
	models.KindSystolic:     {low: "VITAL_BP_SYS_LOW", high: "VITAL_BP_SYS_HIGH"},
	models.KindDiastolic:    {low: "VITAL_BP_DIA_LOW", high: "VITAL_BP_DIA_HIGH"},
	models.KindHeartRate:    {low: "VITAL_HR_LOW", high: "VITAL_HR_HIGH"},
	models.KindTemperature:  {low: "VITAL_TEMP_LOW", high: "VITAL_TEMP_HIGH"},
	models.KindSpO2:         {low: "VITAL_SPO2_LOW"},
	models.KindBloodGlucose: {low: "VITAL_GLUCOSE_LOW", high: "VITAL_GLUCOSE_HIGH"},
}

// loadThresholds starts from the clinical defaults and overrides bound values
// from the environment. A malformed value keeps the default instead of
// failing startup; severities are not overridable.
func loadThresholds() vitals.ThresholdConfig {
	cfg := vitals.DefaultThresholds()
	for kind, names := range thresholdEnv {
		bounds := cfg[kind]
		if bounds.Low != nil {
			if v, ok := envFloat(names.low); ok {
				bounds.Low = &vitals.Bound{Value: v, Severity: bounds.Low.Severity}
			}
		}
		if bounds.High != nil && names.high != "" {
			if v, ok := envFloat(names.high); ok {
				bounds.High = &vitals.Bound{Value: v, Severity: bounds.High.Severity}
			}
		}
		cfg[kind] = bounds
	}
	return cfg
}

func envFloat(name string) (float64, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
