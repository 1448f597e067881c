package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func Load() error {
	// Dashboard
	viper.SetDefault("DASHBOARD_ADDR", ":3000")
	viper.SetDefault("REFRESH_INTERVAL", "10s")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")

	// Backend API
	viper.SetDefault("API_URL", "http://localhost:8000/api/v1")
	viper.SetDefault("API_TIMEOUT", "10s")
	viper.SetDefault("AI_TIMEOUT", "60s")
	viper.SetDefault("API_RETRIES", 3)
	viper.SetDefault("API_RETRY_WAIT", "500ms")
	viper.SetDefault("API_RETRY_MAX_WAIT", "5s")

	// Optional sidecars; empty disables them
	viper.SetDefault("DB_DSN", "")
	viper.SetDefault("MQTT_BROKER", "")
	viper.SetDefault("MQTT_TOPIC", "industrial/alerts/resolved")

	// AWS Configuration
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_S3_BUCKET", "industrial-dashboard-reports")
	viper.SetDefault("AWS_SNS_TOPIC_ARN", "")
	viper.SetDefault("USE_CLOUD_SERVICES", "false") // Toggle for local vs cloud

	// Dev backend
	viper.SetDefault("DEV_BACKEND_ADDR", ":8000")
	viper.SetDefault("DEV_FIXTURES", "")

	viper.AutomaticEnv()
	return nil
}

// API holds the backend client settings.
type API struct {
	BaseURL      string
	Timeout      time.Duration
	AITimeout    time.Duration
	Retries      int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
}

func APIConfig() API {
	return API{
		BaseURL:      strings.TrimRight(viper.GetString("API_URL"), "/"),
		Timeout:      viper.GetDuration("API_TIMEOUT"),
		AITimeout:    viper.GetDuration("AI_TIMEOUT"),
		Retries:      viper.GetInt("API_RETRIES"),
		RetryWait:    viper.GetDuration("API_RETRY_WAIT"),
		RetryMaxWait: viper.GetDuration("API_RETRY_MAX_WAIT"),
	}
}

func DashboardAddr() string          { return viper.GetString("DASHBOARD_ADDR") }
func RefreshInterval() time.Duration { return viper.GetDuration("REFRESH_INTERVAL") }
func DatabaseDSN() string            { return viper.GetString("DB_DSN") }
func MQTTBroker() string             { return viper.GetString("MQTT_BROKER") }
func MQTTTopic() string              { return viper.GetString("MQTT_TOPIC") }
func AWSRegion() string              { return viper.GetString("AWS_REGION") }
func S3Bucket() string               { return viper.GetString("AWS_S3_BUCKET") }
func SNSTopicArn() string            { return viper.GetString("AWS_SNS_TOPIC_ARN") }
func UseCloudServices() bool         { return viper.GetBool("USE_CLOUD_SERVICES") }
func DevBackendAddr() string         { return viper.GetString("DEV_BACKEND_ADDR") }
func DevFixtures() string            { return viper.GetString("DEV_FIXTURES") }

// SetupLogging configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func SetupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if strings.EqualFold(viper.GetString("LOG_FORMAT"), "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
