package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	require.NoError(t, Load())

	api := APIConfig()
	assert.Equal(t, "http://localhost:8000/api/v1", api.BaseURL)
	assert.Equal(t, 10*time.Second, api.Timeout)
	assert.Equal(t, 60*time.Second, api.AITimeout)
	assert.Equal(t, 3, api.Retries)
	assert.Equal(t, 500*time.Millisecond, api.RetryWait)
	assert.Equal(t, 5*time.Second, api.RetryMaxWait)

	assert.Equal(t, ":3000", DashboardAddr())
	assert.Equal(t, 10*time.Second, RefreshInterval())
	assert.Empty(t, DatabaseDSN())
	assert.Empty(t, MQTTBroker())
	assert.False(t, UseCloudServices())
}

func TestLoadReadsEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("API_URL", "http://backend:9000/api/v1/")
	t.Setenv("API_RETRIES", "5")
	t.Setenv("USE_CLOUD_SERVICES", "true")
	require.NoError(t, Load())

	assert.Equal(t, "http://backend:9000/api/v1", APIConfig().BaseURL)
	assert.Equal(t, 5, APIConfig().Retries)
	assert.True(t, UseCloudServices())
}

func TestSetupLoggingFallsBackToInfo(t *testing.T) {
	viper.Reset()
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() {
		viper.Reset()
		zerolog.SetGlobalLevel(prev)
	})
	require.NoError(t, Load())
	viper.Set("LOG_LEVEL", "chatty")

	SetupLogging()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	viper.Set("LOG_LEVEL", "debug")
	SetupLogging()
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}
