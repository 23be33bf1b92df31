package config

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Second, cfg.CaptionDelay)
	assert.Equal(t, 3*time.Second, cfg.PosterDelay)
	assert.Equal(t, 5*time.Second, cfg.VideoDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.AssistantDelay)
	assert.Equal(t, 10*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromLookup_AssemblesDSNFromParts(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"DB_USER":     "hub",
		"DB_PASSWORD": "secret",
		"DB_HOST":     "db",
		"DB_PORT":     "6543",
		"DB_NAME":     "hub",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://hub:secret@db:6543/hub?sslmode=disable", cfg.DatabaseURL)
}

func TestFromLookup_DatabaseURLWins(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"DATABASE_URL": "postgres://x@y/z",
		"DB_HOST":      "ignored",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://x@y/z", cfg.DatabaseURL)
}

func TestFromLookup_InvalidDuration(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{"CAPTION_DELAY": "soon"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CAPTION_DELAY")
}

func TestFromLookup_DelayMustFitTimeout(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{
		"VIDEO_DELAY":        "5s",
		"GENERATION_TIMEOUT": "4s",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VIDEO_DELAY")
}

func TestFromLookup_TrustedProxies(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)

	cfg, err = FromLookup(lookupFrom(map[string]string{"TRUSTED_PROXIES": "10.0.0.0/8, 192.168.1.7"}))
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.7/32"),
	}, cfg.TrustedProxies)

	_, err = FromLookup(lookupFrom(map[string]string{"TRUSTED_PROXIES": "10.0.0.0/99"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRUSTED_PROXIES")
}

func TestFromLookup_WorkerMetricsAddr(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, ":9091", cfg.WorkerMetricsAddr)

	cfg, err = FromLookup(lookupFrom(map[string]string{"WORKER_METRICS_ADDR": ""}))
	require.NoError(t, err)
	assert.Empty(t, cfg.WorkerMetricsAddr)
}
