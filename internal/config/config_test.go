package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EZT_LLM_PROVIDER", "")
	t.Setenv("EZT_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTP.Addr)
	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "mistral", cfg.LLM.Model)
	assert.Equal(t, time.Second, cfg.LLM.ProbeTimeout)
	assert.Equal(t, time.Second, cfg.DB.Timeout)
	assert.Equal(t, "llm:cache", cfg.Redis.CacheKey)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.IsDev())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EZT_HTTP_ADDR", ":9999")
	t.Setenv("EZT_LLM_URL", "http://llm:11434/")
	t.Setenv("EZT_LLM_PROBE_TIMEOUT", "250ms")
	t.Setenv("EZT_RATE_BURST", "3")
	t.Setenv("EZT_DB_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, "http://llm:11434", cfg.LLM.URL)
	assert.Equal(t, 250*time.Millisecond, cfg.LLM.ProbeTimeout)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.False(t, cfg.DB.Migrate)
}

func TestLoadGeminiRequiresKey(t *testing.T) {
	t.Setenv("EZT_LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrGeminiKeyMissing)
}

func TestLoadGeminiDefaultModel(t *testing.T) {
	t.Setenv("EZT_LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("EZT_LLM_MODEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
}

func TestLoadUnknownProvider(t *testing.T) {
	t.Setenv("EZT_LLM_PROVIDER", "llamafile")

	_, err := Load()
	require.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		dev  bool
		want string
	}{
		{"", true, "debug"},
		{"", false, "warn"},
		{"INFO", false, "info"},
		{"verbose", false, "warn"},
		{"error", true, "error"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, logLevel(tc.in, tc.dev), "logLevel(%q, %v)", tc.in, tc.dev)
	}
}
