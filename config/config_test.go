package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{"PORT", "GEMINI_API_KEY", "GEMINI_MODEL", "LOG_LEVEL", "ANALYSIS_DELAY", "CORS_ORIGINS", "AI_MAX_INFLIGHT"}

// isolate runs the test in an empty directory with every config key unset.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestConfigLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.GeminiKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.AnalysisDelay)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 4, cfg.AIMaxInFlight)
	assert.Equal(t, "(not set)", cfg.MaskedGeminiKey())
}

func TestConfigLoad_WithEnvVars(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "3000")
	t.Setenv("GEMINI_API_KEY", "secret-key-1234")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ANALYSIS_DELAY", "250ms")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://finailytics.example")
	t.Setenv("AI_MAX_INFLIGHT", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.AnalysisDelay)
	assert.Equal(t, []string{"http://localhost:5173", "https://finailytics.example"}, cfg.CORSOrigins)
	assert.Equal(t, 8, cfg.AIMaxInFlight)
	assert.Equal(t, "***1234", cfg.MaskedGeminiKey())
}

func TestConfigLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		key   string
		value string
	}{
		{"LOG_LEVEL", "loud"},
		{"ANALYSIS_DELAY", "soon"},
		{"ANALYSIS_DELAY", "-1s"},
		{"AI_MAX_INFLIGHT", "0"},
		{"AI_MAX_INFLIGHT", "many"},
	}

	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			isolate(t)
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestConfigLoad_ShellEnvTakesPrecedence(t *testing.T) {
	dir := isolate(t)

	envContent := "GEMINI_API_KEY=dotenv-key\nGEMINI_MODEL=gemini-dotenv\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envContent), 0644))

	t.Setenv("GEMINI_API_KEY", "shell-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "shell-key", cfg.GeminiKey)
	assert.Equal(t, "gemini-dotenv", cfg.GeminiModel)
}
