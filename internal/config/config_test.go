package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "https://www.10kdrop.com", cfg.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Timeout)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, time.Duration(0), cfg.RetryWait)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("ZKPARSER_BASE_URL", "http://localhost:9999")
	t.Setenv("ZKPARSER_TIMEOUT", "3s")
	t.Setenv("ZKPARSER_MAX_ATTEMPTS", "2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  error
	}{
		{"zero timeout", "ZKPARSER_TIMEOUT", "0s", ErrInvalidTimeout},
		{"zero attempts", "ZKPARSER_MAX_ATTEMPTS", "0", ErrInvalidMaxAttempts},
		{"negative wait", "ZKPARSER_RETRY_WAIT", "-1s", ErrInvalidRetryWait},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Parse()
			assert.True(t, errors.Is(err, tt.want), "Parse() error = %v, want %v", err, tt.want)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Setenv("ZKPARSER_MAX_ATTEMPTS", "many")

	_, err := Parse()
	require.Error(t, err)
}
