package config

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engage-escrow/internal/config/configs"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, configs.BackendMemory, cfg.Ledger.Backend)
	assert.Equal(t, int32(6), cfg.Ledger.TokenDecimals)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Auth.Leeway)
	assert.Empty(t, cfg.Ledger.Genesis)
	assert.False(t, cfg.Otel.Enabled)
	assert.Equal(t, "localhost:4318", cfg.Otel.Endpoint)
	assert.Equal(t, 1.0, cfg.Otel.SampleRatio)
}

func TestLoadGenesis(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("LEDGER_GENESIS", "0x00000000000000000000000000000000000000b2:5000000:100; 0x00000000000000000000000000000000000000a1:0:42")

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.Ledger.Genesis, 2)
	assert.Equal(t, common.HexToAddress("0xb2"), cfg.Ledger.Genesis[0].Address)
	assert.Equal(t, uint64(5000000), cfg.Ledger.Genesis[0].Tokens)
	assert.Equal(t, uint64(42), cfg.Ledger.Genesis[1].Lamports)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"AUTH_ENABLED": "true"}},
		{"bad backend", map[string]string{"AUTH_ENABLED": "false", "LEDGER_BACKEND": "sqlite"}},
		{"bad genesis", map[string]string{"AUTH_ENABLED": "false", "LEDGER_GENESIS": "0xb2:1"}},
		{"bad address", map[string]string{"AUTH_ENABLED": "false", "LEDGER_GENESIS": "nope:1:1"}},
		{"bad sample ratio", map[string]string{"AUTH_ENABLED": "false", "OTEL_SAMPLE_RATIO": "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	assert.Equal(t, "json", configs.Logger{Format: "JSON"}.SlogFormat())
	assert.Equal(t, "text", configs.Logger{Format: "yaml"}.SlogFormat())
	assert.Equal(t, "DEBUG", configs.Logger{Level: "debug"}.SlogLevel().String())
}
