package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 4096, cfg.Calculator.MaxExpressionLength)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  address: ":9000"
  read_timeout: 60s
  enable_cors: true

calculator:
  max_expression_length: 128

logging:
  level: debug
  format: json
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Server.EnableCORS)
	assert.Equal(t, 128, cfg.Calculator.MaxExpressionLength)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromNonExistentFile(t *testing.T) {
	cfg, err := LoadFromFile("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.Address, cfg.Server.Address)
}

func TestInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(configPath, []byte("server:\n  address: [unclosed\n"), 0644)
	require.NoError(t, err)

	_, err = LoadFromFile(configPath)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CALC_SERVER_ADDRESS", ":7070")
	t.Setenv("CALC_SERVER_READ_TIMEOUT", "45s")
	t.Setenv("CALC_SERVER_ENABLE_CORS", "true")
	t.Setenv("CALC_MAX_EXPRESSION_LENGTH", "256")
	t.Setenv("CALC_LOG_LEVEL", "warn")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Server.EnableCORS)
	assert.Equal(t, 256, cfg.Calculator.MaxExpressionLength)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestEnvOverrides_Invalid(t *testing.T) {
	t.Setenv("CALC_MAX_EXPRESSION_LENGTH", "lots")

	_, err := NewLoader().Load()
	assert.Error(t, err)
}

func TestCmdOverrides(t *testing.T) {
	cmdArgs := map[string]string{
		"server.address":                   ":6060",
		"server.read_timeout":              "90s",
		"calculator.max_expression_length": "0",
		"logging.level":                    "error",
	}

	cfg, err := NewLoader().WithCmdArgs(cmdArgs).Load()
	require.NoError(t, err)

	assert.Equal(t, ":6060", cfg.Server.Address)
	assert.Equal(t, 90*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 0, cfg.Calculator.MaxExpressionLength)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestCmdOverrides_UnknownPath(t *testing.T) {
	_, err := NewLoader().WithCmdArgs(map[string]string{"server.port": "80"}).Load()
	assert.Error(t, err)

	_, err = NewLoader().WithCmdArgs(map[string]string{"server.address.host": "x"}).Load()
	assert.Error(t, err)
}

func TestPrecedence(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
server:
  address: ":9000"
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("CALC_SERVER_ADDRESS", ":8000")
	t.Setenv("CALC_LOG_LEVEL", "info")

	cfg, err := NewLoader().
		WithConfigPath(configPath).
		WithCmdArgs(map[string]string{"server.address": ":7000"}).
		Load()
	require.NoError(t, err)

	// Command-line wins over env and file
	assert.Equal(t, ":7000", cfg.Server.Address)
	// Env wins over file
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestSerializeAndParse(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Address = ":5000"
	cfg.Calculator.MaxExpressionLength = 10

	data, err := cfg.Serialize()
	require.NoError(t, err)

	parsed, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestClone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Address = ":5000"

	clone := cfg.Clone()
	assert.Equal(t, cfg, clone)

	cfg.Server.Address = ":6000"
	assert.Equal(t, ":5000", clone.Server.Address)
}
