package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  redis:
    host: localhost
    port: 6379
ollama:
  host: http://ollama:11434
  model: llama3.2:3b
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Redis.Host)
	assert.Equal(t, "http://ollama:11434", cfg.Ollama.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigChannelDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  redis:
    host: localhost
    port: 6379
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cloudmusic_dte", cfg.Bus.ChannelPrefix)
	assert.Equal(t, "cloudmusic_dte:chat_requests", cfg.Bus.ChatRequests)
	assert.Equal(t, "cloudmusic_dte:analysis_requests", cfg.Bus.AnalysisRequests)
	assert.Equal(t, "cloudmusic_dte:ai_requests", cfg.Bus.GeneralRequests)
	assert.Equal(t, "cloudmusic_dte:ai_responses", cfg.Bus.Responses)

	assert.Equal(t, 5, cfg.Analysis.BatchConcurrency)
	assert.Equal(t, 3000, cfg.Analysis.MaxDocumentChars)
	assert.Equal(t, "llama3.2:3b", cfg.Ollama.Model)
}

func TestLoadConfigCustomPrefix(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  redis:
    host: localhost
    port: 6379
bus:
  channel_prefix: staging_dte
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "staging_dte:chat_requests", cfg.Bus.ChatRequests)
	assert.Equal(t, "staging_dte:ai_responses", cfg.Bus.Responses)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  redis:
    host: ""
`)

	_, err := Load(path)
	assert.Error(t, err)
}
