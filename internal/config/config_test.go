package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.False(t, cfg.Production())
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("DERMAQUIZ_API_BASE_URL", "https://clinic.example/api")
	t.Setenv("DERMAQUIZ_API_TIMEOUT", "3s")
	t.Setenv("DERMAQUIZ_ENV", "production")
	t.Setenv("DERMAQUIZ_TOKEN", "secret")
	t.Setenv("DERMAQUIZ_SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://clinic.example/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.True(t, cfg.Production())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "sk-test", cfg.LLMConfig().OpenAI.APIKey)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://10.0.0.5:9000/api
server:
  addr: ":9999"
  db: postgres://quiz@db/quiz
llm:
  provider: mock
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000/api", cfg.API.BaseURL)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "postgres://quiz@db/quiz", cfg.Server.DB)
	assert.Equal(t, "mock", cfg.LLMConfig().Provider)
}

func TestLoad_ConfigInWorkingDir(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("env: dev\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(func() { _ = os.Unsetenv("DERMAQUIZ_SERVER_TOKEN") })
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DERMAQUIZ_SERVER_TOKEN=from-dotenv\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Server.Token)
}
