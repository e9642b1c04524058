package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dermaquiz/internal/config"
)

func TestNewFile_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dermaquiz.log")
	log, err := NewFile(&config.Config{Env: "production", Log: config.Log{Level: "info"}}, path)
	require.NoError(t, err)

	log.Info("quiz loaded")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"quiz loaded"`)
}

func TestNew_RejectsBadLevel(t *testing.T) {
	_, err := New(&config.Config{Log: config.Log{Level: "loud"}})
	require.Error(t, err)
}

func TestDefaultFile_UsesStateHome(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")
	p, err := DefaultFile()
	require.NoError(t, err)
	assert.Equal(t, "/state/dermaquiz/dermaquiz.log", p)
}
