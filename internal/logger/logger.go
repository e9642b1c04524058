package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/abhisek/dermaquiz/internal/config"
)

// New builds the process logger. Production environments get JSON output,
// everything else the development console encoder.
func New(cfg *config.Config) (*zap.Logger, error) {
	return build(cfg, nil)
}

// NewFile builds a logger that writes only to path. The dashboard uses it
// because the terminal belongs to the TUI while it runs.
func NewFile(cfg *config.Config, path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	return build(cfg, []string{path})
}

func build(cfg *config.Config, outputs []string) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.Production() {
		zc = zap.NewProductionConfig()
	}

	if cfg.Log.Level != "" {
		lvl, err := zap.ParseAtomicLevel(cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		zc.Level = lvl
	}

	if outputs != nil {
		zc.OutputPaths = outputs
		zc.ErrorOutputPaths = outputs
	}

	return zc.Build()
}

// DefaultFile returns the dashboard log path under the XDG state dir.
func DefaultFile() (string, error) {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "dermaquiz", "dermaquiz.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "dermaquiz", "dermaquiz.log"), nil
}
