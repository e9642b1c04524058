package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/dermaquiz/internal/app"
	"github.com/abhisek/dermaquiz/internal/logger"
)

// runApp launches the dashboard. The terminal belongs to the TUI, so logs
// go to a file.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logPath := cfg.Log.File
	if logPath == "" {
		if logPath, err = logger.DefaultFile(); err != nil {
			return err
		}
	}
	log, err := logger.NewFile(cfg, logPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = log.Sync() }()

	client, err := newClient(cfg, log)
	if err != nil {
		return fmt.Errorf("api client: %w", err)
	}

	if err := app.Run(app.Options{Client: client, Logger: log}); err != nil {
		log.Error("dashboard exited", zap.Error(err))
		return err
	}
	return nil
}
