package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/dermaquiz/internal/logger"
	"github.com/abhisek/dermaquiz/internal/server"
	"github.com/abhisek/dermaquiz/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference quiz backend",
	Long: "Serves the quiz REST API from a local SQLite file or a PostgreSQL database,\n" +
		"for developing against without the clinic backend.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			cfg.Server.Addr = v
		}
		if v, _ := cmd.Flags().GetString("server-token"); v != "" {
			cfg.Server.Token = v
		}

		log, err := logger.New(cfg)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		dsn := cfg.Server.DB
		if dsn == "" {
			if dsn, err = resolveDBPath(cfg); err != nil {
				return err
			}
		} else if err := store.EnsureDir(dsn); err != nil {
			return err
		}
		st, err := store.Open(dsn)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if seed, _ := cmd.Flags().GetBool("seed"); seed {
			n, err := st.SkinTypes().Seed(ctx, store.DefaultSkinTypes())
			if err != nil {
				return fmt.Errorf("seed skin types: %w", err)
			}
			log.Info("seeded skin types", zap.Int("count", n))
		}
		if cfg.Server.Token == "" {
			log.Warn("no server token set, API is open")
		}

		srv := server.New(st.Quizzes(), st.SkinTypes(), server.Options{
			Token:          cfg.Server.Token,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Logger:         log,
		})
		log.Info("serving", zap.String("addr", cfg.Server.Addr), zap.String("dialect", st.Dialect()))
		if err := srv.Run(ctx, cfg.Server.Addr); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
	serveCmd.Flags().String("server-token", "", "Bearer token clients must send (overrides DERMAQUIZ_SERVER_TOKEN)")
	serveCmd.Flags().Bool("seed", false, "Insert the default skin types into an empty database")
}
