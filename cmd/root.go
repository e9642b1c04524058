package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/dermaquiz/internal/api"
	"github.com/abhisek/dermaquiz/internal/config"
	"github.com/abhisek/dermaquiz/internal/credentials"
	"github.com/abhisek/dermaquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "dermaquiz",
	Short: "Build and maintain skin assessment quizzes",
	Long: "dermaquiz manages the skin assessment quizzes of the clinic backend: questions,\n" +
		"answer options with scores, and the score ranges that map answers to skin types.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("api", "", "API base URL (overrides api.base_url)")
	pf.String("token", "", "Bearer token (overrides the saved login)")
	pf.String("config", "", "Config file (default: ./config.yaml or the user config dir)")
	pf.String("db", "", "Local state database (overrides DERMAQUIZ_DB)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(skinTypeCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig reads the config file and environment, then applies the
// persistent flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("api"); v != "" {
		cfg.API.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("token"); v != "" {
		cfg.API.Token = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DB = v
	}
	return cfg, nil
}

// resolveDBPath returns the local database path: --db or db from config,
// then DERMAQUIZ_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func credentialStore() (*credentials.Store, error) {
	path, err := credentials.DefaultPath()
	if err != nil {
		return nil, err
	}
	return credentials.New(path), nil
}

// newClient builds the API client. A token from flags or environment wins
// over the saved login; a 401 clears the saved login either way.
func newClient(cfg *config.Config, log *zap.Logger) (*api.Client, error) {
	creds, err := credentialStore()
	if err != nil {
		return nil, err
	}
	token := cfg.API.Token
	if token == "" {
		if token, err = creds.Load(); err != nil {
			return nil, err
		}
	}

	return api.New(cfg.API.BaseURL,
		api.WithToken(token),
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(log),
		api.OnUnauthorized(func() {
			if err := creds.Clear(); err != nil {
				log.Warn("clear credentials", zap.Error(err))
				return
			}
			log.Info("session expired, saved login cleared")
		}),
	)
}

// cliClient is newClient for one-shot commands, which log nothing.
func cliClient(cmd *cobra.Command) (*api.Client, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	c, err := newClient(cfg, zap.NewNop())
	if err != nil {
		return nil, nil, fmt.Errorf("api client: %w", err)
	}
	return c, cfg, nil
}
