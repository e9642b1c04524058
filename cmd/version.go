package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/dermaquiz/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "dermaquiz", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		res, err := selfupdate.NewChecker(selfupdate.WithTimeout(10*time.Second)).
			Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if res.UpdateAvailable {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is available: %s\nRun \"dermaquiz update\" to install it.\n", res.LatestVersion, res.ReleaseURL)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Up to date.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Also check GitHub for a newer release")
}
