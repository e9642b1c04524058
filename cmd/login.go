package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save the bearer token used for the backend",
	Long:  "Saves the token given with --token, or read from stdin, and checks it against the backend.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Token: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read token: %w", err)
			}
			token = strings.TrimSpace(line)
		}
		if token == "" {
			return errors.New("no token given")
		}

		creds, err := credentialStore()
		if err != nil {
			return err
		}
		if err := creds.Save(token); err != nil {
			return err
		}

		// --token already reached the client through loadConfig.
		client, cfg, err := cliClient(cmd)
		if err != nil {
			return err
		}
		if _, err := client.ListSkinTypes(cmd.Context()); err != nil {
			return fmt.Errorf("%s rejected the token: %w", cfg.API.BaseURL, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s (token saved to %s).\n", cfg.API.BaseURL, creds.Path())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := credentialStore()
		if err != nil {
			return err
		}
		if err := creds.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}
