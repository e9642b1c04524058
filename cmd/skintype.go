package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dermaquiz/internal/quiz"
)

var skinTypeCmd = &cobra.Command{
	Use:     "skin-type",
	Aliases: []string{"skintype"},
	Short:   "List and add skin types",
}

var skinTypeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skin types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := cliClient(cmd)
		if err != nil {
			return err
		}
		types, err := client.ListSkinTypes(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-5s  %-10s  %s\n", "ID", "Name", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, st := range types {
			fmt.Fprintf(out, "%-5d  %-10s  %s\n", st.ID, st.Name, st.Description)
		}
		return nil
	},
}

var skinTypeAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a skin type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, _ := cmd.Flags().GetString("description")
		st, err := quiz.NewSkinType(args[0], desc)
		if err != nil {
			return err
		}
		client, _, err := cliClient(cmd)
		if err != nil {
			return err
		}
		created, err := client.CreateSkinType(cmd.Context(), st)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added skin type #%d %s.\n", created.ID, created.Name)
		return nil
	},
}

func init() {
	skinTypeAddCmd.Flags().StringP("description", "d", "", "Description")
	skinTypeCmd.AddCommand(skinTypeListCmd)
	skinTypeCmd.AddCommand(skinTypeAddCmd)
}
