package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dermaquiz/internal/editor"
	"github.com/abhisek/dermaquiz/internal/quiz"
)

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Map skin types to score ranges",
}

// loadShell parses the quiz ID and loads its snapshot.
func loadShell(cmd *cobra.Command, rawQuizID string) (*editor.Shell, *editor.Snapshot, error) {
	quizID, err := parseID(rawQuizID)
	if err != nil {
		return nil, nil, err
	}
	client, _, err := cliClient(cmd)
	if err != nil {
		return nil, nil, err
	}
	shell := editor.NewShell(client, quizID)
	snap, err := shell.Load(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return shell, snap, nil
}

var resultAddCmd = &cobra.Command{
	Use:   "add <quiz-id> <skin-type-id>",
	Short: "Map a skin type with every range at 0-0",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stID, err := parseID(args[1])
		if err != nil {
			return err
		}
		shell, snap, err := loadShell(cmd, args[0])
		if err != nil {
			return err
		}
		if _, err := shell.AddResult(cmd.Context(), snap, stID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Mapped %s to quiz #%d. Set its ranges with \"result set\".\n", snap.SkinTypeName(stID), shell.QuizID())
		return nil
	},
}

var resultSetCmd = &cobra.Command{
	Use:   "set <quiz-id> <result-id>",
	Short: "Validate and save the ranges of a mapping",
	Long: "Ranges are \"min-max\" and must lie within the section bounds derived from the\n" +
		"quiz's questions. Sections without a flag keep their current range.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resultID, err := parseID(args[1])
		if err != nil {
			return err
		}
		shell, snap, err := loadShell(cmd, args[0])
		if err != nil {
			return err
		}
		r, ok := snap.Quiz.FindResult(resultID)
		if !ok {
			return fmt.Errorf("result %d: %w", resultID, editor.ErrUnknownEntity)
		}
		for _, sec := range quiz.Sections() {
			flag := sectionFlag(sec)
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				r = r.WithRange(sec, v)
			}
		}

		after, err := shell.SaveResult(cmd.Context(), snap, r)
		if err != nil {
			return err
		}
		saved, _ := after.Quiz.FindResult(resultID)
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: OD %s  SR %s  PN %s  WT %s\n",
			after.SkinTypeName(saved.SkinTypeID), saved.ODRange, saved.SRRange, saved.PNRange, saved.WTRange)
		return nil
	},
}

var resultDeleteCmd = &cobra.Command{
	Use:   "delete <quiz-id> <result-id>",
	Short: "Remove a skin type mapping",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resultID, err := parseID(args[1])
		if err != nil {
			return err
		}
		shell, snap, err := loadShell(cmd, args[0])
		if err != nil {
			return err
		}
		r, ok := snap.Quiz.FindResult(resultID)
		if !ok {
			return fmt.Errorf("result %d: %w", resultID, editor.ErrUnknownEntity)
		}
		ok, err = confirm(cmd, fmt.Sprintf("Remove the %s mapping?", snap.SkinTypeName(r.SkinTypeID)))
		if err != nil || !ok {
			return err
		}
		if _, err := shell.DeleteResult(cmd.Context(), resultID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed mapping #%d.\n", resultID)
		return nil
	},
}

func sectionFlag(s quiz.Section) string {
	switch s {
	case quiz.SectionOilyDry:
		return "od"
	case quiz.SectionSensitive:
		return "sr"
	case quiz.SectionPigmented:
		return "pn"
	default:
		return "wt"
	}
}

func init() {
	for _, sec := range quiz.Sections() {
		resultSetCmd.Flags().String(sectionFlag(sec), "", sec.Label()+" range, e.g. 4-9")
	}
	resultDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	resultCmd.AddCommand(resultAddCmd)
	resultCmd.AddCommand(resultSetCmd)
	resultCmd.AddCommand(resultDeleteCmd)
}
