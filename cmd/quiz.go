package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/dermaquiz/internal/api"
	"github.com/abhisek/dermaquiz/internal/editor"
	"github.com/abhisek/dermaquiz/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "List, inspect and manage quiz sets",
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quiz sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := cliClient(cmd)
		if err != nil {
			return err
		}
		quizzes, err := client.ListQuizzes(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(quizzes) == 0 {
			fmt.Fprintln(out, "No quizzes found.")
			return nil
		}
		fmt.Fprintf(out, "%-6s  %-7s  %s\n", "ID", "Default", "Name")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, q := range quizzes {
			def := ""
			if q.IsDefault {
				def = "✓"
			}
			fmt.Fprintf(out, "%-6d  %-7s  %s\n", q.ID, def, q.Name)
		}
		return nil
	},
}

var quizShowCmd = &cobra.Command{
	Use:   "show <quiz-id>",
	Short: "Show questions, section bounds and result mappings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		client, _, err := cliClient(cmd)
		if err != nil {
			return err
		}
		snap, err := editor.NewShell(client, id).Load(cmd.Context())
		if err != nil {
			return err
		}
		printQuiz(cmd.OutOrStdout(), snap)
		return nil
	},
}

func printQuiz(out io.Writer, snap *editor.Snapshot) {
	qs := snap.Quiz
	sep := strings.Repeat("─", 60)
	bounds := snap.Bounds()

	fmt.Fprintf(out, "Quiz:      %s (#%d)\n", qs.Name, qs.ID)
	fmt.Fprintf(out, "Default:   %v\n", qs.IsDefault)
	for _, sec := range quiz.Sections() {
		fmt.Fprintf(out, "  %s %-26s %s\n", sec, sec.Label(), bounds.For(sec))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, "QUESTIONS")
	fmt.Fprintln(out, sep)
	if len(qs.Questions) == 0 {
		fmt.Fprintln(out, "(none)")
	}
	for _, q := range qs.Questions {
		fmt.Fprintf(out, "#%-5d [%s] %s\n", q.ID, q.Section, q.Value)
		for _, o := range q.Options {
			fmt.Fprintf(out, "         #%-5d %4d  %s\n", o.ID, o.Score, o.Value)
		}
	}

	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, "RESULTS")
	fmt.Fprintln(out, sep)
	mappings := snap.Configured()
	if len(mappings) == 0 {
		fmt.Fprintln(out, "(none)")
	}
	results := make([]quiz.Result, 0, len(mappings))
	for _, m := range mappings {
		r := m.Result
		results = append(results, r)
		status := "ok"
		if _, err := quiz.ValidateResult(r, bounds); err != nil {
			status = "invalid: " + strings.ReplaceAll(err.Error(), "\n", "; ")
		}
		fmt.Fprintf(out, "#%-5d %-8s OD %-7s SR %-7s PN %-7s WT %-7s %s\n",
			r.ID, m.SkinType.Name, r.ODRange, r.SRRange, r.PNRange, r.WTRange, status)
	}
	for _, o := range quiz.FindOverlaps(results) {
		fmt.Fprintf(out, "warning: %s range of %s (%s) overlaps %s (%s)\n",
			o.Section, snap.SkinTypeName(o.A), o.RangeA, snap.SkinTypeName(o.B), o.RangeB)
	}
	if avail := snap.Available(); len(avail) > 0 {
		names := make([]string, len(avail))
		for i, st := range avail {
			names[i] = fmt.Sprintf("%s (#%d)", st.Name, st.ID)
		}
		fmt.Fprintf(out, "\nNot mapped: %s\n", strings.Join(names, ", "))
	}
}

// quizFile is the YAML accepted by "quiz create".
type quizFile struct {
	Name      string `yaml:"name"`
	Default   bool   `yaml:"default"`
	Questions []struct {
		Value   string `yaml:"value"`
		Section string `yaml:"section"`
		Options []struct {
			Value string `yaml:"value"`
			Score int    `yaml:"score"`
		} `yaml:"options"`
	} `yaml:"questions"`
}

// parseQuizFile builds a QuizSet through the quiz constructors so a bad
// file fails before anything is sent.
func parseQuizFile(data []byte) (quiz.QuizSet, error) {
	var f quizFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return quiz.QuizSet{}, fmt.Errorf("parse quiz file: %w", err)
	}
	questions := make([]quiz.Question, 0, len(f.Questions))
	for i, fq := range f.Questions {
		sec, err := quiz.ParseSection(fq.Section)
		if err != nil {
			return quiz.QuizSet{}, fmt.Errorf("question %d: %w", i+1, err)
		}
		opts := make([]quiz.Option, 0, len(fq.Options))
		for j, fo := range fq.Options {
			o, err := quiz.NewOption(fo.Value, fo.Score)
			if err != nil {
				return quiz.QuizSet{}, fmt.Errorf("question %d option %d: %w", i+1, j+1, err)
			}
			opts = append(opts, o)
		}
		q, err := quiz.NewQuestion(fq.Value, sec, opts...)
		if err != nil {
			return quiz.QuizSet{}, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}
	return quiz.NewQuizSet(f.Name, f.Default, questions...)
}

var quizCreateCmd = &cobra.Command{
	Use:   "create -f quiz.yaml",
	Short: "Create a quiz with its questions and options in one call",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		var data []byte
		var err error
		if path == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return fmt.Errorf("read quiz file: %w", err)
		}
		qs, err := parseQuizFile(data)
		if err != nil {
			return err
		}

		client, _, err := cliClient(cmd)
		if err != nil {
			return err
		}
		created, err := client.CreateQuiz(cmd.Context(), qs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created quiz #%d %q with %d questions.\n", created.ID, created.Name, len(qs.Questions))
		return nil
	},
}

var quizRenameCmd = &cobra.Command{
	Use:   "rename <quiz-id> <name>",
	Short: "Rename a quiz",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return patchQuiz(cmd, args[0], func(p *api.QuizPatch) error {
			p.Name = strings.TrimSpace(args[1])
			if p.Name == "" {
				return &quiz.ShapeError{Entity: "quiz", Fields: []string{"name is required"}}
			}
			return nil
		})
	},
}

var quizDefaultCmd = &cobra.Command{
	Use:   "default <quiz-id>",
	Short: "Mark a quiz as the default (--off to clear)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		off, _ := cmd.Flags().GetBool("off")
		return patchQuiz(cmd, args[0], func(p *api.QuizPatch) error {
			p.IsDefault = !off
			return nil
		})
	},
}

// patchQuiz loads the quiz so the PUT carries both fields, then applies fn.
func patchQuiz(cmd *cobra.Command, rawID string, fn func(*api.QuizPatch) error) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	client, _, err := cliClient(cmd)
	if err != nil {
		return err
	}
	qs, err := client.GetQuiz(cmd.Context(), id)
	if err != nil {
		return err
	}
	patch := api.QuizPatch{Name: qs.Name, IsDefault: qs.IsDefault}
	if err := fn(&patch); err != nil {
		return err
	}
	if err := client.UpdateQuiz(cmd.Context(), id, patch); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated quiz #%d: %q default=%v\n", id, patch.Name, patch.IsDefault)
	return nil
}

var quizDeleteCmd = &cobra.Command{
	Use:   "delete <quiz-id>",
	Short: "Delete a quiz with its questions and mappings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		client, _, err := cliClient(cmd)
		if err != nil {
			return err
		}
		qs, err := client.GetQuiz(cmd.Context(), id)
		if err != nil {
			return err
		}
		ok, err := confirm(cmd, fmt.Sprintf("Delete quiz %q with %d questions?", qs.Name, len(qs.Questions)))
		if err != nil || !ok {
			return err
		}
		if err := client.DeleteQuiz(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted quiz #%d.\n", id)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", s)
	}
	return id, nil
}

// confirm asks on stdin unless --yes was given.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
	return false, nil
}

func init() {
	quizCreateCmd.Flags().StringP("file", "f", "", "Quiz YAML file (- for stdin)")
	_ = quizCreateCmd.MarkFlagRequired("file")
	quizDefaultCmd.Flags().Bool("off", false, "Clear the default flag instead")
	quizDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizShowCmd)
	quizCmd.AddCommand(quizCreateCmd)
	quizCmd.AddCommand(quizRenameCmd)
	quizCmd.AddCommand(quizDefaultCmd)
	quizCmd.AddCommand(quizDeleteCmd)
}
