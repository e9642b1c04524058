package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/dermaquiz/internal/llm"
	"github.com/abhisek/dermaquiz/internal/logger"
	"github.com/abhisek/dermaquiz/internal/quiz"
	"github.com/abhisek/dermaquiz/internal/quizgen"
	"github.com/abhisek/dermaquiz/internal/store"
)

var draftCmd = &cobra.Command{
	Use:   "draft <quiz-id>",
	Short: "Draft questions for a section with a language model",
	Long: "Asks the configured LLM provider for new questions in one section, with\n" +
		"options and integer scores. Drafts are printed; --apply creates them.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quizID, err := parseID(args[0])
		if err != nil {
			return err
		}
		rawSection, _ := cmd.Flags().GetString("section")
		section, err := quiz.ParseSection(rawSection)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		guidance, _ := cmd.Flags().GetString("guidance")
		apply, _ := cmd.Flags().GetBool("apply")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("provider"); v != "" {
			cfg.LLM.Provider = v
		}
		log, err := logger.New(cfg)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		client, err := newClient(cfg, zap.NewNop())
		if err != nil {
			return fmt.Errorf("api client: %w", err)
		}
		ctx := cmd.Context()
		qs, err := client.GetQuiz(ctx, quizID)
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		provider, err := llm.NewProvider(ctx, cfg.LLMConfig(), st.EventRepo(), log)
		if err != nil {
			return err
		}

		in := quizgen.InputFor(*qs, section, count)
		in.Guidance = guidance
		batch, err := quizgen.New(provider, quizgen.DefaultConfig()).Draft(ctx, in)
		out := cmd.OutOrStdout()
		if batch != nil {
			printDrafts(out, batch)
		}
		if err != nil {
			if errors.Is(err, quizgen.ErrNoDrafts) {
				return fmt.Errorf("%w: the model's %d suggestions were all rejected", err, len(batch.Rejected))
			}
			return err
		}

		if !apply {
			fmt.Fprintln(out, "\nRun again with --apply to create these questions.")
			return nil
		}
		for _, q := range batch.Questions {
			created, err := client.CreateQuestion(ctx, quizID, q)
			if err != nil {
				return fmt.Errorf("create %q: %w", q.Value, err)
			}
			fmt.Fprintf(out, "Created question #%d.\n", created.ID)
		}
		return nil
	},
}

func printDrafts(out io.Writer, b *quizgen.Batch) {
	for i, q := range b.Questions {
		lo, hi := q.ScoreSpan()
		fmt.Fprintf(out, "%d. [%s] %s  (%d..%d)\n", i+1, q.Section, q.Value, lo, hi)
		for _, o := range q.Options {
			fmt.Fprintf(out, "     %4d  %s\n", o.Score, o.Value)
		}
	}
	for _, r := range b.Rejected {
		fmt.Fprintf(out, "rejected: %q: %v\n", r.Value, r.Reason)
	}
	fmt.Fprintf(out, "tokens: %d in / %d out\n", b.Usage.InputTokens, b.Usage.OutputTokens)
}

func init() {
	f := draftCmd.Flags()
	f.StringP("section", "s", "", "Section to draft for (OD, SR, PN, WT)")
	f.IntP("count", "n", 3, "Number of questions")
	f.String("guidance", "", "Extra instructions for the model, e.g. the clinic's tone")
	f.String("provider", "", "LLM provider (anthropic, openai, gemini, openrouter)")
	f.Bool("apply", false, "Create the drafted questions")
	_ = draftCmd.MarkFlagRequired("section")
}
