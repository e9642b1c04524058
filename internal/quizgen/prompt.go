package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/dermaquiz/internal/quiz"
)

const systemPrompt = `You help a dermatology clinic write intake questionnaires that classify a patient's skin type.

The quiz has four sections, each a scale between two poles:
- OD: oily (high score) versus dry (low score)
- SR: sensitive (high score) versus resistant (low score)
- PN: pigmented (high score) versus non-pigmented (low score)
- WT: wrinkled (high score) versus tight (low score)

Rules:
- Write every question for the requested section only.
- Questions are about observable, everyday experience. Plain language, no jargon, no diagnosis.
- Each question has between 2 and 5 answers ordered from one pole to the other.
- Scores are small integers. Answers pointing at the high pole score higher. Use 0 for neutral answers.
- Do not repeat or paraphrase any question from the "existing" list.`

// buildPrompt renders the user turn for one drafting request.
func buildPrompt(in Input, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Section: %s (%s)\n", in.Section, in.Section.Label())
	fmt.Fprintf(&b, "Number of questions: %d\n", in.Count)
	if in.Guidance != "" {
		fmt.Fprintf(&b, "Clinic guidance: %s\n", strings.TrimSpace(in.Guidance))
	}
	b.WriteString("\nExisting questions in this section:\n")
	b.WriteString(numbered(in.Existing, cfg.MaxExisting))
	return b.String()
}

// numbered lists the last max items, or "None".
func numbered(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, s)
	}
	return strings.Join(lines, "\n")
}

// existingFor collects the texts of the quiz's questions in section.
func existingFor(qs quiz.QuizSet, section quiz.Section) []string {
	var out []string
	for _, q := range qs.Questions {
		if q.Section == section {
			out = append(out, q.Value)
		}
	}
	return out
}
