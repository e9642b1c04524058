package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
)

// Tables are created with plain DDL; queries go through the ent builders.
// {{pk}} expands to the dialect's auto-increment primary key.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS quizzes (
		id {{pk}},
		name TEXT NOT NULL,
		is_default BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id {{pk}},
		quiz_id BIGINT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
		value TEXT NOT NULL,
		section TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS question_options (
		id {{pk}},
		question_id BIGINT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		value TEXT NOT NULL,
		score INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS skin_types (
		id {{pk}},
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS results (
		id {{pk}},
		quiz_id BIGINT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
		skin_type_id BIGINT NOT NULL REFERENCES skin_types(id) ON DELETE CASCADE,
		od_range TEXT NOT NULL,
		sr_range TEXT NOT NULL,
		pn_range TEXT NOT NULL,
		wt_range TEXT NOT NULL,
		UNIQUE (quiz_id, skin_type_id)
	)`,
	`CREATE TABLE IF NOT EXISTS llm_events (
		id {{pk}},
		created_at BIGINT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms BIGINT NOT NULL,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS questions_quiz_id ON questions (quiz_id)`,
	`CREATE INDEX IF NOT EXISTS question_options_question_id ON question_options (question_id)`,
	`CREATE INDEX IF NOT EXISTS results_quiz_id ON results (quiz_id)`,
}

func (s *Store) migrate(ctx context.Context) error {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.dialect == dialect.Postgres {
		pk = "BIGSERIAL PRIMARY KEY"
	}
	for _, stmt := range schema {
		stmt = strings.ReplaceAll(stmt, "{{pk}}", pk)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
