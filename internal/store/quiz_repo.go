package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/dermaquiz/internal/quiz"
)

type quizRepo struct {
	s *Store
}

func (r *quizRepo) List(ctx context.Context) ([]quiz.QuizSet, error) {
	query, args := r.s.builder().Select("id", "name", "is_default").
		From(entsql.Table("quizzes")).
		OrderBy("id").
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	out := []quiz.QuizSet{}
	for rows.Next() {
		var qs quiz.QuizSet
		if err := rows.Scan(&qs.ID, &qs.Name, &qs.IsDefault); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		out = append(out, qs)
	}
	return out, rows.Err()
}

func (r *quizRepo) Get(ctx context.Context, id int64) (*quiz.QuizSet, error) {
	var qs quiz.QuizSet
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		b := r.s.builder()

		query, args := b.Select("id", "name", "is_default").
			From(entsql.Table("quizzes")).
			Where(entsql.EQ("id", id)).
			Query()
		err := tx.QueryRowContext(ctx, query, args...).Scan(&qs.ID, &qs.Name, &qs.IsDefault)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("quiz %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get quiz %d: %w", id, err)
		}

		if qs.Questions, err = r.questions(ctx, tx, id); err != nil {
			return err
		}
		qs.Results, err = r.results(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &qs, nil
}

func (r *quizRepo) questions(ctx context.Context, tx *sql.Tx, quizID int64) ([]quiz.Question, error) {
	b := r.s.builder()
	query, args := b.Select("id", "quiz_id", "value", "section").
		From(entsql.Table("questions")).
		Where(entsql.EQ("quiz_id", quizID)).
		OrderBy("id").
		Query()

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	var questions []quiz.Question
	var ids []any
	index := map[int64]int{}
	for rows.Next() {
		var q quiz.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Value, &q.Section); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan question: %w", err)
		}
		index[q.ID] = len(questions)
		ids = append(ids, q.ID)
		questions = append(questions, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return questions, nil
	}

	query, args = b.Select("id", "question_id", "value", "score").
		From(entsql.Table("question_options")).
		Where(entsql.In("question_id", ids...)).
		OrderBy("id").
		Query()
	rows, err = tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var o quiz.Option
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.Value, &o.Score); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		i := index[o.QuestionID]
		questions[i].Options = append(questions[i].Options, o)
	}
	return questions, rows.Err()
}

var resultColumns = []string{"id", "quiz_id", "skin_type_id", "od_range", "sr_range", "pn_range", "wt_range"}

func (r *quizRepo) results(ctx context.Context, tx *sql.Tx, quizID int64) ([]quiz.Result, error) {
	query, args := r.s.builder().Select(resultColumns...).
		From(entsql.Table("results")).
		Where(entsql.EQ("quiz_id", quizID)).
		OrderBy("id").
		Query()

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []quiz.Result
	for rows.Next() {
		var res quiz.Result
		if err := rows.Scan(&res.ID, &res.QuizID, &res.SkinTypeID,
			&res.ODRange, &res.SRRange, &res.PNRange, &res.WTRange); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *quizRepo) Create(ctx context.Context, qs quiz.QuizSet) (*quiz.QuizSet, error) {
	var id int64
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = r.s.insert(ctx, tx, r.s.builder().Insert("quizzes").
			Columns("name", "is_default").
			Values(qs.Name, qs.IsDefault))
		if err != nil {
			return fmt.Errorf("insert quiz: %w", err)
		}
		if qs.IsDefault {
			if err := r.clearDefault(ctx, tx, id); err != nil {
				return err
			}
		}
		for _, q := range qs.Questions {
			if _, err := r.insertQuestion(ctx, tx, id, q); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *quizRepo) clearDefault(ctx context.Context, tx *sql.Tx, keep int64) error {
	query, args := r.s.builder().Update("quizzes").
		Set("is_default", false).
		Where(entsql.NEQ("id", keep)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear default flag: %w", err)
	}
	return nil
}

func (r *quizRepo) Update(ctx context.Context, id int64, name string, isDefault bool) error {
	return r.s.inTx(ctx, func(tx *sql.Tx) error {
		err := mutate(ctx, tx, r.s.builder().Update("quizzes").
			Set("name", name).
			Set("is_default", isDefault).
			Where(entsql.EQ("id", id)))
		if err != nil {
			return fmt.Errorf("update quiz %d: %w", id, err)
		}
		if isDefault {
			return r.clearDefault(ctx, tx, id)
		}
		return nil
	})
}

func (r *quizRepo) Delete(ctx context.Context, id int64) error {
	if err := mutate(ctx, r.s.db, r.s.builder().Delete("quizzes").Where(entsql.EQ("id", id))); err != nil {
		return fmt.Errorf("delete quiz %d: %w", id, err)
	}
	return nil
}

// exists reports whether a row with the given ID is present in table.
func (r *quizRepo) exists(ctx context.Context, q execQuerier, table string, id int64) (bool, error) {
	query, args := r.s.builder().Select("id").
		From(entsql.Table(table)).
		Where(entsql.EQ("id", id)).
		Query()
	var got int64
	err := q.QueryRowContext(ctx, query, args...).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *quizRepo) insertQuestion(ctx context.Context, tx *sql.Tx, quizID int64, q quiz.Question) (*quiz.Question, error) {
	id, err := r.s.insert(ctx, tx, r.s.builder().Insert("questions").
		Columns("quiz_id", "value", "section").
		Values(quizID, q.Value, string(q.Section)))
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}
	q.ID = id
	q.QuizID = quizID
	options := make([]quiz.Option, 0, len(q.Options))
	for _, o := range q.Options {
		created, err := r.insertOption(ctx, tx, id, o)
		if err != nil {
			return nil, err
		}
		options = append(options, *created)
	}
	q.Options = options
	return &q, nil
}

func (r *quizRepo) insertOption(ctx context.Context, q execQuerier, questionID int64, o quiz.Option) (*quiz.Option, error) {
	id, err := r.s.insert(ctx, q, r.s.builder().Insert("question_options").
		Columns("question_id", "value", "score").
		Values(questionID, o.Value, o.Score))
	if err != nil {
		return nil, fmt.Errorf("insert option: %w", err)
	}
	o.ID = id
	o.QuestionID = questionID
	return &o, nil
}

func (r *quizRepo) CreateQuestion(ctx context.Context, quizID int64, q quiz.Question) (*quiz.Question, error) {
	var created *quiz.Question
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		ok, err := r.exists(ctx, tx, "quizzes", quizID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("quiz %d: %w", quizID, ErrNotFound)
		}
		created, err = r.insertQuestion(ctx, tx, quizID, q)
		return err
	})
	return created, err
}

func (r *quizRepo) UpdateQuestion(ctx context.Context, q quiz.Question) error {
	err := mutate(ctx, r.s.db, r.s.builder().Update("questions").
		Set("value", q.Value).
		Set("section", string(q.Section)).
		Where(entsql.EQ("id", q.ID)))
	if err != nil {
		return fmt.Errorf("update question %d: %w", q.ID, err)
	}
	return nil
}

func (r *quizRepo) DeleteQuestion(ctx context.Context, id int64) error {
	if err := mutate(ctx, r.s.db, r.s.builder().Delete("questions").Where(entsql.EQ("id", id))); err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return nil
}

func (r *quizRepo) CreateOption(ctx context.Context, questionID int64, o quiz.Option) (*quiz.Option, error) {
	var created *quiz.Option
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		ok, err := r.exists(ctx, tx, "questions", questionID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("question %d: %w", questionID, ErrNotFound)
		}
		created, err = r.insertOption(ctx, tx, questionID, o)
		return err
	})
	return created, err
}

func (r *quizRepo) UpdateOption(ctx context.Context, o quiz.Option) error {
	err := mutate(ctx, r.s.db, r.s.builder().Update("question_options").
		Set("value", o.Value).
		Set("score", o.Score).
		Where(entsql.EQ("id", o.ID)))
	if err != nil {
		return fmt.Errorf("update option %d: %w", o.ID, err)
	}
	return nil
}

func (r *quizRepo) DeleteOption(ctx context.Context, id int64) error {
	if err := mutate(ctx, r.s.db, r.s.builder().Delete("question_options").Where(entsql.EQ("id", id))); err != nil {
		return fmt.Errorf("delete option %d: %w", id, err)
	}
	return nil
}

func (r *quizRepo) CreateResult(ctx context.Context, res quiz.Result) (*quiz.Result, error) {
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		for table, id := range map[string]int64{"quizzes": res.QuizID, "skin_types": res.SkinTypeID} {
			ok, err := r.exists(ctx, tx, table, id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s %d: %w", table, id, ErrNotFound)
			}
		}

		query, args := r.s.builder().Select("id").
			From(entsql.Table("results")).
			Where(entsql.And(
				entsql.EQ("quiz_id", res.QuizID),
				entsql.EQ("skin_type_id", res.SkinTypeID),
			)).
			Query()
		var existing int64
		switch err := tx.QueryRowContext(ctx, query, args...).Scan(&existing); {
		case err == nil:
			return fmt.Errorf("skin type %d on quiz %d: %w", res.SkinTypeID, res.QuizID, ErrConflict)
		case !errors.Is(err, sql.ErrNoRows):
			return err
		}

		id, err := r.s.insert(ctx, tx, r.s.builder().Insert("results").
			Columns(resultColumns[1:]...).
			Values(res.QuizID, res.SkinTypeID, res.ODRange, res.SRRange, res.PNRange, res.WTRange))
		if err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
		res.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *quizRepo) UpdateResult(ctx context.Context, res quiz.Result) error {
	err := mutate(ctx, r.s.db, r.s.builder().Update("results").
		Set("od_range", res.ODRange).
		Set("sr_range", res.SRRange).
		Set("pn_range", res.PNRange).
		Set("wt_range", res.WTRange).
		Where(entsql.EQ("id", res.ID)))
	if err != nil {
		return fmt.Errorf("update result %d: %w", res.ID, err)
	}
	return nil
}

func (r *quizRepo) DeleteResult(ctx context.Context, id int64) error {
	if err := mutate(ctx, r.s.db, r.s.builder().Delete("results").Where(entsql.EQ("id", id))); err != nil {
		return fmt.Errorf("delete result %d: %w", id, err)
	}
	return nil
}
