package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/dermaquiz/internal/quiz"
)

type skinTypeRepo struct {
	s *Store
}

func (r *skinTypeRepo) List(ctx context.Context) ([]quiz.SkinType, error) {
	return r.list(ctx, r.s.db)
}

func (r *skinTypeRepo) list(ctx context.Context, q execQuerier) ([]quiz.SkinType, error) {
	query, args := r.s.builder().Select("id", "name", "description").
		From(entsql.Table("skin_types")).
		OrderBy("name").
		Query()

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list skin types: %w", err)
	}
	defer rows.Close()

	out := []quiz.SkinType{}
	for rows.Next() {
		var st quiz.SkinType
		if err := rows.Scan(&st.ID, &st.Name, &st.Description); err != nil {
			return nil, fmt.Errorf("scan skin type: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *skinTypeRepo) Create(ctx context.Context, st quiz.SkinType) (*quiz.SkinType, error) {
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		return r.create(ctx, tx, &st)
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *skinTypeRepo) create(ctx context.Context, tx *sql.Tx, st *quiz.SkinType) error {
	query, args := r.s.builder().Select("id").
		From(entsql.Table("skin_types")).
		Where(entsql.EQ("name", st.Name)).
		Query()
	var existing int64
	switch err := tx.QueryRowContext(ctx, query, args...).Scan(&existing); {
	case err == nil:
		return fmt.Errorf("skin type %q: %w", st.Name, ErrConflict)
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	id, err := r.s.insert(ctx, tx, r.s.builder().Insert("skin_types").
		Columns("name", "description").
		Values(st.Name, st.Description))
	if err != nil {
		return fmt.Errorf("insert skin type: %w", err)
	}
	st.ID = id
	return nil
}

func (r *skinTypeRepo) Seed(ctx context.Context, types []quiz.SkinType) (int, error) {
	n := 0
	err := r.s.inTx(ctx, func(tx *sql.Tx) error {
		existing, err := r.list(ctx, tx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		for _, st := range types {
			if err := r.create(ctx, tx, &st); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// DefaultSkinTypes is the reference list used by "serve --seed": the
// sixteen Baumann skin types, one per combination of the four sections.
func DefaultSkinTypes() []quiz.SkinType {
	poles := [][2]string{
		{"O", "D"}, // oily, dry
		{"S", "R"}, // sensitive, resistant
		{"P", "N"}, // pigmented, non-pigmented
		{"W", "T"}, // wrinkled, tight
	}
	var out []quiz.SkinType
	for i := range 16 {
		code := ""
		for bit, p := range poles {
			code += p[(i>>(3-bit))&1]
		}
		out = append(out, quiz.SkinType{
			Name:        code,
			Description: describe(code),
		})
	}
	return out
}

func describe(code string) string {
	words := map[byte]string{
		'O': "oily", 'D': "dry",
		'S': "sensitive", 'R': "resistant",
		'P': "pigmented", 'N': "non-pigmented",
		'W': "wrinkled", 'T': "tight",
	}
	s := ""
	for i := 0; i < len(code); i++ {
		if i > 0 {
			s += ", "
		}
		s += words[code[i]]
	}
	return s
}
