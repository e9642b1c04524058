package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// PostgreSQL driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	db      *sql.DB
	dialect string
}

// Open connects to dsn and creates any missing tables. A postgres:// or
// postgresql:// URL selects PostgreSQL; anything else is a SQLite path.
func Open(dsn string) (*Store, error) {
	d, driver := dialectFor(dsn)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if d == dialect.SQLite {
		// Pragmas are per connection.
		db.SetMaxOpenConns(1)
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	s := &Store{db: db, dialect: d}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func dialectFor(dsn string) (name, driver string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return dialect.Postgres, "pgx"
	}
	return dialect.SQLite, "sqlite"
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the ent dialect name of the connection.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Quizzes returns the quiz repository.
func (s *Store) Quizzes() QuizRepo {
	return &quizRepo{s: s}
}

// SkinTypes returns the skin type repository.
func (s *Store) SkinTypes() SkinTypeRepo {
	return &skinTypeRepo{s: s}
}

// EventRepo returns the LLM event log.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{s: s}
}

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

// execQuerier is satisfied by both *sql.DB and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// insert runs an insert and returns the new row ID.
func (s *Store) insert(ctx context.Context, q execQuerier, ib *entsql.InsertBuilder) (int64, error) {
	if s.dialect == dialect.Postgres {
		query, args := ib.Returning("id").Query()
		var id int64
		if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	query, args := ib.Query()
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// mutate runs an update or delete and maps "no rows" to ErrNotFound.
func mutate(ctx context.Context, q execQuerier, b entsql.Querier) error {
	query, args := b.Query()
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// inTx runs fn in a transaction, rolling back on error.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for a small multi-reader server.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the local database file path in priority order:
// 1. DERMAQUIZ_DB environment variable
// 2. $XDG_DATA_HOME/dermaquiz/dermaquiz.db
// 3. ~/.local/share/dermaquiz/dermaquiz.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("DERMAQUIZ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "dermaquiz", "dermaquiz.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
// PostgreSQL URLs are left alone.
func EnsureDir(path string) error {
	if d, _ := dialectFor(path); d == dialect.Postgres {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
