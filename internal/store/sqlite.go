// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides user context persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Wait for locks instead of failing when writers overlap
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS user_contexts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			flow TEXT NOT NULL,
			step TEXT NOT NULL,
			variables TEXT NOT NULL DEFAULT '{}',
			last_interaction TEXT NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_user_contexts_user_id
			ON user_contexts(user_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

// Close closes the underlying database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetOrCreateContext returns the context for userID, inserting the default
// record first if none exists. The insert uses ON CONFLICT DO NOTHING so
// concurrent first messages for the same user serialize at the unique index
// instead of race-creating duplicates.
func (s *SQLiteStore) GetOrCreateContext(ctx context.Context, userID string) (*UserContext, error) {
	insert := `
		INSERT INTO user_contexts (id, user_id, flow, step, variables, last_interaction)
		VALUES (?, ?, ?, ?, '{}', ?)
		ON CONFLICT(user_id) DO NOTHING
	`

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, insert, uuid.New().String(), userID, DefaultFlow, DefaultStep, now)
	if err != nil {
		return nil, fmt.Errorf("inserting default context: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.logger.Info("created context", "user_id", userID)
	}

	return s.getContext(ctx, userID)
}

// getContext retrieves a context by user ID
func (s *SQLiteStore) getContext(ctx context.Context, userID string) (*UserContext, error) {
	query := `
		SELECT id, user_id, flow, step, variables, last_interaction
		FROM user_contexts
		WHERE user_id = ?
	`

	row := s.db.QueryRowContext(ctx, query, userID)
	uc, err := scanContext(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying context: %w", err)
	}

	return uc, nil
}

// UpdateContext merges the supplied fields into the stored record in a single
// UPDATE statement and stamps last_interaction. Two near-simultaneous updates
// for the same user serialize at the database; the merge itself is atomic.
func (s *SQLiteStore) UpdateContext(ctx context.Context, userID string, update ContextUpdate) (*UserContext, error) {
	sets := []string{"last_interaction = ?"}
	args := []any{time.Now().UTC().Format(time.RFC3339)}

	if update.Flow != nil {
		sets = append(sets, "flow = ?")
		args = append(args, *update.Flow)
	}
	if update.Step != nil {
		sets = append(sets, "step = ?")
		args = append(args, *update.Step)
	}
	if update.Variables != nil {
		encoded, err := json.Marshal(update.Variables)
		if err != nil {
			return nil, fmt.Errorf("encoding variables: %w", err)
		}
		sets = append(sets, "variables = ?")
		args = append(args, string(encoded))
	}

	query := "UPDATE user_contexts SET " + strings.Join(sets, ", ") + " WHERE user_id = ?"
	args = append(args, userID)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating context: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	return s.getContext(ctx, userID)
}

// ListContexts returns every stored context. Order is not guaranteed.
func (s *SQLiteStore) ListContexts(ctx context.Context) ([]*UserContext, error) {
	query := `
		SELECT id, user_id, flow, step, variables, last_interaction
		FROM user_contexts
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying contexts: %w", err)
	}
	defer rows.Close()

	var contexts []*UserContext
	for rows.Next() {
		uc, err := scanContext(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning context: %w", err)
		}
		contexts = append(contexts, uc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contexts: %w", err)
	}

	return contexts, nil
}

// ResetContexts deletes every context record
func (s *SQLiteStore) ResetContexts(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM user_contexts"); err != nil {
		return fmt.Errorf("deleting contexts: %w", err)
	}

	s.logger.Info("all contexts reset")
	return nil
}

// scanContext scans a context row using the given scan function
func scanContext(scan func(dest ...any) error) (*UserContext, error) {
	var uc UserContext
	var variablesJSON, lastInteraction string

	if err := scan(&uc.ID, &uc.UserID, &uc.Flow, &uc.Step, &variablesJSON, &lastInteraction); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(variablesJSON), &uc.Variables); err != nil {
		return nil, fmt.Errorf("decoding variables: %w", err)
	}
	if uc.Variables == nil {
		uc.Variables = map[string]any{}
	}

	t, err := time.Parse(time.RFC3339, lastInteraction)
	if err != nil {
		return nil, fmt.Errorf("parsing last_interaction: %w", err)
	}
	uc.LastInteraction = t

	return &uc, nil
}
