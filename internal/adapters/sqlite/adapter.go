// Package sqlite provides a SQLite-backed implementation of the session
// repository port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
	"github.com/moodtune-labs/moodtune/backend/internal/core/ports"
)

// Adapter implements the session repository port for SQLite.
type Adapter struct {
	db *sql.DB
}

var _ ports.SessionRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	// Auto-migrate on startup for local dev.
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) CreateSession(ctx context.Context, s domain.ChatSession) error {
	created := s.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := a.db.ExecContext(ctx,
		"INSERT INTO sessions (id, created_at) VALUES (?, ?)", s.ID, created)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (a *Adapter) GetSession(ctx context.Context, id string) (domain.ChatSession, error) {
	row := a.db.QueryRowContext(ctx, "SELECT id, created_at FROM sessions WHERE id = ?", id)
	var session domain.ChatSession
	if err := row.Scan(&session.ID, &session.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.ChatSession{}, domain.ErrNotFound
		}
		return domain.ChatSession{}, fmt.Errorf("failed to load session: %w", err)
	}
	session.Messages = []domain.ChatMessage{}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, session_id, text, emotion, confidence, IFNULL(preview_energy, 0), created_at
		FROM messages
		WHERE session_id = ?
		ORDER BY seq ASC
	`, session.ID)
	if err != nil {
		return domain.ChatSession{}, fmt.Errorf("failed to load session messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Text, &m.Emotion, &m.Confidence, &m.PreviewEnergy, &m.CreatedAt); err != nil {
			return domain.ChatSession{}, fmt.Errorf("failed to scan session message: %w", err)
		}
		session.Messages = append(session.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return domain.ChatSession{}, fmt.Errorf("failed to iterate session messages: %w", err)
	}

	return session, nil
}

func (a *Adapter) DeleteSession(ctx context.Context, id string) error {
	if _, err := a.db.ExecContext(ctx, "DELETE FROM messages WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete session messages: %w", err)
	}
	if _, err := a.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (a *Adapter) AppendMessage(ctx context.Context, m domain.ChatMessage) error {
	created := m.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO messages (id, session_id, text, emotion, confidence, preview_energy, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.SessionID, m.Text, m.Emotion, m.Confidence, m.PreviewEnergy, created)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// RecentMessages returns the newest n messages of a session, oldest first.
func (a *Adapter) RecentMessages(ctx context.Context, sessionID string, n int) ([]domain.ChatMessage, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, session_id, text, emotion, confidence, IFNULL(preview_energy, 0), created_at
		FROM messages
		WHERE session_id = ?
		ORDER BY seq DESC
		LIMIT ?
	`, sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent messages: %w", err)
	}
	defer rows.Close()

	var newest []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Text, &m.Emotion, &m.Confidence, &m.PreviewEnergy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent message: %w", err)
		}
		newest = append(newest, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent messages: %w", err)
	}

	// Reverse into insertion order so callers can use the slice as context.
	for i, j := 0, len(newest)-1; i < j; i, j = i+1, j-1 {
		newest[i], newest[j] = newest[j], newest[i]
	}
	return newest, nil
}

// UpdateMessageEnergy stores the analyzed preview energy for a message.
func (a *Adapter) UpdateMessageEnergy(ctx context.Context, messageID string, energy float64) error {
	res, err := a.db.ExecContext(ctx,
		"UPDATE messages SET preview_energy = ? WHERE id = ?", energy, messageID)
	if err != nil {
		return fmt.Errorf("failed to update message energy: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm energy update: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS messages (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		session_id TEXT NOT NULL,
		text TEXT NOT NULL,
		emotion TEXT,
		confidence REAL,
		preview_energy REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
