package triage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arogya-ai/triage-server/internal/db"
)

// Store persists the append-only turn log. Sessions are implicit: a session
// exists as soon as it has a turn and is never closed or expired.
type Store struct {
	db *db.DB

	// sessionLocks serializes writers per session so the user/assistant
	// pair of one exchange cannot interleave with another exchange for the
	// same session. Different sessions proceed in parallel.
	sessionLocks sync.Map // session_id -> *sync.Mutex
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

func (s *Store) sessionLock(sessionID string) *sync.Mutex {
	mu, _ := s.sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Append stores one immutable turn.
func (s *Store) Append(ctx context.Context, sessionID, sender, message string, status Status) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, session_id, sender, message, triage_status, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), sessionID, sender, message, string(status), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("appending turn for session %s: %w", sessionID, err)
	}
	return nil
}

// AppendExchange commits a user turn and the assistant's reply as two
// appends under the session lock. The two inserts are not atomic: if the
// second fails the first stays, which is an accepted boundary of the
// append-only log.
func (s *Store) AppendExchange(ctx context.Context, sessionID, userText, assistantText string, status Status) error {
	mu := s.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.Append(ctx, sessionID, SenderUser, userText, status); err != nil {
		return err
	}
	return s.Append(ctx, sessionID, SenderAssistant, assistantText, status)
}

// History returns the session's turns as {sender, message} pairs, oldest
// first. An unknown session yields an empty history, not an error.
func (s *Store) History(ctx context.Context, sessionID string) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sender, message FROM conversations
		WHERE session_id = ?
		ORDER BY timestamp ASC, rowid ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying history for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var history []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Sender, &e.Message); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		history = append(history, e)
	}
	return history, rows.Err()
}

// Turns returns the full turn records of a session, oldest first.
func (s *Store) Turns(ctx context.Context, sessionID string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, sender, message, triage_status, timestamp
		FROM conversations
		WHERE session_id = ?
		ORDER BY timestamp ASC, rowid ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying turns for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var status string
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Sender, &t.Message, &status, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning turn row: %w", err)
		}
		t.TriageStatus = Status(status)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// LatestStatus returns the status tag of the session's most recent turn, or
// StatusIntakeStart when the session has no turns yet.
func (s *Store) LatestStatus(ctx context.Context, sessionID string) (Status, error) {
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT triage_status FROM conversations
		WHERE session_id = ?
		ORDER BY timestamp DESC, rowid DESC
		LIMIT 1`, sessionID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return StatusIntakeStart, nil
	}
	if err != nil {
		return "", fmt.Errorf("querying latest status for session %s: %w", sessionID, err)
	}
	return Status(status), nil
}

// CountTurns returns the number of stored turns for a session.
func (s *Store) CountTurns(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM conversations WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting turns for session %s: %w", sessionID, err)
	}
	return count, nil
}
