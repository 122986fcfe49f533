package repository

import (
	"context"
	"time"

	"github.com/liliang-cn/partchat/internal/domain"
)

// HistoryRepository persists the chat audit trail
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save appends one turn to the chat history
func (r *HistoryRepository) Save(ctx context.Context, record *domain.HistoryRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_history (session_id, user_message, bot_response, intent, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, record.SessionID, record.UserMessage, record.BotResponse, record.Intent, record.CreatedAt)
	if err != nil {
		return err
	}

	record.ID, err = res.LastInsertId()
	return err
}

// List returns the most recent records first, optionally for one session
func (r *HistoryRepository) List(ctx context.Context, sessionID string, limit int) ([]*domain.HistoryRecord, error) {
	query := `SELECT id, session_id, user_message, bot_response, COALESCE(intent, ''), created_at FROM chat_history`
	var args []any
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.HistoryRecord
	for rows.Next() {
		rec := &domain.HistoryRecord{}
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.UserMessage, &rec.BotResponse,
			&rec.Intent, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Count returns the total number of recorded turns
func (r *HistoryRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_history`).Scan(&count)
	return count, err
}
