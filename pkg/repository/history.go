package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/autoreply/pkg/domain"
)

const defaultHistoryLimit = 100

// HistoryRepository is the append-only ledger of answered comments
type HistoryRepository struct {
	db *sqlx.DB
}

// historyRow is the db representation of domain.HistoryEntry
type historyRow struct {
	CommentID         string    `db:"comment_id"`
	PostID            string    `db:"post_id"`
	CommenterUsername string    `db:"commenter_username"`
	CommenterUserID   string    `db:"commenter_user_id"`
	CommentText       string    `db:"comment_text"`
	ReplyText         string    `db:"reply_text"`
	Keyword           string    `db:"keyword"`
	Matched           bool      `db:"matched"`
	RespondedAt       time.Time `db:"responded_at"`
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// HasResponded checks if the comment is already in the ledger
func (r *HistoryRepository) HasResponded(ctx context.Context, commentID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM history WHERE comment_id = ?)", commentID)
	if err != nil {
		return false, fmt.Errorf("check history: %w", err)
	}
	return exists, nil
}

// Record inserts the entry unless the comment id is already there. It returns true only for
// the caller whose insert created the row, so concurrent deliveries of one comment get exactly
// one winner.
func (r *HistoryRepository) Record(ctx context.Context, entry domain.HistoryEntry) (bool, error) {
	if entry.CommentID == "" {
		return false, fmt.Errorf("record history: empty comment id")
	}
	if entry.RespondedAt.IsZero() {
		entry.RespondedAt = time.Now()
	}
	row := historyRow{
		CommentID:         entry.CommentID,
		PostID:            entry.PostID,
		CommenterUsername: entry.CommenterUsername,
		CommenterUserID:   entry.CommenterUserID,
		CommentText:       entry.CommentText,
		ReplyText:         entry.ReplyText,
		Keyword:           entry.Keyword,
		Matched:           entry.Matched,
		RespondedAt:       entry.RespondedAt.UTC(),
	}

	query := `
		INSERT INTO history (
			comment_id, post_id, commenter_username, commenter_user_id,
			comment_text, reply_text, keyword, matched, responded_at
		) VALUES (
			:comment_id, :post_id, :commenter_username, :commenter_user_id,
			:comment_text, :reply_text, :keyword, :matched, :responded_at
		)
		ON CONFLICT(comment_id) DO NOTHING
	`

	var inserted bool
	err := newRetrier().Do(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("record history: %w", err)}
		}
		n, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get affected rows: %w", err)}
		}
		inserted = n == 1
		return nil
	}, &criticalError{})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// List returns entries newest first, optionally limited to one post
func (r *HistoryRepository) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	query := "SELECT * FROM history"
	args := []any{}
	if filter.PostID != "" {
		query += " WHERE post_id = ?"
		args = append(args, filter.PostID)
	}
	query += " ORDER BY responded_at DESC, comment_id LIMIT ?"
	args = append(args, limit)

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	res := make([]domain.HistoryEntry, len(rows))
	for i, row := range rows {
		res[i] = domain.HistoryEntry{
			CommentID:         row.CommentID,
			PostID:            row.PostID,
			CommenterUsername: row.CommenterUsername,
			CommenterUserID:   row.CommenterUserID,
			CommentText:       row.CommentText,
			ReplyText:         row.ReplyText,
			Keyword:           row.Keyword,
			Matched:           row.Matched,
			RespondedAt:       row.RespondedAt,
		}
	}
	return res, nil
}

// Count returns the number of ledger entries
func (r *HistoryRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM history"); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}
