package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hostelworks/hostel-admin-api/internal/models"
)

// FeedbackRepository provides database access for feedback entries.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates a new instance of FeedbackRepository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a feedback entry. Entries are append-only.
func (r *FeedbackRepository) Create(ctx context.Context, entry *models.FeedbackEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO feedback_entries (id, user_id, feedback, created_at)
VALUES (:id, :user_id, :feedback, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create feedback entry: %w", err)
	}
	return nil
}

// ListAll returns every entry with the author's identity, newest first.
func (r *FeedbackRepository) ListAll(ctx context.Context) ([]models.FeedbackDetail, error) {
	const query = `SELECT f.id, f.user_id, f.feedback, f.created_at,
       u.full_name AS author_name, u.custom_id AS author_custom_id
FROM feedback_entries f
JOIN users u ON u.id = f.user_id
ORDER BY f.created_at DESC`
	var entries []models.FeedbackDetail
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list feedback entries: %w", err)
	}
	return entries, nil
}

// ListByAuthor returns the author's own entries, newest first.
func (r *FeedbackRepository) ListByAuthor(ctx context.Context, userID string) ([]models.FeedbackDetail, error) {
	const query = `SELECT f.id, f.user_id, f.feedback, f.created_at,
       u.full_name AS author_name, u.custom_id AS author_custom_id
FROM feedback_entries f
JOIN users u ON u.id = f.user_id
WHERE f.user_id = $1
ORDER BY f.created_at DESC`
	var entries []models.FeedbackDetail
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list feedback entries by author: %w", err)
	}
	return entries, nil
}
