package models

import "time"

// FeedbackEntry is immutable once submitted; there is no update or delete.
type FeedbackEntry struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Text      string    `db:"feedback" json:"feedback"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FeedbackDetail joins the author's identity for the admin view.
type FeedbackDetail struct {
	FeedbackEntry
	AuthorName     string `db:"author_name" json:"author_name"`
	AuthorCustomID string `db:"author_custom_id" json:"author_custom_id"`
}

// FeedbackRequest submits a feedback entry.
type FeedbackRequest struct {
	Text string `json:"feedback" validate:"required"`
}
