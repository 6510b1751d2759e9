package models

import "time"

// Event is an admin-owned hostel event visible to all roles.
type Event struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Date      time.Time `db:"event_date" json:"event_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// EventRequest creates or replaces an event.
type EventRequest struct {
	Title string    `json:"title" validate:"required"`
	Date  time.Time `json:"event_date" validate:"required"`
}
