package models

import "time"

// FeeStatus enumerates the payment states of a fee record.
type FeeStatus string

const (
	FeePending FeeStatus = "Pending"
	FeePaid    FeeStatus = "Paid"
)

// ValidFeeStatus reports whether the value is a known fee state.
func ValidFeeStatus(s FeeStatus) bool {
	return s == FeePending || s == FeePaid
}

// FeeRecord is an admin-managed charge against a student.
type FeeRecord struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	Amount    float64   `db:"amount" json:"amount"`
	DueDate   time.Time `db:"due_date" json:"due_date"`
	Status    FeeStatus `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// FeeDetail joins student identity for the admin listing.
type FeeDetail struct {
	FeeRecord
	StudentName     string `db:"student_name" json:"student_name"`
	StudentCustomID string `db:"student_custom_id" json:"student_custom_id"`
}

// FeeCreateRequest charges a student identified by their short id.
type FeeCreateRequest struct {
	StudentCustomID string    `json:"student_custom_id" validate:"required"`
	Amount          float64   `json:"amount" validate:"required,gt=0"`
	DueDate         time.Time `json:"due_date" validate:"required"`
}

// FeeStatusRequest marks a record paid or pending.
type FeeStatusRequest struct {
	Status FeeStatus `json:"status" validate:"required"`
}
