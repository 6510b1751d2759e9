package models

import "time"

// VisitorStatus enumerates approval states for a visitor registration.
type VisitorStatus string

const (
	VisitorPending  VisitorStatus = "Pending"
	VisitorApproved VisitorStatus = "Approved"
	VisitorRejected VisitorStatus = "Rejected"
)

// ValidVisitorStatus reports whether the value is a known visitor state.
func ValidVisitorStatus(s VisitorStatus) bool {
	switch s {
	case VisitorPending, VisitorApproved, VisitorRejected:
		return true
	}
	return false
}

// VisitorRecord is a visit registered by a student, pending staff approval.
type VisitorRecord struct {
	ID           string        `db:"id" json:"id"`
	RegisteredBy string        `db:"registered_by" json:"registered_by"`
	Name         string        `db:"name" json:"name"`
	Contact      string        `db:"contact" json:"contact"`
	VisitDate    time.Time     `db:"visit_date" json:"visit_date"`
	Purpose      string        `db:"purpose" json:"purpose"`
	Status       VisitorStatus `db:"status" json:"status"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// VisitorDetail joins the registering student's identity.
type VisitorDetail struct {
	VisitorRecord
	StudentName     string `db:"student_name" json:"student_name"`
	StudentCustomID string `db:"student_custom_id" json:"student_custom_id"`
}

// VisitorCreateRequest registers an upcoming visit.
type VisitorCreateRequest struct {
	Name      string    `json:"name" validate:"required"`
	Contact   string    `json:"contact" validate:"required"`
	VisitDate time.Time `json:"visit_date" validate:"required"`
	Purpose   string    `json:"purpose" validate:"required"`
}

// VisitorDecisionRequest approves or rejects a registration.
type VisitorDecisionRequest struct {
	Status VisitorStatus `json:"status" validate:"required,oneof=Approved Rejected"`
}
