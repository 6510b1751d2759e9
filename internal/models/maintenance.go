package models

import "time"

// MaintenanceStatus enumerates ticket states. Any transition between the
// enumerated values is legal.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "Pending"
	MaintenanceInProgress MaintenanceStatus = "In Progress"
	MaintenanceCompleted  MaintenanceStatus = "Completed"
)

// ValidMaintenanceStatus reports whether the value is a known ticket state.
func ValidMaintenanceStatus(s MaintenanceStatus) bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted:
		return true
	}
	return false
}

// MaintenanceTicket records a repair request raised by a student or staff member.
type MaintenanceTicket struct {
	ID              string            `db:"id" json:"id"`
	RequesterID     string            `db:"requester_id" json:"requester_id"`
	Description     string            `db:"description" json:"description"`
	Status          MaintenanceStatus `db:"status" json:"status"`
	AssignedStaffID *string           `db:"assigned_staff_id" json:"assigned_staff_id,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
}

// MaintenanceDetail joins requester identity for staff and admin listings.
type MaintenanceDetail struct {
	MaintenanceTicket
	RequesterName     string `db:"requester_name" json:"requester_name"`
	RequesterCustomID string `db:"requester_custom_id" json:"requester_custom_id"`
}

// MaintenanceCreateRequest opens a ticket.
type MaintenanceCreateRequest struct {
	Description string `json:"description" validate:"required"`
}

// MaintenanceStatusRequest moves a ticket to a new state, optionally
// assigning a staff member by their short id.
type MaintenanceStatusRequest struct {
	Status                MaintenanceStatus `json:"status" validate:"required"`
	AssignedStaffCustomID string            `json:"assigned_staff_custom_id"`
}
