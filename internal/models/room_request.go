package models

import "time"

// RequestStatus tracks the room request state machine. Pending is the only
// non-terminal state; approved and rejected cannot be reopened.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// RoomRequest is a student's application for a room assignment.
type RoomRequest struct {
	ID             string        `db:"id" json:"id"`
	RequesterID    string        `db:"requester_id" json:"requester_id"`
	Status         RequestStatus `db:"status" json:"status"`
	RequestedAt    time.Time     `db:"requested_at" json:"requested_at"`
	AssignedRoomID *string       `db:"assigned_room_id" json:"assigned_room_id,omitempty"`
}

// PendingRequest is the admin review view. Invalid marks requests whose
// requester acquired a room after submitting; the only allowed action on an
// invalid request is a forced reject.
type PendingRequest struct {
	RoomRequest
	RequesterName     string `db:"requester_name" json:"requester_name"`
	RequesterCustomID string `db:"requester_custom_id" json:"requester_custom_id"`
	Invalid           bool   `db:"invalid" json:"invalid"`
}
