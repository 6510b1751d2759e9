package models

import "time"

// RoomType enumerates supported room layouts.
type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomTriple RoomType = "triple"
)

// HostelBlock enumerates the hostel buildings.
type HostelBlock string

const (
	BlockA HostelBlock = "Block A"
	BlockB HostelBlock = "Block B"
	BlockC HostelBlock = "Block C"
)

// RoomStatus is derived from occupant presence and never set independently.
type RoomStatus string

const (
	RoomAvailable RoomStatus = "available"
	RoomOccupied  RoomStatus = "occupied"
)

// Room represents a hostel room. A room holds at most one occupant and a
// user occupies at most one room; both are backed by unique indexes.
type Room struct {
	ID         string      `db:"id" json:"id"`
	Number     string      `db:"number" json:"number"`
	Type       RoomType    `db:"room_type" json:"room_type"`
	Block      HostelBlock `db:"hostel_block" json:"hostel_block"`
	OccupantID *string     `db:"occupant_id" json:"occupant_id,omitempty"`
	Status     RoomStatus  `db:"status" json:"status"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"`
}

// RoomDetail joins the occupant identity for admin listings.
type RoomDetail struct {
	Room
	OccupantName     *string `db:"occupant_name" json:"occupant_name,omitempty"`
	OccupantCustomID *string `db:"occupant_custom_id" json:"occupant_custom_id,omitempty"`
}

// RoomCreateRequest adds a room to the ledger. OccupantCustomID optionally
// assigns a resident by their short id at creation time.
type RoomCreateRequest struct {
	Number           string      `json:"number" validate:"required"`
	Type             RoomType    `json:"room_type" validate:"required,oneof=single double triple"`
	Block            HostelBlock `json:"hostel_block" validate:"required,oneof='Block A' 'Block B' 'Block C'"`
	OccupantCustomID string      `json:"occupant_custom_id"`
}

// RoomUpdateRequest replaces a room's mutable fields. An empty
// OccupantCustomID clears the assignment.
type RoomUpdateRequest struct {
	Number           string      `json:"number" validate:"required"`
	Type             RoomType    `json:"room_type" validate:"required,oneof=single double triple"`
	Block            HostelBlock `json:"hostel_block" validate:"required,oneof='Block A' 'Block B' 'Block C'"`
	OccupantCustomID string      `json:"occupant_custom_id"`
}
