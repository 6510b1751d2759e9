package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

const roomColumns = `id, number, room_type, hostel_block, occupant_id, status, created_at, updated_at`

// RoomRepository provides database access for the room ledger.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new instance of RoomRepository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// FindByID returns a room by identifier.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	query := fmt.Sprintf(`SELECT %s FROM rooms WHERE id = $1 LIMIT 1`, roomColumns)
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find room by id: %w", err)
	}
	return &room, nil
}

// FindByOccupant returns the room assigned to the user, if any.
func (r *RoomRepository) FindByOccupant(ctx context.Context, userID string) (*models.Room, error) {
	query := fmt.Sprintf(`SELECT %s FROM rooms WHERE occupant_id = $1 LIMIT 1`, roomColumns)
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find room by occupant: %w", err)
	}
	return &room, nil
}

// List returns all rooms with occupant identity, sorted by number ascending.
func (r *RoomRepository) List(ctx context.Context) ([]models.RoomDetail, error) {
	const query = `SELECT r.id, r.number, r.room_type, r.hostel_block, r.occupant_id, r.status, r.created_at, r.updated_at,
       u.full_name AS occupant_name, u.custom_id AS occupant_custom_id
FROM rooms r
LEFT JOIN users u ON u.id = r.occupant_id
ORDER BY r.number ASC`
	var rooms []models.RoomDetail
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// ListAvailable returns rooms with no occupant, sorted by number ascending.
func (r *RoomRepository) ListAvailable(ctx context.Context) ([]models.Room, error) {
	query := fmt.Sprintf(`SELECT %s FROM rooms WHERE status = 'available' ORDER BY number ASC`, roomColumns)
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list available rooms: %w", err)
	}
	return rooms, nil
}

// Create inserts a new room. Unique violations on number and occupant map to
// their domain conflicts.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if room.CreatedAt.IsZero() {
		room.CreatedAt = now
	}
	room.UpdatedAt = now

	const query = `INSERT INTO rooms (id, number, room_type, hostel_block, occupant_id, status, created_at, updated_at)
VALUES (:id, :number, :room_type, :hostel_block, :occupant_id, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, room); err != nil {
		switch violatedConstraint(err) {
		case "rooms_number_key":
			return appErrors.ErrRoomNumberExists
		case "uq_rooms_occupant":
			return appErrors.ErrUserHasRoom
		}
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// Update atomically replaces all mutable fields of a room.
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	room.UpdatedAt = time.Now().UTC()
	const query = `UPDATE rooms SET number = :number, room_type = :room_type, hostel_block = :hostel_block,
occupant_id = :occupant_id, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, room); err != nil {
		switch violatedConstraint(err) {
		case "rooms_number_key":
			return appErrors.ErrRoomNumberExists
		case "uq_rooms_occupant":
			return appErrors.ErrUserHasRoom
		}
		return fmt.Errorf("update room: %w", err)
	}
	return nil
}

// Unassign clears the occupant and derives status. Safe to repeat.
func (r *RoomRepository) Unassign(ctx context.Context, id string) error {
	const query = `UPDATE rooms SET occupant_id = NULL, status = 'available', updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("unassign room: %w", err)
	}
	return nil
}

// DeleteAvailable removes the room only while it has no occupant. It reports
// whether a row was deleted so the caller can distinguish occupied from
// missing without a read-modify-write race.
func (r *RoomRepository) DeleteAvailable(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM rooms WHERE id = $1 AND status = 'available'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete room: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete room rows affected: %w", err)
	}
	return affected > 0, nil
}

// OccupancyCounts returns total and occupied room counts for the dashboard.
func (r *RoomRepository) OccupancyCounts(ctx context.Context) (total int, occupied int, err error) {
	const query = `SELECT COUNT(*) AS total, COUNT(occupant_id) AS occupied FROM rooms`
	var row struct {
		Total    int `db:"total"`
		Occupied int `db:"occupied"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return 0, 0, fmt.Errorf("count rooms: %w", err)
	}
	return row.Total, row.Occupied, nil
}
