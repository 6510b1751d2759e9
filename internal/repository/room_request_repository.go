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

const requestColumns = `id, requester_id, status, requested_at, assigned_room_id`

// RoomRequestRepository provides database access for the request workflow.
type RoomRequestRepository struct {
	db *sqlx.DB
}

// NewRoomRequestRepository creates a new instance of RoomRequestRepository.
func NewRoomRequestRepository(db *sqlx.DB) *RoomRequestRepository {
	return &RoomRequestRepository{db: db}
}

// FindByID returns a request by identifier.
func (r *RoomRequestRepository) FindByID(ctx context.Context, id string) (*models.RoomRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM room_requests WHERE id = $1 LIMIT 1`, requestColumns)
	var req models.RoomRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find room request by id: %w", err)
	}
	return &req, nil
}

// Create inserts a pending request. The partial unique index on pending
// requests per requester maps to the duplicate-pending conflict.
func (r *RoomRequestRepository) Create(ctx context.Context, req *models.RoomRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now().UTC()
	}
	req.Status = models.RequestPending

	const query = `INSERT INTO room_requests (id, requester_id, status, requested_at, assigned_room_id)
VALUES (:id, :requester_id, :status, :requested_at, :assigned_room_id)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		if violatedConstraint(err) == "uq_room_requests_pending" {
			return appErrors.ErrDuplicatePendingRequest
		}
		return fmt.Errorf("create room request: %w", err)
	}
	return nil
}

// HasPending reports whether the requester has an open request.
func (r *RoomRequestRepository) HasPending(ctx context.Context, requesterID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM room_requests WHERE requester_id = $1 AND status = 'pending')`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, requesterID); err != nil {
		return false, fmt.Errorf("check pending request: %w", err)
	}
	return exists, nil
}

// ListByRequester returns the requester's own requests, newest first.
func (r *RoomRequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]models.RoomRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM room_requests WHERE requester_id = $1 ORDER BY requested_at DESC`, requestColumns)
	var requests []models.RoomRequest
	if err := r.db.SelectContext(ctx, &requests, query, requesterID); err != nil {
		return nil, fmt.Errorf("list room requests: %w", err)
	}
	return requests, nil
}

// ListPending returns all pending requests with requester identity. A request
// is flagged invalid when its requester has since acquired a room by other
// means; such requests only admit a forced reject.
func (r *RoomRequestRepository) ListPending(ctx context.Context) ([]models.PendingRequest, error) {
	const query = `SELECT rr.id, rr.requester_id, rr.status, rr.requested_at, rr.assigned_room_id,
       u.full_name AS requester_name, u.custom_id AS requester_custom_id,
       EXISTS(SELECT 1 FROM rooms r WHERE r.occupant_id = rr.requester_id) AS invalid
FROM room_requests rr
JOIN users u ON u.id = rr.requester_id
WHERE rr.status = 'pending'
ORDER BY rr.requested_at ASC`
	var requests []models.PendingRequest
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	return requests, nil
}

// PendingCount returns the number of open requests for the dashboard.
func (r *RoomRequestRepository) PendingCount(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM room_requests WHERE status = 'pending'`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count pending requests: %w", err)
	}
	return count, nil
}

// Reject moves a pending request into the terminal rejected state. It reports
// whether the request was still pending.
func (r *RoomRequestRepository) Reject(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE room_requests SET status = 'rejected' WHERE id = $1 AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("reject room request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reject request rows affected: %w", err)
	}
	return affected > 0, nil
}

// Approve assigns the room to the requester and finalises the request in one
// transaction. The room update is conditional on availability so that two
// admins approving against the same room cannot both succeed; the loser gets
// ErrRoomUnavailable with no partial effect.
func (r *RoomRequestRepository) Approve(ctx context.Context, requestID, requesterID, roomID string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin approve transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	const assignQuery = `UPDATE rooms SET occupant_id = $2, status = 'occupied', updated_at = $3
WHERE id = $1 AND status = 'available'`
	res, err := tx.ExecContext(ctx, assignQuery, roomID, requesterID, now)
	if err != nil {
		if violatedConstraint(err) == "uq_rooms_occupant" {
			err = appErrors.ErrUserHasRoom
			return err
		}
		err = fmt.Errorf("assign room: %w", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		err = fmt.Errorf("assign room rows affected: %w", err)
		return err
	}
	if affected == 0 {
		err = appErrors.ErrRoomUnavailable
		return err
	}

	const approveQuery = `UPDATE room_requests SET status = 'approved', assigned_room_id = $2
WHERE id = $1 AND status = 'pending'`
	res, err = tx.ExecContext(ctx, approveQuery, requestID, roomID)
	if err != nil {
		err = fmt.Errorf("approve request: %w", err)
		return err
	}
	affected, err = res.RowsAffected()
	if err != nil {
		err = fmt.Errorf("approve request rows affected: %w", err)
		return err
	}
	if affected == 0 {
		err = appErrors.Clone(appErrors.ErrConflict, "request is no longer pending")
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit approve transaction: %w", err)
	}
	return nil
}
