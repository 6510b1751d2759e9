package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hostelworks/hostel-admin-api/internal/models"
)

const ticketColumns = `id, requester_id, description, status, assigned_staff_id, created_at, updated_at`

const ticketDetailQuery = `SELECT t.id, t.requester_id, t.description, t.status, t.assigned_staff_id, t.created_at, t.updated_at,
       u.full_name AS requester_name, u.custom_id AS requester_custom_id
FROM maintenance_tickets t
JOIN users u ON u.id = t.requester_id`

// MaintenanceRepository provides database access for maintenance tickets.
type MaintenanceRepository struct {
	db *sqlx.DB
}

// NewMaintenanceRepository creates a new instance of MaintenanceRepository.
func NewMaintenanceRepository(db *sqlx.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// FindByID returns a ticket by identifier.
func (r *MaintenanceRepository) FindByID(ctx context.Context, id string) (*models.MaintenanceTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM maintenance_tickets WHERE id = $1 LIMIT 1`, ticketColumns)
	var ticket models.MaintenanceTicket
	if err := r.db.GetContext(ctx, &ticket, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find ticket by id: %w", err)
	}
	return &ticket, nil
}

// Create inserts a new ticket.
func (r *MaintenanceRepository) Create(ctx context.Context, ticket *models.MaintenanceTicket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = now
	}
	ticket.UpdatedAt = now

	const query = `INSERT INTO maintenance_tickets (id, requester_id, description, status, assigned_staff_id, created_at, updated_at)
VALUES (:id, :requester_id, :description, :status, :assigned_staff_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, ticket); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

// ListAll returns all tickets with requester identity, newest first.
func (r *MaintenanceRepository) ListAll(ctx context.Context) ([]models.MaintenanceDetail, error) {
	query := ticketDetailQuery + ` ORDER BY t.created_at DESC`
	var tickets []models.MaintenanceDetail
	if err := r.db.SelectContext(ctx, &tickets, query); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// ListByRequester returns the requester's own tickets, newest first.
func (r *MaintenanceRepository) ListByRequester(ctx context.Context, requesterID string) ([]models.MaintenanceDetail, error) {
	query := ticketDetailQuery + ` WHERE t.requester_id = $1 ORDER BY t.created_at DESC`
	var tickets []models.MaintenanceDetail
	if err := r.db.SelectContext(ctx, &tickets, query, requesterID); err != nil {
		return nil, fmt.Errorf("list tickets by requester: %w", err)
	}
	return tickets, nil
}

// UpdateStatus sets the ticket status and optional staff assignment.
func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, id string, status models.MaintenanceStatus, assignedStaffID *string) error {
	const query = `UPDATE maintenance_tickets SET status = $2, assigned_staff_id = $3, updated_at = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, assignedStaffID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a ticket.
func (r *MaintenanceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM maintenance_tickets WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// OpenCount returns the number of tickets not yet completed, optionally
// scoped to one requester.
func (r *MaintenanceRepository) OpenCount(ctx context.Context, requesterID string) (int, error) {
	query := `SELECT COUNT(*) FROM maintenance_tickets WHERE status <> 'Completed'`
	var args []interface{}
	if requesterID != "" {
		query += ` AND requester_id = $1`
		args = append(args, requesterID)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count open tickets: %w", err)
	}
	return count, nil
}
