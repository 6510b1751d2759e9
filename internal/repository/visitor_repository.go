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

const visitorColumns = `id, registered_by, name, contact, visit_date, purpose, status, created_at, updated_at`

const visitorDetailQuery = `SELECT v.id, v.registered_by, v.name, v.contact, v.visit_date, v.purpose, v.status, v.created_at, v.updated_at,
       u.full_name AS student_name, u.custom_id AS student_custom_id
FROM visitor_records v
JOIN users u ON u.id = v.registered_by`

// VisitorRepository provides database access for visitor records.
type VisitorRepository struct {
	db *sqlx.DB
}

// NewVisitorRepository creates a new instance of VisitorRepository.
func NewVisitorRepository(db *sqlx.DB) *VisitorRepository {
	return &VisitorRepository{db: db}
}

// FindByID returns a visitor record by identifier.
func (r *VisitorRepository) FindByID(ctx context.Context, id string) (*models.VisitorRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM visitor_records WHERE id = $1 LIMIT 1`, visitorColumns)
	var visitor models.VisitorRecord
	if err := r.db.GetContext(ctx, &visitor, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find visitor by id: %w", err)
	}
	return &visitor, nil
}

// Create inserts a new visitor registration.
func (r *VisitorRepository) Create(ctx context.Context, visitor *models.VisitorRecord) error {
	if visitor.ID == "" {
		visitor.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if visitor.CreatedAt.IsZero() {
		visitor.CreatedAt = now
	}
	visitor.UpdatedAt = now

	const query = `INSERT INTO visitor_records (id, registered_by, name, contact, visit_date, purpose, status, created_at, updated_at)
VALUES (:id, :registered_by, :name, :contact, :visit_date, :purpose, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, visitor); err != nil {
		return fmt.Errorf("create visitor record: %w", err)
	}
	return nil
}

// ListAll returns all visitor records with the registering student, newest first.
func (r *VisitorRepository) ListAll(ctx context.Context) ([]models.VisitorDetail, error) {
	query := visitorDetailQuery + ` ORDER BY v.created_at DESC`
	var visitors []models.VisitorDetail
	if err := r.db.SelectContext(ctx, &visitors, query); err != nil {
		return nil, fmt.Errorf("list visitor records: %w", err)
	}
	return visitors, nil
}

// ListByStudent returns a student's own registrations, newest first.
func (r *VisitorRepository) ListByStudent(ctx context.Context, studentID string) ([]models.VisitorDetail, error) {
	query := visitorDetailQuery + ` WHERE v.registered_by = $1 ORDER BY v.created_at DESC`
	var visitors []models.VisitorDetail
	if err := r.db.SelectContext(ctx, &visitors, query, studentID); err != nil {
		return nil, fmt.Errorf("list visitor records by student: %w", err)
	}
	return visitors, nil
}

// UpdateStatus records the staff decision on a registration.
func (r *VisitorRepository) UpdateStatus(ctx context.Context, id string, status models.VisitorStatus) error {
	const query = `UPDATE visitor_records SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update visitor status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a visitor record.
func (r *VisitorRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM visitor_records WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete visitor record: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// PendingCount returns the number of undecided registrations for the dashboard.
func (r *VisitorRepository) PendingCount(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM visitor_records WHERE status = 'Pending'`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count pending visitors: %w", err)
	}
	return count, nil
}
