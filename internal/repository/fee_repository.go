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

const feeColumns = `id, student_id, amount, due_date, status, created_at, updated_at`

const feeDetailQuery = `SELECT f.id, f.student_id, f.amount, f.due_date, f.status, f.created_at, f.updated_at,
       u.full_name AS student_name, u.custom_id AS student_custom_id
FROM fee_records f
JOIN users u ON u.id = f.student_id`

// FeeRepository provides database access for fee records.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository creates a new instance of FeeRepository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// FindByID returns a fee record by identifier.
func (r *FeeRepository) FindByID(ctx context.Context, id string) (*models.FeeRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM fee_records WHERE id = $1 LIMIT 1`, feeColumns)
	var fee models.FeeRecord
	if err := r.db.GetContext(ctx, &fee, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find fee by id: %w", err)
	}
	return &fee, nil
}

// Create inserts a new fee record.
func (r *FeeRepository) Create(ctx context.Context, fee *models.FeeRecord) error {
	if fee.ID == "" {
		fee.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if fee.CreatedAt.IsZero() {
		fee.CreatedAt = now
	}
	fee.UpdatedAt = now

	const query = `INSERT INTO fee_records (id, student_id, amount, due_date, status, created_at, updated_at)
VALUES (:id, :student_id, :amount, :due_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fee); err != nil {
		return fmt.Errorf("create fee record: %w", err)
	}
	return nil
}

// ListAll returns all fee records with student identity, earliest due first.
func (r *FeeRepository) ListAll(ctx context.Context) ([]models.FeeDetail, error) {
	query := feeDetailQuery + ` ORDER BY f.due_date ASC`
	var fees []models.FeeDetail
	if err := r.db.SelectContext(ctx, &fees, query); err != nil {
		return nil, fmt.Errorf("list fee records: %w", err)
	}
	return fees, nil
}

// ListByStudent returns a student's own records, earliest due first.
func (r *FeeRepository) ListByStudent(ctx context.Context, studentID string) ([]models.FeeDetail, error) {
	query := feeDetailQuery + ` WHERE f.student_id = $1 ORDER BY f.due_date ASC`
	var fees []models.FeeDetail
	if err := r.db.SelectContext(ctx, &fees, query, studentID); err != nil {
		return nil, fmt.Errorf("list fee records by student: %w", err)
	}
	return fees, nil
}

// UpdateStatus sets the payment status.
func (r *FeeRepository) UpdateStatus(ctx context.Context, id string, status models.FeeStatus) error {
	const query = `UPDATE fee_records SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update fee status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a fee record.
func (r *FeeRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM fee_records WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete fee record: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UnpaidSummary returns count and total of pending fees, optionally scoped
// to one student.
func (r *FeeRepository) UnpaidSummary(ctx context.Context, studentID string) (count int, total float64, err error) {
	query := `SELECT COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total FROM fee_records WHERE status = 'Pending'`
	var args []interface{}
	if studentID != "" {
		query += ` AND student_id = $1`
		args = append(args, studentID)
	}
	var row struct {
		Count int     `db:"count"`
		Total float64 `db:"total"`
	}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return 0, 0, fmt.Errorf("summarise unpaid fees: %w", err)
	}
	return row.Count, row.Total, nil
}
