package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelworks/hostel-admin-api/internal/models"
)

func TestTicketCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaintenanceRepository(db)

	mock.ExpectExec("INSERT INTO maintenance_tickets").WillReturnResult(sqlmock.NewResult(1, 1))

	ticket := &models.MaintenanceTicket{
		RequesterID: "u1",
		Description: "Leaking tap in the washroom",
		Status:      models.MaintenancePending,
	}
	require.NoError(t, repo.Create(context.Background(), ticket))
	assert.NotEmpty(t, ticket.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketListByRequester(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaintenanceRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "requester_id", "description", "status", "assigned_staff_id", "created_at", "updated_at", "requester_name", "requester_custom_id"}).
		AddRow("t1", "u1", "Broken window latch", string(models.MaintenancePending), nil, now, now, "Asha Rao", "aB3xY9")
	mock.ExpectQuery("SELECT t.id, t.requester_id").
		WithArgs("u1").
		WillReturnRows(rows)

	tickets, err := repo.ListByRequester(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "Broken window latch", tickets[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketUpdateStatusNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaintenanceRepository(db)

	mock.ExpectExec("UPDATE maintenance_tickets SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.MaintenanceCompleted, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketOpenCountScoped(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaintenanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM maintenance_tickets WHERE status <> 'Completed' AND requester_id = $1")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.OpenCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
