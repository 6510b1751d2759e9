package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

func TestRequestCreateDuplicatePending(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRequestRepository(db)

	mock.ExpectExec("INSERT INTO room_requests").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_room_requests_pending"})

	err := repo.Create(context.Background(), &models.RoomRequest{RequesterID: "u1"})
	assert.ErrorIs(t, err, appErrors.ErrDuplicatePendingRequest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestCreateForcesPendingStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRequestRepository(db)

	mock.ExpectExec("INSERT INTO room_requests").WillReturnResult(sqlmock.NewResult(1, 1))

	req := &models.RoomRequest{RequesterID: "u1", Status: models.RequestApproved}
	require.NoError(t, repo.Create(context.Background(), req))
	assert.Equal(t, models.RequestPending, req.Status)
	assert.NotEmpty(t, req.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPendingFlagsInvalid(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRequestRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "requester_id", "status", "requested_at", "assigned_room_id", "requester_name", "requester_custom_id", "invalid"}).
		AddRow("rr1", "u1", string(models.RequestPending), now, nil, "Asha Rao", "aB3xY9", true).
		AddRow("rr2", "u2", string(models.RequestPending), now, nil, "Ben Kim", "cD4eF5", false)
	mock.ExpectQuery("SELECT rr.id, rr.requester_id").WillReturnRows(rows)

	pending, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.True(t, pending[0].Invalid)
	assert.False(t, pending[1].Invalid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveAssignsRoomAndFinalisesRequest(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms SET occupant_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE room_requests SET status = 'approved'").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Approve(context.Background(), "rr1", "u1", "r1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRoomNoLongerAvailable(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms SET occupant_id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Approve(context.Background(), "rr1", "u1", "r1")
	assert.ErrorIs(t, err, appErrors.ErrRoomUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRequesterAlreadyHousedRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms SET occupant_id").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_rooms_occupant"})
	mock.ExpectRollback()

	err := repo.Approve(context.Background(), "rr1", "u1", "r1")
	assert.ErrorIs(t, err, appErrors.ErrUserHasRoom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectOnlyWhilePending(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoomRequestRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE room_requests SET status = 'rejected' WHERE id = $1 AND status = 'pending'")).
		WithArgs("rr1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rejected, err := repo.Reject(context.Background(), "rr1")
	require.NoError(t, err)
	assert.False(t, rejected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
