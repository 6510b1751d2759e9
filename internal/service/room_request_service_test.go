package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

type mockRequestRepo struct {
	requests   map[string]*models.RoomRequest
	createErr  error
	approveErr error
	approved   bool
	rejected   map[string]bool
}

func (m *mockRequestRepo) FindByID(ctx context.Context, id string) (*models.RoomRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return req, nil
}

func (m *mockRequestRepo) Create(ctx context.Context, req *models.RoomRequest) error {
	if m.createErr != nil {
		return m.createErr
	}
	req.ID = "rr-new"
	req.Status = models.RequestPending
	if m.requests == nil {
		m.requests = make(map[string]*models.RoomRequest)
	}
	m.requests[req.ID] = req
	return nil
}

func (m *mockRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]models.RoomRequest, error) {
	return nil, nil
}

func (m *mockRequestRepo) ListPending(ctx context.Context) ([]models.PendingRequest, error) {
	return nil, nil
}

func (m *mockRequestRepo) Reject(ctx context.Context, id string) (bool, error) {
	req, ok := m.requests[id]
	if !ok || req.Status != models.RequestPending {
		return false, nil
	}
	req.Status = models.RequestRejected
	if m.rejected == nil {
		m.rejected = make(map[string]bool)
	}
	m.rejected[id] = true
	return true, nil
}

func (m *mockRequestRepo) Approve(ctx context.Context, requestID, requesterID, roomID string) error {
	if m.approveErr != nil {
		return m.approveErr
	}
	m.approved = true
	return nil
}

type mockRequestRooms struct {
	rooms      map[string]*models.Room
	byOccupant map[string]*models.Room
}

func (m *mockRequestRooms) FindByID(ctx context.Context, id string) (*models.Room, error) {
	room, ok := m.rooms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return room, nil
}

func (m *mockRequestRooms) FindByOccupant(ctx context.Context, userID string) (*models.Room, error) {
	room, ok := m.byOccupant[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return room, nil
}

type mockAudit struct {
	logs []*models.AuditLog
}

func (m *mockAudit) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func TestRequestServiceSubmit(t *testing.T) {
	repo := &mockRequestRepo{}
	rooms := &mockRequestRooms{}
	audit := &mockAudit{}
	svc := NewRoomRequestService(repo, rooms, audit, zap.NewNop())

	req, err := svc.Submit(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.NotEmpty(t, audit.logs)
}

func TestRequestServiceSubmitAlreadyHoused(t *testing.T) {
	repo := &mockRequestRepo{}
	rooms := &mockRequestRooms{byOccupant: map[string]*models.Room{
		"u1": {ID: "r1", Number: "A-101"},
	}}
	svc := NewRoomRequestService(repo, rooms, &mockAudit{}, zap.NewNop())

	_, err := svc.Submit(context.Background(), "u1")
	assert.ErrorIs(t, err, appErrors.ErrAlreadyHasRoom)
}

func TestRequestServiceSubmitDuplicatePending(t *testing.T) {
	repo := &mockRequestRepo{createErr: appErrors.ErrDuplicatePendingRequest}
	svc := NewRoomRequestService(repo, &mockRequestRooms{}, &mockAudit{}, zap.NewNop())

	_, err := svc.Submit(context.Background(), "u1")
	assert.ErrorIs(t, err, appErrors.ErrDuplicatePendingRequest)
}

func TestRequestServiceApprove(t *testing.T) {
	repo := &mockRequestRepo{requests: map[string]*models.RoomRequest{
		"rr1": {ID: "rr1", RequesterID: "u1", Status: models.RequestPending},
	}}
	rooms := &mockRequestRooms{rooms: map[string]*models.Room{
		"r1": {ID: "r1", Number: "A-101", Status: models.RoomAvailable},
	}}
	audit := &mockAudit{}
	svc := NewRoomRequestService(repo, rooms, audit, zap.NewNop())

	require.NoError(t, svc.Approve(context.Background(), "admin", "rr1", "r1"))
	assert.True(t, repo.approved)
	assert.NotEmpty(t, audit.logs)
}

func TestRequestServiceApproveNotPending(t *testing.T) {
	repo := &mockRequestRepo{requests: map[string]*models.RoomRequest{
		"rr1": {ID: "rr1", RequesterID: "u1", Status: models.RequestRejected},
	}}
	svc := NewRoomRequestService(repo, &mockRequestRooms{}, &mockAudit{}, zap.NewNop())

	err := svc.Approve(context.Background(), "admin", "rr1", "r1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestRequestServiceApproveLosesRace(t *testing.T) {
	repo := &mockRequestRepo{
		requests: map[string]*models.RoomRequest{
			"rr1": {ID: "rr1", RequesterID: "u1", Status: models.RequestPending},
		},
		approveErr: appErrors.ErrRoomUnavailable,
	}
	rooms := &mockRequestRooms{rooms: map[string]*models.Room{
		"r1": {ID: "r1", Number: "A-101", Status: models.RoomAvailable},
	}}
	svc := NewRoomRequestService(repo, rooms, &mockAudit{}, zap.NewNop())

	err := svc.Approve(context.Background(), "admin", "rr1", "r1")
	assert.ErrorIs(t, err, appErrors.ErrRoomUnavailable)
}

func TestRequestServiceReject(t *testing.T) {
	repo := &mockRequestRepo{requests: map[string]*models.RoomRequest{
		"rr1": {ID: "rr1", RequesterID: "u1", Status: models.RequestPending},
	}}
	svc := NewRoomRequestService(repo, &mockRequestRooms{}, &mockAudit{}, zap.NewNop())

	require.NoError(t, svc.Reject(context.Background(), "admin", "rr1"))
	assert.Equal(t, models.RequestRejected, repo.requests["rr1"].Status)
}

func TestRequestServiceRejectTerminal(t *testing.T) {
	repo := &mockRequestRepo{requests: map[string]*models.RoomRequest{
		"rr1": {ID: "rr1", RequesterID: "u1", Status: models.RequestApproved},
	}}
	svc := NewRoomRequestService(repo, &mockRequestRooms{}, &mockAudit{}, zap.NewNop())

	err := svc.Reject(context.Background(), "admin", "rr1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}
