package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hostelworks/hostel-admin-api/internal/models"
)

type mockDashRooms struct {
	total      int
	occupied   int
	byOccupant map[string]*models.Room
}

func (m *mockDashRooms) OccupancyCounts(ctx context.Context) (int, int, error) {
	return m.total, m.occupied, nil
}

func (m *mockDashRooms) FindByOccupant(ctx context.Context, userID string) (*models.Room, error) {
	room, ok := m.byOccupant[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return room, nil
}

type mockDashRequests struct {
	pending    int
	hasPending map[string]bool
}

func (m *mockDashRequests) PendingCount(ctx context.Context) (int, error) {
	return m.pending, nil
}

func (m *mockDashRequests) HasPending(ctx context.Context, requesterID string) (bool, error) {
	return m.hasPending[requesterID], nil
}

type mockDashTickets struct {
	open map[string]int
}

func (m *mockDashTickets) OpenCount(ctx context.Context, requesterID string) (int, error) {
	return m.open[requesterID], nil
}

type mockDashVisitors struct {
	pending int
}

func (m *mockDashVisitors) PendingCount(ctx context.Context) (int, error) {
	return m.pending, nil
}

type mockDashFees struct {
	counts map[string]int
	totals map[string]float64
}

func (m *mockDashFees) UnpaidSummary(ctx context.Context, studentID string) (int, float64, error) {
	return m.counts[studentID], m.totals[studentID], nil
}

type mockDashUsers struct {
	students int
}

func (m *mockDashUsers) CountByRole(ctx context.Context, role models.UserRole) (int, error) {
	return m.students, nil
}

func newDashboardService() *DashboardService {
	return NewDashboardService(DashboardServiceParams{
		Rooms:    &mockDashRooms{total: 12, occupied: 5, byOccupant: map[string]*models.Room{"u1": {ID: "r1", Number: "A-101"}}},
		Requests: &mockDashRequests{pending: 3, hasPending: map[string]bool{"u2": true}},
		Tickets:  &mockDashTickets{open: map[string]int{"": 4, "u1": 1}},
		Visitors: &mockDashVisitors{pending: 2},
		Fees:     &mockDashFees{counts: map[string]int{"u1": 2}, totals: map[string]float64{"": 4500}},
		Users:    &mockDashUsers{students: 40},
		Logger:   zap.NewNop(),
	})
}

func TestDashboardAdminSummary(t *testing.T) {
	svc := newDashboardService()

	summary, cached, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 12, summary.TotalRooms)
	assert.Equal(t, 5, summary.OccupiedRooms)
	assert.Equal(t, 7, summary.AvailableRooms)
	assert.Equal(t, 3, summary.PendingRequests)
	assert.Equal(t, 4, summary.OpenMaintenance)
	assert.Equal(t, 2, summary.PendingVisitors)
	assert.Equal(t, 4500.0, summary.UnpaidFeeTotal)
	assert.Equal(t, 40, summary.RegisteredStudents)
}

func TestDashboardStudentSummary(t *testing.T) {
	svc := newDashboardService()

	summary, err := svc.Student(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, summary.Room)
	assert.Equal(t, "A-101", summary.Room.Number)
	assert.False(t, summary.PendingRequest)
	assert.Equal(t, 1, summary.OpenMaintenance)
	assert.Equal(t, 2, summary.UnpaidFees)
}

func TestDashboardStudentWithoutRoom(t *testing.T) {
	svc := newDashboardService()

	summary, err := svc.Student(context.Background(), "u2")
	require.NoError(t, err)
	assert.Nil(t, summary.Room)
	assert.True(t, summary.PendingRequest)
}
