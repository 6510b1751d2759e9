package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

type mockFeeRepo struct {
	created      []*models.FeeRecord
	all          []models.FeeDetail
	byStudent    map[string][]models.FeeDetail
	statusErr    error
	listAllCalls int
}

func (m *mockFeeRepo) FindByID(ctx context.Context, id string) (*models.FeeRecord, error) {
	return nil, sql.ErrNoRows
}

func (m *mockFeeRepo) Create(ctx context.Context, fee *models.FeeRecord) error {
	fee.ID = "f-new"
	m.created = append(m.created, fee)
	return nil
}

func (m *mockFeeRepo) ListAll(ctx context.Context) ([]models.FeeDetail, error) {
	m.listAllCalls++
	return m.all, nil
}

func (m *mockFeeRepo) ListByStudent(ctx context.Context, studentID string) ([]models.FeeDetail, error) {
	return m.byStudent[studentID], nil
}

func (m *mockFeeRepo) UpdateStatus(ctx context.Context, id string, status models.FeeStatus) error {
	return m.statusErr
}

func (m *mockFeeRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type mockFeeUsers struct {
	byCustomID map[string]*models.User
}

func (m *mockFeeUsers) FindByCustomID(ctx context.Context, customID string) (*models.User, error) {
	user, ok := m.byCustomID[customID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func newFeeService(repo *mockFeeRepo, users *mockFeeUsers) *FeeService {
	return NewFeeService(repo, users, validator.New(), zap.NewNop())
}

func TestFeeServiceCreate(t *testing.T) {
	repo := &mockFeeRepo{}
	users := &mockFeeUsers{byCustomID: map[string]*models.User{
		"aB3xY9": {ID: "u1", CustomID: "aB3xY9", Role: models.RoleStudent},
	}}
	svc := newFeeService(repo, users)

	fee, err := svc.Create(context.Background(), models.FeeCreateRequest{
		StudentCustomID: "aB3xY9",
		Amount:          1500,
		DueDate:         time.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeePending, fee.Status)
	assert.Equal(t, "u1", fee.StudentID)
}

func TestFeeServiceCreateUnknownStudent(t *testing.T) {
	svc := newFeeService(&mockFeeRepo{}, &mockFeeUsers{})

	_, err := svc.Create(context.Background(), models.FeeCreateRequest{
		StudentCustomID: "zzzzzz",
		Amount:          1500,
		DueDate:         time.Now(),
	})
	assert.ErrorIs(t, err, appErrors.ErrUnknownUser)
}

func TestFeeServiceCreateNonStudent(t *testing.T) {
	users := &mockFeeUsers{byCustomID: map[string]*models.User{
		"cD4eF5": {ID: "u2", CustomID: "cD4eF5", Role: models.RoleStaff},
	}}
	svc := newFeeService(&mockFeeRepo{}, users)

	_, err := svc.Create(context.Background(), models.FeeCreateRequest{
		StudentCustomID: "cD4eF5",
		Amount:          1500,
		DueDate:         time.Now(),
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestFeeServiceCreateNonPositiveAmount(t *testing.T) {
	svc := newFeeService(&mockFeeRepo{}, &mockFeeUsers{})

	_, err := svc.Create(context.Background(), models.FeeCreateRequest{
		StudentCustomID: "aB3xY9",
		Amount:          0,
		DueDate:         time.Now(),
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestFeeServiceListScopedByRole(t *testing.T) {
	repo := &mockFeeRepo{
		all: []models.FeeDetail{{}, {}},
		byStudent: map[string][]models.FeeDetail{
			"u1": {{}},
		},
	}
	svc := newFeeService(repo, &mockFeeUsers{})

	own, err := svc.List(context.Background(), "u1", models.RoleStudent)
	require.NoError(t, err)
	assert.Len(t, own, 1)
	assert.Zero(t, repo.listAllCalls)

	all, err := svc.List(context.Background(), "admin", models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFeeServiceUpdateStatusNotFound(t *testing.T) {
	repo := &mockFeeRepo{statusErr: sql.ErrNoRows}
	svc := newFeeService(repo, &mockFeeUsers{})

	err := svc.UpdateStatus(context.Background(), "ghost", models.FeeStatusRequest{Status: models.FeePaid})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
