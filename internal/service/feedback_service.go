package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

type feedbackRepository interface {
	Create(ctx context.Context, entry *models.FeedbackEntry) error
	ListAll(ctx context.Context) ([]models.FeedbackDetail, error)
	ListByAuthor(ctx context.Context, userID string) ([]models.FeedbackDetail, error)
}

// FeedbackService collects feedback entries. Entries are append-only; there
// is no edit or delete.
type FeedbackService struct {
	repo      feedbackRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeedbackService constructs a FeedbackService instance.
func NewFeedbackService(repo feedbackRepository, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeedbackService{repo: repo, validator: validate, logger: logger}
}

// Submit records a feedback entry for the caller.
func (s *FeedbackService) Submit(ctx context.Context, userID string, req models.FeedbackRequest) (*models.FeedbackEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload")
	}

	entry := &models.FeedbackEntry{UserID: userID, Text: req.Text}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit feedback")
	}
	return entry, nil
}

// List returns entries scoped by role: students see their own, the admin
// sees all. Staff have no feedback visibility.
func (s *FeedbackService) List(ctx context.Context, callerID string, role models.UserRole) ([]models.FeedbackDetail, error) {
	var (
		entries []models.FeedbackDetail
		err     error
	)
	if role == models.RoleStudent {
		entries, err = s.repo.ListByAuthor(ctx, callerID)
	} else {
		entries, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	return entries, nil
}
