package review

import (
	"context"
	"strings"
	"time"

	reviewerrors "hr-portal/internal/review/errors"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Add(ctx context.Context, req AddReviewRequest) (ReviewResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]ReviewResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("review.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("review.service")
	}
	return &service{
		repo:     repo,
		validate: apperror.NewValidator(),
		logger:   l}
}

func (s *service) Add(ctx context.Context, req AddReviewRequest) (ReviewResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("add review requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
	)

	req.ReviewText = strings.TrimSpace(req.ReviewText)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("add review validation failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, apperror.MapValidationErrors(err)
	}

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("add review employee lookup failed", zap.Error(err))
		return ReviewResponse{}, err
	}
	if !exists {
		s.logger.Warn("add review unknown employee", zap.String("employee_id", req.EmployeeID))
		return ReviewResponse{}, reviewerrors.ErrEmployeeNotFound
	}

	rec := &Review{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(req.EmployeeID),
		ReviewText: req.ReviewText,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("add review persist failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, err
	}

	s.logger.Info("add review success",
		zap.String("request_id", rid),
		zap.String("review_id", rec.ID.String()),
	)

	return mapToResponse(*rec), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]ReviewResponse, error) {
	s.logger.Debug("list reviews requested", zap.String("employee_id", employeeID))
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, apperror.InvalidField("Employee ID")
	}

	reviews, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list reviews failed", zap.Error(err))
		return nil, err
	}

	resp := make([]ReviewResponse, len(reviews))
	for i, rec := range reviews {
		resp[i] = mapToResponse(rec)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete review requested",
		zap.String("request_id", rid),
		zap.String("review_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return reviewerrors.ErrInvalidReviewID
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete review failed", zap.Error(err))
		return err
	}
	if affected == 0 {
		s.logger.Warn("delete review not found", zap.String("review_id", id))
		return reviewerrors.ErrReviewNotFound
	}

	s.logger.Info("delete review success",
		zap.String("request_id", rid),
		zap.String("review_id", id),
	)
	return nil
}

func mapToResponse(rec Review) ReviewResponse {
	return ReviewResponse{
		ID:         rec.ID.String(),
		EmployeeID: rec.EmployeeID.String(),
		ReviewText: rec.ReviewText,
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
	}
}
