package leave

import (
	"context"
	"strings"
	"time"

	leaveerrors "hr-portal/internal/leave/errors"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const uniqueAttendancePerDate = "uq_attendance_employee_date"

type Service interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	Approve(ctx context.Context, id string) (LeaveResponse, error)
	Deny(ctx context.Context, id string) (LeaveResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		validate: apperror.NewValidator(),
		logger:   l}
}

func (s *service) Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
	)

	// Blank-only reasons count as missing.
	req.Reason = strings.TrimSpace(req.Reason)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("submit leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, apperror.MapValidationErrors(err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return LeaveResponse{}, apperror.InvalidField("Date")
	}

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("submit leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		s.logger.Warn("submit leave unknown employee", zap.String("employee_id", req.EmployeeID))
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	// Pre-check gives the friendly path; the unique index on
	// (employee_id, date) is the authoritative guard under races.
	duplicate, err := s.repo.ExistsForEmployeeDate(ctx, req.EmployeeID, date)
	if err != nil {
		s.logger.Error("submit leave duplicate check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if duplicate {
		s.logger.Warn("submit leave duplicate",
			zap.String("employee_id", req.EmployeeID),
			zap.String("date", req.Date),
		)
		return LeaveResponse{}, leaveerrors.ErrDuplicateRequest
	}

	request := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(req.EmployeeID),
		Date:       date,
		Reason:     req.Reason,
		Status:     StatusPending,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		s.logger.Error("submit leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", request.ID.String()),
	)

	return mapToResponse(*request), nil
}

func (s *service) GetAll(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	s.logger.Debug("get leave requests requested", zap.String("employee_id", employeeID))
	if employeeID != "" {
		if _, err := uuid.Parse(employeeID); err != nil {
			return nil, apperror.InvalidField("Employee ID")
		}
	}

	rows, err := s.repo.FindRows(ctx, employeeID)
	if err != nil {
		s.logger.Error("get leave requests failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]LeaveResponse, len(rows))
	for i, row := range rows {
		resp[i] = LeaveResponse{
			ID:         row.ID.String(),
			EmployeeID: row.EmployeeID.String(),
			Name:       row.Name,
			Date:       row.Date.Format("2006-01-02"),
			Reason:     row.Reason,
			Status:     row.Status,
			CreatedAt:  row.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *service) Approve(ctx context.Context, id string) (LeaveResponse, error) {
	return s.transitionStatus(ctx, id, StatusApproved)
}

func (s *service) Deny(ctx context.Context, id string) (LeaveResponse, error) {
	return s.transitionStatus(ctx, id, StatusDenied)
}

// transitionStatus moves a Pending request to its terminal status. Approval
// also records an Absent attendance row for the leave date inside the same
// transaction, so the two writes land or fail together.
func (s *service) transitionStatus(ctx context.Context, id, target string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("leave status transition requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("target", target),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	var request *LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		request, err = qtx.FindByID(ctx, id)
		if err != nil {
			s.logger.Warn("leave status transition fetch failed", zap.String("leave_id", id), zap.Error(err))
			return mapRepositoryError(err)
		}

		if request.Status != StatusPending {
			s.logger.Warn("leave status transition on resolved request",
				zap.String("leave_id", id),
				zap.String("status", request.Status),
			)
			return leaveerrors.ErrAlreadyResolved
		}

		if err := qtx.UpdateStatus(ctx, id, target); err != nil {
			s.logger.Error("leave status update failed", zap.String("leave_id", id), zap.Error(err))
			return mapRepositoryError(err)
		}
		request.Status = target

		if target == StatusApproved {
			if err := s.recordAbsence(ctx, qtx, request); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave status transition success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", target),
	)

	return mapToResponse(*request), nil
}

func (s *service) recordAbsence(ctx context.Context, qtx Repository, request *LeaveRequest) error {
	exists, err := qtx.AttendanceExists(ctx, request.EmployeeID, request.Date)
	if err != nil {
		s.logger.Error("approve leave attendance check failed", zap.Error(err))
		return err
	}
	if exists {
		s.logger.Debug("approve leave attendance already recorded",
			zap.String("leave_id", request.ID.String()),
		)
		return nil
	}

	if err := qtx.InsertAttendance(ctx, request.EmployeeID, request.Date, AttendanceAbsent); err != nil {
		// A concurrent writer beat us to the row; the day is already
		// covered, which is all the approval needs.
		if isUniqueViolation(err, uniqueAttendancePerDate) {
			s.logger.Debug("approve leave attendance insert raced",
				zap.String("leave_id", request.ID.String()),
			)
			return nil
		}
		s.logger.Error("approve leave attendance insert failed", zap.Error(err))
		return err
	}
	return nil
}

func mapToResponse(request LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:         request.ID.String(),
		EmployeeID: request.EmployeeID.String(),
		Date:       request.Date.Format("2006-01-02"),
		Reason:     request.Reason,
		Status:     request.Status,
		CreatedAt:  request.CreatedAt.Format(time.RFC3339),
	}
}
