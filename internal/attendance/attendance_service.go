package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	attendanceerrors "hr-portal/internal/attendance/errors"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// RecentListLimit caps the unfiltered register at the latest entries.
const RecentListLimit = 50

type Service interface {
	GetAll(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
}

type service struct {
	repo     Repository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		repo:     repo,
		validate: apperror.NewValidator(),
		logger:   l}
}

func (s *service) GetAll(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	s.logger.Debug("get attendance requested", zap.String("employee_id", employeeID))

	var (
		rows []AttendanceRow
		err  error
	)
	if employeeID == "" {
		rows, err = s.repo.ListRecent(ctx, RecentListLimit)
	} else {
		if _, parseErr := uuid.Parse(employeeID); parseErr != nil {
			return nil, apperror.InvalidField("Employee ID")
		}
		rows, err = s.repo.ListByEmployee(ctx, employeeID)
	}
	if err != nil {
		s.logger.Error("get attendance failed", zap.Error(err))
		return nil, err
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, row := range rows {
		resp[i] = AttendanceResponse{
			ID:         row.ID.String(),
			EmployeeID: row.EmployeeID.String(),
			Name:       row.Name,
			Date:       row.Date.Format("2006-01-02"),
			Status:     row.Status,
		}
	}
	return resp, nil
}

func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("mark attendance requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("mark attendance validation failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, apperror.MapValidationErrors(err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("Date")
	}

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("mark attendance employee lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if !exists {
		s.logger.Warn("mark attendance unknown employee", zap.String("employee_id", req.EmployeeID))
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	record := &Attendance{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(req.EmployeeID),
		Date:       date,
		Status:     req.Status,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if isUniqueViolation(err) {
			s.logger.Warn("mark attendance duplicate",
				zap.String("employee_id", req.EmployeeID),
				zap.String("date", req.Date),
			)
			return AttendanceResponse{}, attendanceerrors.ErrDuplicateAttendance
		}
		s.logger.Error("mark attendance persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.String("attendance_id", record.ID.String()),
	)

	return AttendanceResponse{
		ID:         record.ID.String(),
		EmployeeID: record.EmployeeID.String(),
		Date:       record.Date.Format("2006-01-02"),
		Status:     record.Status,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}
