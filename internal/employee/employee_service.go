package employee

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	employeeerrors "hr-portal/internal/employee/errors"
	"hr-portal/internal/events"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const EmployeeOptionsKey = "employees:options"

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetDetail(ctx context.Context, id string) (EmployeeDetailResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	validate *validator.Validate
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		rdb:      rdb,
		validate: apperror.NewValidator(),
		sf:       &singleflight.Group{},
		logger:   l}
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
		zap.String("position", req.Position),
	)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("create employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, apperror.MapValidationErrors(err)
	}

	empl := &Employee{
		ID:                uuid.New(),
		Name:              req.Name,
		Position:          req.Position,
		Department:        req.Department,
		Salary:            req.Salary,
		EmploymentHistory: req.EmploymentHistory,
		Contact:           req.Contact,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if err := qtx.Create(ctx, empl); err != nil {
			s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
			return mapRepositoryError(err)
		}

		// Payroll row is born with the employee so the register never has
		// an employee without a paycheck baseline.
		record := &PayrollRecord{
			EmployeeID:      empl.ID,
			HoursWorked:     DefaultHoursWorked,
			LeaveDeductions: DefaultLeaveDeductions,
			FinalSalary:     req.Salary,
		}
		if err := qtx.CreatePayroll(ctx, record); err != nil {
			s.logger.Error("create employee payroll persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return mapRepositoryError(err)
		}

		if s.outbox != nil {
			if err := s.enqueueLifecycleEvent(ctx, tx, "employee_created", empl.ID.String(), rid); err != nil {
				s.logger.Error("create employee outbox persist failed",
					zap.String("employee_id", empl.ID.String()),
					zap.Error(err),
				)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(employees), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses the stampede when every open form asks for
	// the dropdown at once after an invalidation.
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		emps, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(emps))
		for i, e := range emps {
			resp[i] = EmployeeOptionResponse{ID: e.ID.String(), Name: e.Name}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) GetDetail(ctx context.Context, id string) (EmployeeDetailResponse, error) {
	s.logger.Debug("get employee detail requested", zap.String("employee_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeDetailResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee detail fetch employee failed", zap.Error(err))
		return EmployeeDetailResponse{}, mapRepositoryError(err)
	}

	detail := EmployeeDetailResponse{
		Employee:   mapToResponse(*empl),
		Attendance: []AttendanceEntryResponse{},
		Leave:      []LeaveEntryResponse{},
		Reviews:    []ReviewEntryResponse{},
	}

	record, err := s.repo.PayrollFor(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("get employee detail fetch payroll failed", zap.Error(err))
		return EmployeeDetailResponse{}, mapRepositoryError(err)
	}
	if err == nil {
		detail.Payroll = &PayrollRecordResponse{
			HoursWorked:     record.HoursWorked,
			LeaveDeductions: record.LeaveDeductions,
			FinalSalary:     record.FinalSalary,
		}
	}

	attendance, err := s.repo.RecentAttendance(ctx, id, 30)
	if err != nil {
		s.logger.Error("get employee detail fetch attendance failed", zap.Error(err))
		return EmployeeDetailResponse{}, mapRepositoryError(err)
	}
	for _, a := range attendance {
		detail.Attendance = append(detail.Attendance, AttendanceEntryResponse{
			ID:     a.ID.String(),
			Date:   a.Date.Format("2006-01-02"),
			Status: a.Status,
		})
	}

	leave, err := s.repo.RecentLeave(ctx, id, 30)
	if err != nil {
		s.logger.Error("get employee detail fetch leave failed", zap.Error(err))
		return EmployeeDetailResponse{}, mapRepositoryError(err)
	}
	for _, l := range leave {
		detail.Leave = append(detail.Leave, LeaveEntryResponse{
			ID:     l.ID.String(),
			Date:   l.Date.Format("2006-01-02"),
			Reason: l.Reason,
			Status: l.Status,
		})
	}

	reviews, err := s.repo.ReviewsFor(ctx, id)
	if err != nil {
		s.logger.Error("get employee detail fetch reviews failed", zap.Error(err))
		return EmployeeDetailResponse{}, mapRepositoryError(err)
	}
	for _, r := range reviews {
		detail.Reviews = append(detail.Reviews, ReviewEntryResponse{
			ID:         r.ID.String(),
			ReviewText: r.ReviewText,
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		})
	}

	return detail, nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("update employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, apperror.MapValidationErrors(err)
	}

	var empl *Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		empl, err = qtx.FindByID(ctx, id)
		if err != nil {
			s.logger.Error("update employee fetch existing failed", zap.Error(err))
			return mapRepositoryError(err)
		}

		empl.Name = req.Name
		empl.Position = req.Position
		empl.Department = req.Department
		empl.Salary = req.Salary
		empl.EmploymentHistory = req.EmploymentHistory
		empl.Contact = req.Contact

		if err := qtx.Update(ctx, empl); err != nil {
			s.logger.Error("update employee persist failed", zap.Error(err))
			return mapRepositoryError(err)
		}

		// Salary edits flow straight through to payroll.
		if err := qtx.SyncPayrollSalary(ctx, id, req.Salary); err != nil {
			s.logger.Error("update employee payroll sync failed", zap.Error(err))
			return mapRepositoryError(err)
		}
		return nil
	})
	if err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindByID(ctx, id); err != nil {
			s.logger.Warn("delete employee not found", zap.String("employee_id", id))
			return mapRepositoryError(err)
		}

		// Payroll goes first so the FK never dangles mid-transaction.
		if err := qtx.DeletePayroll(ctx, id); err != nil {
			s.logger.Error("delete employee payroll failed", zap.Error(err))
			return mapRepositoryError(err)
		}
		if err := qtx.Delete(ctx, id); err != nil {
			s.logger.Error("delete employee failed", zap.Error(err))
			return mapRepositoryError(err)
		}

		if s.outbox != nil {
			if err := s.enqueueLifecycleEvent(ctx, tx, "employee_deleted", id, rid); err != nil {
				s.logger.Error("delete employee outbox persist failed",
					zap.String("employee_id", id),
					zap.Error(err),
				)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *gorm.DB, eventType, employeeID, rid string) error {
	event := events.EmployeeLifecycleEvent{
		EventType:  eventType,
		RequestID:  rid,
		EmployeeID: employeeID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   employeeID,
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                empl.ID.String(),
		Name:              empl.Name,
		Position:          empl.Position,
		Department:        empl.Department,
		Salary:            empl.Salary,
		EmploymentHistory: empl.EmploymentHistory,
		Contact:           empl.Contact,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
