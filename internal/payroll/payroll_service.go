package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hr-portal/internal/events"
	"hr-portal/internal/messaging/kafka"
	payrollerrors "hr-portal/internal/payroll/errors"
	"hr-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetAll(ctx context.Context) ([]BreakdownResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) (BreakdownResponse, error)
	GeneratePayslipPDF(ctx context.Context, employeeID string) ([]byte, error)
	RequestPayslip(ctx context.Context, employeeID, requestedBy string) (PayslipRequestedResponse, error)
	GenerateAndStorePayslip(ctx context.Context, employeeID string) error
	LatestStoredPayslip(ctx context.Context, employeeID string) ([]byte, error)
}

type service struct {
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]BreakdownResponse, error) {
	s.logger.Debug("get payroll register requested")
	rows, err := s.repo.ListRows(ctx)
	if err != nil {
		s.logger.Error("get payroll register failed", zap.Error(err))
		return nil, err
	}

	resp := make([]BreakdownResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToBreakdownResponse(row)
	}
	return resp, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (BreakdownResponse, error) {
	s.logger.Debug("get payroll breakdown requested", zap.String("employee_id", employeeID))
	row, err := s.fetchRow(ctx, employeeID)
	if err != nil {
		return BreakdownResponse{}, err
	}

	return mapToBreakdownResponse(*row), nil
}

func (s *service) GeneratePayslipPDF(ctx context.Context, employeeID string) ([]byte, error) {
	s.logger.Debug("generate payslip requested", zap.String("employee_id", employeeID))
	row, err := s.fetchRow(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	bd := ComputeBreakdown(row.FinalSalary, row.HoursWorked, row.LeaveDeductions)
	pdf, err := renderPayslipPDF(*row, bd, time.Now())
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("payslip generated", zap.String("employee_id", employeeID))
	return pdf, nil
}

func (s *service) RequestPayslip(ctx context.Context, employeeID, requestedBy string) (PayslipRequestedResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("payslip request queued",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
	)

	// Validate the employee has a payroll row before queueing anything.
	if _, err := s.fetchRow(ctx, employeeID); err != nil {
		return PayslipRequestedResponse{}, err
	}

	event := events.PayslipRequestedEvent{
		EventType:   "payslip_requested",
		RequestID:   rid,
		EmployeeID:  employeeID,
		RequestedBy: requestedBy,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return PayslipRequestedResponse{}, err
	}

	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "payroll",
		AggregateID:   employeeID,
		EventType:     event.EventType,
		Topic:         events.PayslipRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("payslip request outbox persist failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return PayslipRequestedResponse{}, err
	}

	s.logger.Info("payslip request accepted",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
	)
	return PayslipRequestedResponse{EmployeeID: employeeID, Status: "queued"}, nil
}

// GenerateAndStorePayslip renders and persists a payslip; the consumer calls
// it when a payslip-requested event arrives.
func (s *service) GenerateAndStorePayslip(ctx context.Context, employeeID string) error {
	row, err := s.fetchRow(ctx, employeeID)
	if err != nil {
		return err
	}

	bd := ComputeBreakdown(row.FinalSalary, row.HoursWorked, row.LeaveDeductions)
	now := time.Now()
	pdf, err := renderPayslipPDF(*row, bd, now)
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("employee_id", employeeID), zap.Error(err))
		return err
	}

	slip := &Payslip{
		ID:          uuid.New(),
		EmployeeID:  row.EmployeeID,
		PDF:         pdf,
		GeneratedAt: now,
	}
	if err := s.repo.StorePayslip(ctx, slip); err != nil {
		s.logger.Error("store payslip failed", zap.String("employee_id", employeeID), zap.Error(err))
		return err
	}

	s.logger.Info("payslip stored",
		zap.String("employee_id", employeeID),
		zap.String("payslip_id", slip.ID.String()),
	)
	return nil
}

func (s *service) LatestStoredPayslip(ctx context.Context, employeeID string) ([]byte, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}

	slip, err := s.repo.LatestPayslip(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayslipNotFound
		}
		s.logger.Error("fetch stored payslip failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return slip.PDF, nil
}

func (s *service) fetchRow(ctx context.Context, employeeID string) (*PayrollRow, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}

	row, err := s.repo.RowFor(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		s.logger.Error("fetch payroll row failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return row, nil
}

func mapToBreakdownResponse(row PayrollRow) BreakdownResponse {
	bd := ComputeBreakdown(row.FinalSalary, row.HoursWorked, row.LeaveDeductions)
	return BreakdownResponse{
		EmployeeID:      row.EmployeeID.String(),
		Name:            row.Name,
		Position:        row.Position,
		HoursWorked:     row.HoursWorked,
		LeaveDeductions: row.LeaveDeductions,
		FinalSalary:     row.FinalSalary,
		HourlyRate:      bd.HourlyRate,
		LeaveHours:      bd.LeaveHours,
		LeaveDeduction:  bd.LeaveDeduction,
		NetPay:          bd.NetPay,
	}
}
