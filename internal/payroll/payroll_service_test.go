package payroll_test

import (
	"context"
	"testing"

	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/payroll"
	payrollerrors "hr-portal/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	rows  map[string]payroll.PayrollRow
	slips []payroll.Payslip
}

func (f *fakeRepo) ListRows(ctx context.Context) ([]payroll.PayrollRow, error) {
	out := make([]payroll.PayrollRow, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeRepo) RowFor(ctx context.Context, employeeID string) (*payroll.PayrollRow, error) {
	row, ok := f.rows[employeeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (f *fakeRepo) StorePayslip(ctx context.Context, slip *payroll.Payslip) error {
	f.slips = append(f.slips, *slip)
	return nil
}

func (f *fakeRepo) LatestPayslip(ctx context.Context, employeeID string) (*payroll.Payslip, error) {
	for i := len(f.slips) - 1; i >= 0; i-- {
		if f.slips[i].EmployeeID.String() == employeeID {
			return &f.slips[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeOutbox struct {
	kafka.OutboxRepository

	created []kafka.OutboxEvent
}

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func setup(rows ...payroll.PayrollRow) (*fakeRepo, *fakeOutbox, payroll.Service) {
	repo := &fakeRepo{rows: map[string]payroll.PayrollRow{}}
	for _, row := range rows {
		repo.rows[row.EmployeeID.String()] = row
	}
	outbox := &fakeOutbox{}
	return repo, outbox, payroll.NewService(repo, outbox)
}

func sampleRow() payroll.PayrollRow {
	return payroll.PayrollRow{
		EmployeeID:      uuid.New(),
		Name:            "Jane Smith",
		Position:        "Engineer",
		HoursWorked:     160,
		LeaveDeductions: 2,
		FinalSalary:     4800,
	}
}

func TestPayrollService_GetByEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("breakdown attached to the stored row", func(t *testing.T) {
		row := sampleRow()
		_, _, svc := setup(row)

		resp, err := svc.GetByEmployee(ctx, row.EmployeeID.String())

		require.NoError(t, err)
		assert.Equal(t, 30.0, resp.HourlyRate)
		assert.Equal(t, 480.0, resp.LeaveDeduction)
		assert.Equal(t, 4320.0, resp.NetPay)
		assert.Equal(t, "Jane Smith", resp.Name)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, _, svc := setup()

		_, err := svc.GetByEmployee(ctx, uuid.New().String())

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, _, svc := setup()

		_, err := svc.GetByEmployee(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidEmployeeID)
	})
}

func TestPayrollService_GeneratePayslipPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("renders a pdf document", func(t *testing.T) {
		row := sampleRow()
		_, _, svc := setup(row)

		pdf, err := svc.GeneratePayslipPDF(ctx, row.EmployeeID.String())

		require.NoError(t, err)
		require.NotEmpty(t, pdf)
		assert.Equal(t, "%PDF", string(pdf[:4]))
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, _, svc := setup()

		_, err := svc.GeneratePayslipPDF(ctx, uuid.New().String())

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})
}

func TestPayrollService_RequestPayslip(t *testing.T) {
	ctx := context.Background()

	t.Run("queues an outbox event", func(t *testing.T) {
		row := sampleRow()
		_, outbox, svc := setup(row)

		resp, err := svc.RequestPayslip(ctx, row.EmployeeID.String(), "admin-1")

		require.NoError(t, err)
		assert.Equal(t, "queued", resp.Status)
		require.Len(t, outbox.created, 1)
		assert.Equal(t, "payslip_requested", outbox.created[0].EventType)
		assert.Equal(t, row.EmployeeID.String(), outbox.created[0].AggregateID)
		assert.Equal(t, kafka.OutboxStatusPending, outbox.created[0].Status)
	})

	t.Run("unknown employee queues nothing", func(t *testing.T) {
		_, outbox, svc := setup()

		_, err := svc.RequestPayslip(ctx, uuid.New().String(), "admin-1")

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
		assert.Empty(t, outbox.created)
	})
}

func TestPayrollService_StoredPayslips(t *testing.T) {
	ctx := context.Background()

	t.Run("generate, store, fetch back", func(t *testing.T) {
		row := sampleRow()
		repo, _, svc := setup(row)

		err := svc.GenerateAndStorePayslip(ctx, row.EmployeeID.String())
		require.NoError(t, err)
		require.Len(t, repo.slips, 1)

		pdf, err := svc.LatestStoredPayslip(ctx, row.EmployeeID.String())
		require.NoError(t, err)
		assert.Equal(t, repo.slips[0].PDF, pdf)
	})

	t.Run("nothing stored yet", func(t *testing.T) {
		row := sampleRow()
		_, _, svc := setup(row)

		_, err := svc.LatestStoredPayslip(ctx, row.EmployeeID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotFound)
	})
}
