package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"hr-portal/internal/leave"
	leaveerrors "hr-portal/internal/leave/errors"
	"hr-portal/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepo struct {
	leave.Repository

	createFn           func(ctx context.Context, req *leave.LeaveRequest) error
	findByIDFn         func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	existsFn           func(ctx context.Context, employeeID string, date time.Time) (bool, error)
	employeeExistsFn   func(ctx context.Context, employeeID string) (bool, error)
	updateStatusFn     func(ctx context.Context, id, status string) error
	attendanceExistsFn func(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error)
	insertAttendanceFn func(ctx context.Context, employeeID uuid.UUID, date time.Time, status string) error

	calls []string
}

func (f *fakeRepo) WithTx(tx *gorm.DB) leave.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, req *leave.LeaveRequest) error {
	f.calls = append(f.calls, "Create")
	return f.createFn(ctx, req)
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) ExistsForEmployeeDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return f.existsFn(ctx, employeeID, date)
}

func (f *fakeRepo) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	return f.employeeExistsFn(ctx, employeeID)
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id, status string) error {
	f.calls = append(f.calls, "UpdateStatus:"+status)
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeRepo) AttendanceExists(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error) {
	f.calls = append(f.calls, "AttendanceExists")
	return f.attendanceExistsFn(ctx, employeeID, date)
}

func (f *fakeRepo) InsertAttendance(ctx context.Context, employeeID uuid.UUID, date time.Time, status string) error {
	f.calls = append(f.calls, "InsertAttendance:"+status)
	return f.insertAttendanceFn(ctx, employeeID, date, status)
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *fakeRepo
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	repo := &fakeRepo{}
	svc := leave.NewService(gdb, repo)

	return &serviceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func pendingRequest() *leave.LeaveRequest {
	return &leave.LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Date:       time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		Reason:     "Medical appointment",
		Status:     leave.StatusPending,
	}
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success - inserts a pending request", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		employeeID := uuid.New().String()
		deps.repo.employeeExistsFn = func(ctx context.Context, id string) (bool, error) {
			return true, nil
		}
		deps.repo.existsFn = func(ctx context.Context, id string, date time.Time) (bool, error) {
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, req *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusPending, req.Status)
			assert.Equal(t, employeeID, req.EmployeeID.String())
			return nil
		}

		resp, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			EmployeeID: employeeID,
			Date:       "2026-03-09",
			Reason:     "Medical appointment",
		})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, "2026-03-09", resp.Date)
	})

	t.Run("validation - all violations reported together", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
		assert.ElementsMatch(t, []string{
			"Employee Id is required",
			"Date is required",
			"Reason is required",
		}, appErr.Details)
		assert.Empty(t, deps.repo.calls)
	})

	t.Run("validation - blank reason counts as missing", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			EmployeeID: uuid.New().String(),
			Date:       "2026-03-09",
			Reason:     "   ",
		})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Details, "Reason is required")
	})

	t.Run("duplicate caught by pre-check", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.employeeExistsFn = func(ctx context.Context, id string) (bool, error) {
			return true, nil
		}
		deps.repo.existsFn = func(ctx context.Context, id string, date time.Time) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			EmployeeID: uuid.New().String(),
			Date:       "2026-03-09",
			Reason:     "Vacation",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrDuplicateRequest)
		assert.Empty(t, deps.repo.calls)
	})

	t.Run("duplicate caught by the unique index under a race", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.employeeExistsFn = func(ctx context.Context, id string) (bool, error) {
			return true, nil
		}
		deps.repo.existsFn = func(ctx context.Context, id string, date time.Time) (bool, error) {
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, req *leave.LeaveRequest) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_leave_employee_date"}
		}

		_, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			EmployeeID: uuid.New().String(),
			Date:       "2026-03-09",
			Reason:     "Vacation",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrDuplicateRequest)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.employeeExistsFn = func(ctx context.Context, id string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			EmployeeID: uuid.New().String(),
			Date:       "2026-03-09",
			Reason:     "Vacation",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("approval records an absence in the same transaction", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		request := pendingRequest()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return request, nil
		}
		deps.repo.updateStatusFn = func(ctx context.Context, id, status string) error {
			return nil
		}
		deps.repo.attendanceExistsFn = func(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error) {
			assert.Equal(t, request.EmployeeID, employeeID)
			return false, nil
		}
		deps.repo.insertAttendanceFn = func(ctx context.Context, employeeID uuid.UUID, date time.Time, status string) error {
			assert.Equal(t, leave.AttendanceAbsent, status)
			assert.Equal(t, request.Date, date)
			return nil
		}

		resp, err := deps.service.Approve(ctx, request.ID.String())

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, []string{
			"UpdateStatus:Approved",
			"AttendanceExists",
			"InsertAttendance:Absent",
		}, deps.repo.calls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("approval skips the insert when the day is already recorded", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		request := pendingRequest()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return request, nil
		}
		deps.repo.updateStatusFn = func(ctx context.Context, id, status string) error {
			return nil
		}
		deps.repo.attendanceExistsFn = func(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Approve(ctx, request.ID.String())

		require.NoError(t, err)
		assert.NotContains(t, deps.repo.calls, "InsertAttendance:Absent")
	})

	t.Run("a raced attendance insert does not fail the approval", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		request := pendingRequest()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return request, nil
		}
		deps.repo.updateStatusFn = func(ctx context.Context, id, status string) error {
			return nil
		}
		deps.repo.attendanceExistsFn = func(ctx context.Context, employeeID uuid.UUID, date time.Time) (bool, error) {
			return false, nil
		}
		deps.repo.insertAttendanceFn = func(ctx context.Context, employeeID uuid.UUID, date time.Time, status string) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"}
		}

		resp, err := deps.service.Approve(ctx, request.ID.String())

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
	})

	t.Run("resolved requests are terminal", func(t *testing.T) {
		for _, status := range []string{leave.StatusApproved, leave.StatusDenied} {
			deps := setupServiceTest(t)

			request := pendingRequest()
			request.Status = status

			expectTx(t, deps.sqlMock, false)

			deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
				return request, nil
			}

			_, err := deps.service.Approve(ctx, request.ID.String())

			assert.ErrorIs(t, err, leaveerrors.ErrAlreadyResolved, status)
			assert.NotContains(t, deps.repo.calls, "UpdateStatus:Approved")
			deps.db.Close()
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Approve(ctx, uuid.New().String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Approve(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveID)
	})
}

func TestLeaveService_Deny(t *testing.T) {
	ctx := context.Background()

	t.Run("denial never touches attendance", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		request := pendingRequest()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return request, nil
		}
		deps.repo.updateStatusFn = func(ctx context.Context, id, status string) error {
			assert.Equal(t, leave.StatusDenied, status)
			return nil
		}

		resp, err := deps.service.Deny(ctx, request.ID.String())

		require.NoError(t, err)
		assert.Equal(t, leave.StatusDenied, resp.Status)
		assert.Equal(t, []string{"UpdateStatus:Denied"}, deps.repo.calls)
	})
}
