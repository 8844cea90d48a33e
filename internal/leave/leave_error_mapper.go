package leave

import (
	"errors"
	"strings"

	leaveerrors "hr-portal/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueLeavePerDate = "uq_leave_employee_date"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	if isUniqueViolation(err, uniqueLeavePerDate) {
		return leaveerrors.ErrDuplicateRequest
	}

	return err
}

// isUniqueViolation reports whether err is a Postgres 23505 on the named
// constraint, accepting both the typed pgconn error and the string form gorm
// sometimes wraps it in.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraint)
}
