package review_test

import (
	"context"
	"testing"

	"hr-portal/internal/review"
	reviewerrors "hr-portal/internal/review/errors"
	"hr-portal/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	created        []review.Review
	stored         []review.Review
	deleteAffected int64
	employeeExists bool
}

func (f *fakeRepo) Create(ctx context.Context, rec *review.Review) error {
	f.created = append(f.created, *rec)
	return nil
}

func (f *fakeRepo) ListByEmployee(ctx context.Context, employeeID string) ([]review.Review, error) {
	return f.stored, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (int64, error) {
	return f.deleteAffected, nil
}

func (f *fakeRepo) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	return f.employeeExists, nil
}

func TestReviewService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeRepo{employeeExists: true}
		svc := review.NewService(repo)

		resp, err := svc.Add(ctx, review.AddReviewRequest{
			EmployeeID: uuid.New().String(),
			ReviewText: "Consistently exceeds expectations.",
		})

		require.NoError(t, err)
		assert.Equal(t, "Consistently exceeds expectations.", resp.ReviewText)
		require.Len(t, repo.created, 1)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		svc := review.NewService(&fakeRepo{employeeExists: true})

		_, err := svc.Add(ctx, review.AddReviewRequest{
			EmployeeID: uuid.New().String(),
			ReviewText: "",
		})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Details, "Review Text is required")
	})

	t.Run("blank text rejected", func(t *testing.T) {
		repo := &fakeRepo{employeeExists: true}
		svc := review.NewService(repo)

		_, err := svc.Add(ctx, review.AddReviewRequest{
			EmployeeID: uuid.New().String(),
			ReviewText: "   ",
		})

		assert.Error(t, err)
		assert.Empty(t, repo.created)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := review.NewService(&fakeRepo{employeeExists: false})

		_, err := svc.Add(ctx, review.AddReviewRequest{
			EmployeeID: uuid.New().String(),
			ReviewText: "Solid quarter.",
		})

		assert.ErrorIs(t, err, reviewerrors.ErrEmployeeNotFound)
	})
}

func TestReviewService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc := review.NewService(&fakeRepo{deleteAffected: 1})

		assert.NoError(t, svc.Delete(ctx, uuid.New().String()))
	})

	t.Run("unknown review", func(t *testing.T) {
		svc := review.NewService(&fakeRepo{deleteAffected: 0})

		err := svc.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, reviewerrors.ErrReviewNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := review.NewService(&fakeRepo{})

		err := svc.Delete(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, reviewerrors.ErrInvalidReviewID)
	})
}
