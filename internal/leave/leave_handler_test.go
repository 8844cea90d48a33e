package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hr-portal/internal/leave"
	leaveerrors "hr-portal/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveService struct {
	SubmitFn  func(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error)
	GetAllFn  func(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error)
	ApproveFn func(ctx context.Context, id string) (leave.LeaveResponse, error)
	DenyFn    func(ctx context.Context, id string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	return f.SubmitFn(ctx, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	return f.GetAllFn(ctx, employeeID)
}
func (f *fakeLeaveService) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.ApproveFn(ctx, id)
}
func (f *fakeLeaveService) Deny(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.DenyFn(ctx, id)
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

func TestLeaveHandler_Submit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, "2026-03-09", req.Date)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: req.EmployeeID,
					Date:       req.Date,
					Reason:     req.Reason,
					Status:     leave.StatusPending,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"` + uuid.New().String() + `","date":"2026-03-09","reason":"Vacation"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
	})

	t.Run("duplicate surfaces as 409", func(t *testing.T) {
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrDuplicateRequest
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_id":"` + uuid.New().String() + `","date":"2026-03-09","reason":"Vacation"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/leave-requests", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Submit(c)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "CONFLICT", resp.Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/leave-requests", strings.NewReader("{"))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("resolved request surfaces as 409 with invalid state", func(t *testing.T) {
		svc := &fakeLeaveService{
			ApproveFn: func(ctx context.Context, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrAlreadyResolved
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		id := uuid.New().String()
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/leave-requests/"+id+"/approve", nil)

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_STATE", resp.Error.Code)
	})
}
