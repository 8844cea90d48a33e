package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hr-portal/internal/employee"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	GetAllFn     func(ctx context.Context) ([]employee.EmployeeResponse, error)
	CreateFn     func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetOptionsFn func(ctx context.Context) ([]employee.EmployeeOptionResponse, error)
	GetByIDFn    func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	GetDetailFn  func(ctx context.Context, id string) (employee.EmployeeDetailResponse, error)
	UpdateFn     func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn     func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeOptionResponse, error) {
	return f.GetOptionsFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) GetDetail(ctx context.Context, id string) (employee.EmployeeDetailResponse, error) {
	return f.GetDetailFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func listEmployees(t *testing.T, svc employee.Service, query string) []employee.EmployeeResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := employee.NewHandler(svc)
	router.GET("/employees", handler.GetAll)

	req := httptest.NewRequest(http.MethodGet, "/employees"+query, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data []employee.EmployeeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

func TestEmployeeHandler_GetAll_Sorting(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{Name: "Alice", Position: "Clerk", Department: "Finance", Salary: 3200},
				{Name: "Bob", Position: "Clerk", Department: "Finance", Salary: 4800},
				{Name: "Carol", Position: "Manager", Department: "Finance", Salary: 4800},
				{Name: "Dave", Position: "Clerk", Department: "IT", Salary: 2100},
			}, nil
		},
	}

	t.Run("salary descending with duplicate keys", func(t *testing.T) {
		got := listEmployees(t, svc, "?sort_by=salary&sort_dir=desc")

		require.Len(t, got, 4)
		salaries := make([]float64, len(got))
		for i, e := range got {
			salaries[i] = e.Salary
		}
		assert.Equal(t, []float64{4800, 4800, 3200, 2100}, salaries)
	})

	t.Run("name ascending is the default", func(t *testing.T) {
		got := listEmployees(t, svc, "")

		require.Len(t, got, 4)
		assert.Equal(t, "Alice", got[0].Name)
		assert.Equal(t, "Dave", got[3].Name)
	})

	t.Run("department descending", func(t *testing.T) {
		got := listEmployees(t, svc, "?sort_by=department&sort_dir=desc")

		require.Len(t, got, 4)
		assert.Equal(t, "IT", got[0].Department)
		assert.Equal(t, "Finance", got[3].Department)
	})
}
