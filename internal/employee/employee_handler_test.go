package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeEmployeeService struct {
	createFn     func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getAllFn     func(ctx context.Context, filter employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, int64, error)
	getOptionsFn func(ctx context.Context) ([]employee.EmployeeResponse, error)
	getByIDFn    func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	updateCompFn func(ctx context.Context, id string, req employee.CompensationRequest) (employee.EmployeeResponse, error)
	deactivateFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, filter employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, int64, error) {
	return f.getAllFn(ctx, filter)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.getOptionsFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeEmployeeService) UpdateCompensation(ctx context.Context, id string, req employee.CompensationRequest) (employee.EmployeeResponse, error) {
	return f.updateCompFn(ctx, id, req)
}
func (f *fakeEmployeeService) Deactivate(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.deactivateFn(ctx, id)
}

func setupRouter(svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := employee.NewHandler(svc)

	r := gin.New()
	r.POST("/employees", h.Create)
	r.GET("/employees", h.GetAll)
	r.GET("/employees/options", h.GetOptions)
	r.GET("/employees/:id", h.GetByID)
	r.PUT("/employees/:id/compensation", h.UpdateCompensation)
	r.POST("/employees/:id/deactivate", h.Deactivate)
	return r
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(_ context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "asha@example.com", req.Email)
				assert.Equal(t, "50000", req.Compensation.BasicSalary.String())
				return employee.EmployeeResponse{ID: uuid.NewString(), EmployeeCode: "EMP-000001", Email: req.Email}, nil
			},
		}

		body := `{"full_name":"Asha Rao","email":"asha@example.com","joined_at":"2024-04-01",` +
			`"compensation":{"basic_salary":"50000","hra":15000,"pf_percentage":12}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"employee_code":"EMP-000001"`)
	})

	t.Run("missing email", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"full_name":"Asha","joined_at":"2024-04-01"}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(&fakeEmployeeService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(context.Context, employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
			},
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees",
			strings.NewReader(`{"full_name":"Asha Rao","email":"asha@example.com","joined_at":"2024-04-01"}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		getAllFn: func(_ context.Context, f employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, int64, error) {
			assert.Equal(t, "ACTIVE", f.Status)
			assert.Equal(t, "asha", f.Search)
			assert.Equal(t, 2, f.Page)
			assert.Equal(t, 10, f.PageSize)
			return []employee.EmployeeResponse{{FullName: "Asha Rao"}}, 11, nil
		},
	}

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?status=ACTIVE&q=asha&page=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.JSONEq(t, `{"total":11,"totalPages":2,"page":2,"pageSize":10}`, string(env.Meta))

	w = httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?status=GONE", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeEmployeeService{
		getByIDFn: func(context.Context, string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, decodeEnvelope(t, w.Body.Bytes()).Error.Code)
}

func TestEmployeeHandler_UpdateCompensation(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeEmployeeService{
		updateCompFn: func(_ context.Context, got string, req employee.CompensationRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, id, got)
			if req.BasicSalary.IsNegative() {
				return employee.EmployeeResponse{}, employeeerrors.ErrNegativeCompensation
			}
			return employee.EmployeeResponse{ID: got}, nil
		},
	}
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/employees/"+id+"/compensation", strings.NewReader(`{"basic_salary":"60000"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/employees/"+id+"/compensation", strings.NewReader(`{"basic_salary":"-1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandler_Deactivate(t *testing.T) {
	svc := &fakeEmployeeService{
		deactivateFn: func(context.Context, string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrAlreadyInactive
		},
	}

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/employees/"+uuid.NewString()+"/deactivate", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeInvalidState, decodeEnvelope(t, w.Body.Bytes()).Error.Code)
}

func TestEmployeeHandler_GetOptions(t *testing.T) {
	svc := &fakeEmployeeService{
		getOptionsFn: func(context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{{FullName: "Asha Rao"}}, nil
		},
	}

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/options", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Asha Rao")
}
