package payroll_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollService struct {
	CalculateFn    func(ctx context.Context, organizationID, actorID string, req payroll.CalculateRequest) (payroll.CalculateResponse, error)
	GetAllFn       func(ctx context.Context, organizationID string, scope payroll.ReadScope, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error)
	GetByIDFn      func(ctx context.Context, organizationID string, scope payroll.ReadScope, id string) (payroll.PayrollResponse, error)
	GetBreakdownFn func(ctx context.Context, organizationID string, scope payroll.ReadScope, id string) (payroll.PayrollBreakdownResponse, error)
	OpenPayslipFn  func(ctx context.Context, organizationID string, scope payroll.ReadScope, id string) (io.ReadCloser, string, error)
}

func (f *fakePayrollService) CalculateForProject(ctx context.Context, organizationID, actorID string, req payroll.CalculateRequest) (payroll.CalculateResponse, error) {
	return f.CalculateFn(ctx, organizationID, actorID, req)
}
func (f *fakePayrollService) GetAll(ctx context.Context, organizationID string, scope payroll.ReadScope, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error) {
	return f.GetAllFn(ctx, organizationID, scope, filter)
}
func (f *fakePayrollService) GetByID(ctx context.Context, organizationID string, scope payroll.ReadScope, id string) (payroll.PayrollResponse, error) {
	return f.GetByIDFn(ctx, organizationID, scope, id)
}
func (f *fakePayrollService) GetBreakdown(ctx context.Context, organizationID string, scope payroll.ReadScope, id string) (payroll.PayrollBreakdownResponse, error) {
	return f.GetBreakdownFn(ctx, organizationID, scope, id)
}
func (f *fakePayrollService) GeneratePayslip(context.Context, string, string) (payroll.PayrollResponse, error) {
	return payroll.PayrollResponse{}, nil
}
func (f *fakePayrollService) OpenPayslip(ctx context.Context, organizationID string, scope payroll.ReadScope, id string) (io.ReadCloser, string, error) {
	return f.OpenPayslipFn(ctx, organizationID, scope, id)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withIdentity(organizationID, userID string) gin.HandlerFunc {
	return withRole(organizationID, userID, middleware.RoleAdmin)
}

func withRole(organizationID, userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("organization_id", organizationID)
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestPayrollHandler_Calculate(t *testing.T) {
	orgID := uuid.NewString()
	userID := uuid.NewString()
	projectID := uuid.NewString()

	t.Run("created", func(t *testing.T) {
		svc := &fakePayrollService{
			CalculateFn: func(_ context.Context, gotOrg, gotActor string, req payroll.CalculateRequest) (payroll.CalculateResponse, error) {
				assert.Equal(t, orgID, gotOrg)
				assert.Equal(t, userID, gotActor)
				assert.Equal(t, projectID, req.ProjectID)
				return payroll.CalculateResponse{ProjectID: projectID, Created: 2}, nil
			},
		}
		r := setupRouter()
		r.POST("/payrolls/calculate", withIdentity(orgID, userID), payroll.NewHandler(svc).Calculate)

		body := `{"project_id":"` + projectID + `","period_start":"2025-07-01","period_end":"2025-07-31"}`
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payrolls/calculate", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decode(t, w)
		assert.True(t, env.Ok)
		var data payroll.CalculateResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, 2, data.Created)
	})

	t.Run("missing project id", func(t *testing.T) {
		r := setupRouter()
		r.POST("/payrolls/calculate", withIdentity(orgID, userID), payroll.NewHandler(&fakePayrollService{}).Calculate)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payrolls/calculate", strings.NewReader(`{"period_start":"2025-07-01","period_end":"2025-07-31"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decode(t, w).Error.Code)
	})

	t.Run("run in progress", func(t *testing.T) {
		svc := &fakePayrollService{
			CalculateFn: func(context.Context, string, string, payroll.CalculateRequest) (payroll.CalculateResponse, error) {
				return payroll.CalculateResponse{}, payrollerrors.ErrCalculationInProgress
			},
		}
		r := setupRouter()
		r.POST("/payrolls/calculate", withIdentity(orgID, userID), payroll.NewHandler(svc).Calculate)

		body := `{"project_id":"` + projectID + `","period_start":"2025-07-01","period_end":"2025-07-31"}`
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payrolls/calculate", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", decode(t, w).Error.Code)
	})
}

func TestPayrollHandler_GetAll_Paginates(t *testing.T) {
	svc := &fakePayrollService{
		GetAllFn: func(_ context.Context, _ string, scope payroll.ReadScope, filter payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error) {
			assert.Equal(t, payroll.ReadScope{}, scope)
			assert.Equal(t, payroll.StatusPending, filter.Status)
			return []payroll.PayrollResponse{{ID: "1"}, {ID: "2"}, {ID: "3"}}, nil
		},
	}
	r := setupRouter()
	r.GET("/payrolls", withIdentity(uuid.NewString(), uuid.NewString()), payroll.NewHandler(svc).GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payrolls?status=pending&page=2&page_size=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var data []payroll.PayrollResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	require.Len(t, data, 1)
	assert.Equal(t, "3", data[0].ID)
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	t.Run("streams pdf", func(t *testing.T) {
		svc := &fakePayrollService{
			OpenPayslipFn: func(context.Context, string, payroll.ReadScope, string) (io.ReadCloser, string, error) {
				return io.NopCloser(strings.NewReader("%PDF-1.3")), "PAY-000001.pdf", nil
			},
		}
		r := setupRouter()
		r.GET("/payrolls/:id/payslip", withIdentity(uuid.NewString(), uuid.NewString()), payroll.NewHandler(svc).DownloadPayslip)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payrolls/"+uuid.NewString()+"/payslip", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "PAY-000001.pdf")
		assert.Equal(t, "%PDF-1.3", w.Body.String())
	})

	t.Run("not generated", func(t *testing.T) {
		svc := &fakePayrollService{
			OpenPayslipFn: func(context.Context, string, payroll.ReadScope, string) (io.ReadCloser, string, error) {
				return nil, "", payrollerrors.ErrPayslipNotGenerated
			},
		}
		r := setupRouter()
		r.GET("/payrolls/:id/payslip", withIdentity(uuid.NewString(), uuid.NewString()), payroll.NewHandler(svc).DownloadPayslip)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payrolls/"+uuid.NewString()+"/payslip", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPayrollHandler_EmployeeReadsOwnRecords(t *testing.T) {
	orgID := uuid.NewString()
	employeeID := uuid.NewString()
	own := payroll.ReadScope{EmployeeID: employeeID}

	t.Run("list is narrowed to the caller", func(t *testing.T) {
		svc := &fakePayrollService{
			GetAllFn: func(_ context.Context, _ string, scope payroll.ReadScope, _ payroll.GetPayrollsFilterRequest) ([]payroll.PayrollResponse, error) {
				assert.Equal(t, own, scope)
				return []payroll.PayrollResponse{{ID: "1", EmployeeID: employeeID}}, nil
			},
		}
		r := setupRouter()
		r.GET("/payrolls", withRole(orgID, employeeID, middleware.RoleEmployee), payroll.NewHandler(svc).GetAll)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payrolls?employee_id="+uuid.NewString(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("coworker record is not found", func(t *testing.T) {
		svc := &fakePayrollService{
			GetByIDFn: func(_ context.Context, _ string, scope payroll.ReadScope, _ string) (payroll.PayrollResponse, error) {
				assert.Equal(t, own, scope)
				return payroll.PayrollResponse{}, payrollerrors.ErrPayrollNotFound
			},
			GetBreakdownFn: func(_ context.Context, _ string, scope payroll.ReadScope, _ string) (payroll.PayrollBreakdownResponse, error) {
				assert.Equal(t, own, scope)
				return payroll.PayrollBreakdownResponse{}, payrollerrors.ErrPayrollNotFound
			},
			OpenPayslipFn: func(_ context.Context, _ string, scope payroll.ReadScope, _ string) (io.ReadCloser, string, error) {
				assert.Equal(t, own, scope)
				return nil, "", payrollerrors.ErrPayrollNotFound
			},
		}
		h := payroll.NewHandler(svc)
		r := setupRouter()
		identity := withRole(orgID, employeeID, middleware.RoleEmployee)
		r.GET("/payrolls/:id", identity, h.GetByID)
		r.GET("/payrolls/:id/breakdown", identity, h.GetBreakdown)
		r.GET("/payrolls/:id/payslip", identity, h.DownloadPayslip)

		id := uuid.NewString()
		for _, path := range []string{"/payrolls/" + id, "/payrolls/" + id + "/breakdown", "/payrolls/" + id + "/payslip"} {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusNotFound, w.Code, path)
		}
	})

	t.Run("admin reads the whole organization", func(t *testing.T) {
		svc := &fakePayrollService{
			GetByIDFn: func(_ context.Context, _ string, scope payroll.ReadScope, id string) (payroll.PayrollResponse, error) {
				assert.Equal(t, payroll.ReadScope{}, scope)
				return payroll.PayrollResponse{ID: id}, nil
			},
		}
		r := setupRouter()
		r.GET("/payrolls/:id", withRole(orgID, uuid.NewString(), middleware.RoleAdmin), payroll.NewHandler(svc).GetByID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payrolls/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
