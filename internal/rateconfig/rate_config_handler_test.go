package rateconfig_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/middleware"
	"go-payroll/internal/rateconfig"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRateConfigService struct {
	upserted *rateconfig.UpsertRateConfigRequest
}

func (f *fakeRateConfigService) Upsert(_ context.Context, _, employeeID string, req rateconfig.UpsertRateConfigRequest) (rateconfig.RateConfigResponse, error) {
	f.upserted = &req
	return rateconfig.RateConfigResponse{EmployeeID: employeeID, PaymentMode: req.PaymentMode}, nil
}

func (f *fakeRateConfigService) GetAll(context.Context, string) ([]rateconfig.RateConfigResponse, error) {
	return []rateconfig.RateConfigResponse{}, nil
}

func (f *fakeRateConfigService) GetByEmployee(_ context.Context, _, employeeID string) (rateconfig.RateConfigResponse, error) {
	return rateconfig.RateConfigResponse{EmployeeID: employeeID}, nil
}

func setupRouter(svc rateconfig.Service, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) {
		c.Set("organization_id", uuid.NewString())
		c.Set("user_id", uuid.NewString())
		c.Set("role", role)
		c.Next()
	}
	rateconfig.RegisterRoutes(r.Group("/api/v1"), rateconfig.NewHandler(svc), auth)
	return r
}

func TestRateConfigHandler_Upsert(t *testing.T) {
	employeeID := uuid.NewString()

	t.Run("valid body", func(t *testing.T) {
		svc := &fakeRateConfigService{}
		r := setupRouter(svc, middleware.RoleAdmin)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/rate-configs/"+employeeID, strings.NewReader(`{"payment_mode":"hourly","hourly_rate":20}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		if assert.NotNil(t, svc.upserted) {
			assert.Equal(t, 20.0, svc.upserted.HourlyRate)
		}
	})

	t.Run("unknown payment mode fails binding", func(t *testing.T) {
		svc := &fakeRateConfigService{}
		r := setupRouter(svc, middleware.RoleAdmin)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/rate-configs/"+employeeID, strings.NewReader(`{"payment_mode":"daily","hourly_rate":20}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, svc.upserted)
	})

	t.Run("employees cannot read rates", func(t *testing.T) {
		r := setupRouter(&fakeRateConfigService{}, middleware.RoleEmployee)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rate-configs", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
