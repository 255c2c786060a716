package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/dashboard"
)

// fakeAuth faz o papel do AuthMiddleware nos testes.
func fakeAuth(userID, barbershopID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextBarbershopID, barbershopID)
		c.Next()
	}
}

func newOwnerEnv(t *testing.T) *bookingEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepository()
	shop := repository.SeedDemo(repo)
	staff, _ := repo.ListStaff(t.Context(), shop.ID)
	services, _ := repo.ListServices(t.Context(), shop.ID)

	h := NewAppointmentHandler(
		appointment.NewCreateAppointment(repo, nil),
		appointment.NewListAppointments(repo),
		appointment.NewChangeStatus(repo, nil),
	)
	dash := NewDashboardHandler(dashboard.New(repo))

	r := gin.New()
	me := r.Group("/api/me", fakeAuth(1, shop.ID))
	me.POST("/appointments", h.Create)
	me.GET("/appointments", h.ListByDate)
	me.GET("/appointments/month", h.ListByMonth)
	me.PATCH("/appointments/:id/cancel", h.Cancel)
	me.PATCH("/appointments/:id/complete", h.Complete)
	me.PATCH("/appointments/:id/status", h.UpdateStatus)
	me.GET("/dashboard/stats", dash.Stats)
	me.GET("/dashboard/customers", dash.Customers)

	return &bookingEnv{router: r, shop: shop, staff: staff, service: services}
}

func (e *bookingEnv) ownerCreate(t *testing.T, at string) models.Appointment {
	t.Helper()

	rw := e.do(http.MethodPost, "/api/me/appointments", gin.H{
		"client_name":  "Pedro",
		"client_phone": "11987654321",
		"service_id":   e.service[0].ID,
		"staff_id":     e.staff[1].ID,
		"date":         bookingDay,
		"time":         at,
	})
	if rw.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rw.Code, rw.Body.String())
	}
	return decode[models.Appointment](t, rw)
}

func TestAppointmentHandler_CreateAndList(t *testing.T) {
	env := newOwnerEnv(t)

	ap := env.ownerCreate(t, "14:00")
	if ap.Status != "scheduled" || ap.Client.Phone != "+5511987654321" {
		t.Fatalf("unexpected appointment %+v", ap)
	}

	rw := env.do(http.MethodGet, "/api/me/appointments?date="+bookingDay, nil)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rw.Code, rw.Body.String())
	}
	list := decode[httpresp.ListResponse[dto.AppointmentListDTO]](t, rw)
	if list.Total != 1 || list.Data[0].ClientName != "Pedro" {
		t.Fatalf("unexpected list %+v", list)
	}

	// filtro por outro profissional
	rw = env.do(http.MethodGet, "/api/me/appointments?date="+bookingDay+"&staff_id="+itoa(env.staff[0].ID), nil)
	if decode[httpresp.ListResponse[dto.AppointmentListDTO]](t, rw).Total != 0 {
		t.Fatalf("expected empty list for other staff, got %s", rw.Body.String())
	}

	rw = env.do(http.MethodGet, "/api/me/appointments/month?year=2030&month=1", nil)
	if decode[httpresp.ListResponse[dto.AppointmentListDTO]](t, rw).Total != 1 {
		t.Fatalf("expected 1 appointment in month, got %s", rw.Body.String())
	}
}

func TestAppointmentHandler_BadQueries(t *testing.T) {
	env := newOwnerEnv(t)

	paths := []string{
		"/api/me/appointments",
		"/api/me/appointments?date=" + bookingDay + "&staff_id=abc",
		"/api/me/appointments?date=10/01/2030",
		"/api/me/appointments/month?year=2030&month=13",
		"/api/me/appointments/month?year=x&month=1",
	}

	for _, p := range paths {
		if rw := env.do(http.MethodGet, p, nil); rw.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", p, rw.Code)
		}
	}
}

func TestAppointmentHandler_StatusLifecycle(t *testing.T) {
	env := newOwnerEnv(t)

	ap := env.ownerCreate(t, "15:00")
	base := "/api/me/appointments/" + strconv.FormatUint(uint64(ap.ID), 10)

	rw := env.do(http.MethodPatch, base+"/status", gin.H{"status": "confirmed"})
	if rw.Code != http.StatusOK || decode[models.Appointment](t, rw).Status != "confirmed" {
		t.Fatalf("confirm failed: %d %s", rw.Code, rw.Body.String())
	}

	rw = env.do(http.MethodPatch, base+"/complete", nil)
	if rw.Code != http.StatusOK {
		t.Fatalf("complete failed: %d %s", rw.Code, rw.Body.String())
	}

	rw = env.do(http.MethodPatch, base+"/cancel", nil)
	if rw.Code != http.StatusBadRequest || decode[map[string]string](t, rw)["error"] != "invalid_state" {
		t.Fatalf("expected invalid_state, got %d %s", rw.Code, rw.Body.String())
	}

	rw = env.do(http.MethodPatch, "/api/me/appointments/9999/cancel", nil)
	if rw.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rw.Code)
	}

	rw = env.do(http.MethodPatch, "/api/me/appointments/abc/cancel", nil)
	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rw.Code)
	}

	rw = env.do(http.MethodGet, "/api/me/dashboard/stats", nil)
	stats := decode[dashboard.Stats](t, rw)
	if stats.TotalAppointments != 1 || stats.CompletedAppointments != 1 || stats.TotalRevenue != env.service[0].Price {
		t.Fatalf("unexpected stats %+v", stats)
	}

	rw = env.do(http.MethodGet, "/api/me/dashboard/customers", nil)
	customers := decode[httpresp.ListResponse[dashboard.Customer]](t, rw)
	if customers.Total != 1 || customers.Data[0].TotalAppointments != 1 {
		t.Fatalf("unexpected customers %s", rw.Body.String())
	}
}
