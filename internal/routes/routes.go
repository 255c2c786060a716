package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/dashboard"
	"github.com/BruksfildServices01/barber-booking/internal/verification"
)

// Deps reúne a infraestrutura montada no main.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger

	// DB nil (modo memória) desliga o painel do dono.
	DB   *gorm.DB
	Repo domain.Repository

	Audit       *audit.Dispatcher
	Limiter     middleware.Limiter
	Idempotency middleware.IdempotencyStore
	Uploader    storage.Uploader

	Verification *verification.Service
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(d.Repo)
	createAppointmentUC := ucAppointment.NewCreateAppointment(d.Repo, d.Audit)
	getByTokenUC := ucAppointment.NewGetByToken(d.Repo)
	cancelByTokenUC := ucAppointment.NewCancelByToken(d.Repo, d.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(d.Repo)
	changeStatusUC := ucAppointment.NewChangeStatus(d.Repo, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		availabilityUC,
		createAppointmentUC,
		getByTokenUC,
		cancelByTokenUC,
	)
	publicHandler := handlers.NewPublicHandler(d.Repo)

	rateLimit := middleware.RateLimit(d.Limiter, true)
	idempotent := middleware.Idempotency(d.Idempotency)

	api := r.Group("/api")

	// ------------------------------
	// 🌐 BOOKING (cliente final)
	// ------------------------------
	booking := api.Group("/booking", rateLimit)
	{
		booking.GET("/availability", bookingHandler.Availability)
		booking.POST("/create", idempotent, bookingHandler.Create)
		booking.GET("/appointments/:token", bookingHandler.GetByToken)
		booking.POST("/appointments/:token/cancel", bookingHandler.CancelByToken)
	}

	if d.Verification != nil {
		verificationHandler := handlers.NewVerificationHandler(d.Verification)

		booking.POST("/verification/send", verificationHandler.Send)
		booking.POST("/verification/verify", verificationHandler.Verify)
		booking.POST("/validation", verificationHandler.ValidateField)
		booking.PUT("/validation", verificationHandler.ValidateCustomer)
	}

	api.GET("/public/:slug", rateLimit, publicHandler.GetBarbershop)

	if d.DB == nil {
		d.Log.Warn("no database configured, owner API disabled")
		return
	}

	authHandler := handlers.NewAuthHandler(d.DB, d.Config.JWTSecret)
	meHandler := handlers.NewMeHandler(d.DB)
	barbershopHandler := handlers.NewBarbershopHandler(d.DB, d.Uploader)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	staffHandler := handlers.NewStaffHandler(d.DB)
	clientHandler := handlers.NewClientHandler(d.DB)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	dashboardHandler := handlers.NewDashboardHandler(dashboard.New(d.Repo))

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		listAppointmentsUC,
		changeStatusUC,
	)

	// ------------------------------
	// 🔐 AUTH
	// ------------------------------
	api.POST("/auth/register", rateLimit, authHandler.Register)
	api.POST("/auth/login", rateLimit, authHandler.Login)

	// ------------------------------
	// 🔐 API PRIVADA
	// ------------------------------
	secured := api.Group("/me")
	secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
	{
		secured.GET("", meHandler.GetMe)

		secured.GET("/barbershop", barbershopHandler.GetMeBarbershop)
		secured.PATCH("/barbershop", barbershopHandler.UpdateMeBarbershop)
		secured.POST("/barbershop/logo", barbershopHandler.UploadLogo)

		secured.GET("/services", serviceHandler.List)
		secured.POST("/services", serviceHandler.Create)
		secured.PATCH("/services/:id", serviceHandler.Update)
		secured.DELETE("/services/:id", serviceHandler.Delete)

		secured.GET("/staff", staffHandler.List)
		secured.POST("/staff", staffHandler.Create)
		secured.PATCH("/staff/:id", staffHandler.Update)

		secured.GET("/clients", clientHandler.List)
		secured.POST("/clients", clientHandler.Create)
		secured.DELETE("/clients/:id", clientHandler.Delete)

		secured.GET("/working-hours", workingHoursHandler.Get)
		secured.PUT("/working-hours", workingHoursHandler.Update)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.POST("/appointments", idempotent, appointmentHandler.Create)
		secured.GET("/appointments", appointmentHandler.ListByDate)
		secured.GET("/appointments/month", appointmentHandler.ListByMonth)
		secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

		secured.GET("/dashboard/stats", dashboardHandler.Stats)
		secured.GET("/dashboard/customers", dashboardHandler.Customers)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
