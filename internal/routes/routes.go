package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/audit"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/config"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/domain/availability"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/handlers"
	infraRepo "github.com/Artssj1234/reservaciones-alegres-sub000/internal/infra/repository"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/middleware"
	ucAppointment "github.com/Artssj1234/reservaciones-alegres-sub000/internal/usecase/appointment"
)

// Deps are the process-wide collaborators built by main.
type Deps struct {
	Log     zerolog.Logger
	Audit   *audit.Dispatcher
	Limiter middleware.Limiter
	// Clock reads business wall time; see timezone.Clock.
	Clock func() time.Time
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestLogger(deps.Log),
		gin.Recovery(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db, deps.Clock)

	resolver := availability.NewResolver(
		infraRepo.NewScheduleGormStore(db),
		infraRepo.NewExceptionGormStore(db, deps.Clock),
		availability.WithClock(deps.Clock),
		availability.WithHorizonMonths(cfg.Booking.HorizonMonths),
	)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		resolver,
		deps.Audit,
		deps.Log,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		deps.Audit,
		resolver.Now,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	// ======================================================
	// USE CASES: AVAILABILITY
	// ======================================================
	listDaysUC := ucAppointment.NewListAvailableDays(appointmentRepo, resolver)
	listSlotsUC := ucAppointment.NewListSlots(appointmentRepo, resolver)
	placeHoldUC := ucAppointment.NewPlaceHold(appointmentRepo, resolver, cfg.Booking.HoldTTL)
	releaseHoldUC := ucAppointment.NewReleaseHold(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, deps.Log)
	meHandler := handlers.NewMeHandler(db, deps.Log)
	businessHandler := handlers.NewBusinessHandler(db, deps.Audit, deps.Log)

	serviceHandler := handlers.NewServiceHandler(db, deps.Audit, deps.Log)
	clientHandler := handlers.NewClientHandler(db, deps.Log)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, deps.Audit, deps.Log)
	blockedHandler := handlers.NewBlockedIntervalHandler(db, deps.Audit, deps.Log)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		updateStatusUC,
		deps.Log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db, deps.Log)

	publicHandler := handlers.NewPublicHandler(
		db,
		appointmentRepo,
		listDaysUC,
		listSlotsUC,
		placeHoldUC,
		releaseHoldUC,
		createAppointmentUC,
		deps.Log,
	)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		if deps.Limiter != nil {
			publicAPI.Use(middleware.RateLimit(deps.Limiter, deps.Log))
		}
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/available-days", publicHandler.AvailableDays)
			publicAPI.GET("/:slug/slots", publicHandler.Slots)
			publicAPI.POST("/:slug/holds", publicHandler.PlaceHold)
			publicAPI.DELETE("/:slug/holds/:token", publicHandler.ReleaseHold)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/business", businessHandler.Get)
			secured.PATCH("/business", businessHandler.Update)

			secured.GET("/clients", clientHandler.List)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Deactivate)

			secured.GET("/working-hours", workingHoursHandler.Get)
			secured.PUT("/working-hours", workingHoursHandler.Update)

			secured.GET("/blocked-intervals", blockedHandler.List)
			secured.POST("/blocked-intervals", blockedHandler.Create)
			secured.DELETE("/blocked-intervals/:id", blockedHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
