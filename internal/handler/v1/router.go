package v1

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/healthcrm/healthcrm-api/internal/config"
	"github.com/healthcrm/healthcrm-api/internal/domain"
	"github.com/healthcrm/healthcrm-api/internal/service"
	"github.com/healthcrm/healthcrm-api/pkg/auth"
	"github.com/healthcrm/healthcrm-api/pkg/metrics"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth          *service.AuthService
	Doctor        *service.DoctorService
	Patient       *service.PatientService
	MedicalRecord *service.MedicalRecordService
	Examination   *service.ExaminationService
	Appointment   *service.AppointmentService
}

func NewRouter(cfg *config.Config, svcs Services, tokens *auth.JWTManager, collector *metrics.Collector, log *zap.Logger) *gin.Engine {
	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(Instrument(collector))
	r.Use(RateLimit(cfg.RateLimit))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: true,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	authHandler := NewAuthHandler(svcs.Auth, cfg.JWT, !cfg.App.IsDevelopment())
	doctorHandler := NewDoctorHandler(svcs.Doctor)
	patientHandler := NewPatientHandler(svcs.Patient)
	recordHandler := NewMedicalRecordHandler(svcs.MedicalRecord)
	examHandler := NewExaminationHandler(svcs.Examination)
	appointmentHandler := NewAppointmentHandler(svcs.Appointment)

	authed := AuthRequired(tokens, cfg.JWT.CookieName)
	api := r.Group("/api")

	ar := api.Group("/auth")
	{
		ar.POST("/register", AuthRateLimit(cfg.RateLimit), authHandler.Register)
		ar.POST("/login", AuthRateLimit(cfg.RateLimit), authHandler.Login)
		ar.POST("/logout", authHandler.Logout)
		ar.GET("/check-auth", authed, authHandler.Check)
		ar.GET("/user", authed, authHandler.CurrentUser)
		ar.POST("/change-password", authed, authHandler.ChangePassword)

		admin := ar.Group("", authed, RequireRoles(domain.RoleAdmin))
		{
			admin.GET("/all-users", authHandler.ListUsers)
			admin.PUT("/change-role/:id", authHandler.ChangeRole)
			admin.DELETE("/delete-user/:id", authHandler.DeleteUser)
		}
	}

	dr := api.Group("/doctor", authed)
	{
		dr.POST("", RequireRoles(domain.RoleAdmin, domain.RoleManager), doctorHandler.Create)
		dr.GET("", RequireRoles(domain.RoleAdmin, domain.RoleManager, domain.RoleStaff), doctorHandler.List)
		dr.GET("/:id", RequireRoles(domain.RoleAdmin, domain.RoleManager, domain.RoleDoctor, domain.RoleStaff), doctorHandler.Get)
		dr.PUT("/:id", RequireRoles(domain.RoleAdmin, domain.RoleManager), doctorHandler.Update)
		dr.DELETE("/:id", RequireRoles(domain.RoleAdmin, domain.RoleManager), doctorHandler.Delete)
	}

	pr := api.Group("/patient", authed)
	{
		pr.POST("", RequireRoles(domain.RoleAdmin, domain.RoleManager, domain.RoleDoctor), patientHandler.Create)
		pr.GET("", RequireRoles(domain.RoleAdmin, domain.RoleManager, domain.RoleDoctor, domain.RoleStaff), patientHandler.List)
		pr.GET("/:id", RequireRoles(domain.RoleAdmin, domain.RoleManager, domain.RoleDoctor, domain.RoleStaff), patientHandler.Get)
		pr.PUT("/:id", RequireRoles(domain.RoleAdmin, domain.RoleManager, domain.RoleDoctor), patientHandler.Update)
		pr.DELETE("/:id", RequireRoles(domain.RoleAdmin, domain.RoleManager), patientHandler.Delete)
	}

	mrr := api.Group("/medicalrecord", authed)
	{
		mrr.POST("", RequireRoles(domain.RoleAdmin, domain.RoleDoctor), recordHandler.Create)
		mrr.GET("", RequireRoles(domain.RoleAdmin, domain.RoleManager, domain.RoleDoctor, domain.RoleStaff), recordHandler.List)
		mrr.GET("/:id", RequireRoles(domain.RoleAdmin, domain.RoleManager, domain.RoleDoctor, domain.RoleStaff), recordHandler.Get)
		mrr.PUT("/:id", RequireRoles(domain.RoleAdmin, domain.RoleDoctor), recordHandler.Update)
		mrr.DELETE("/:id", RequireRoles(domain.RoleAdmin), recordHandler.Delete)
	}

	staff := RequireRoles(domain.RoleAdmin, domain.RoleManager, domain.RoleStaff)

	er := api.Group("/examination")
	{
		// Enum lookups feed public-facing booking forms.
		er.GET("/exam-types", examHandler.ExamTypes)
		er.GET("/exam-statuses", examHandler.ExamStatuses)

		er.POST("", authed, staff, examHandler.Create)
		er.GET("", authed, staff, examHandler.List)
		er.GET("/:id", authed, staff, examHandler.Get)
		er.PUT("/:id", authed, staff, examHandler.Update)
		er.DELETE("/:id", authed, RequireRoles(domain.RoleAdmin), examHandler.Delete)
		er.GET("/:id/download-pdf", authed, staff, examHandler.DownloadResult)
	}

	apr := api.Group("/appointment")
	{
		apr.GET("/exam-types", examHandler.ExamTypes)
		apr.GET("/exam-statuses", examHandler.ExamStatuses)

		apr.POST("", authed, staff, appointmentHandler.Create)
		apr.GET("", authed, staff, appointmentHandler.List)
		apr.GET("/:id", authed, staff, appointmentHandler.Get)
		apr.PUT("/:id", authed, staff, appointmentHandler.Update)
		apr.DELETE("/:id", authed, RequireRoles(domain.RoleAdmin), appointmentHandler.Delete)
	}

	return r
}
