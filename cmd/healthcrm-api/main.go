package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/healthcrm/healthcrm-api/internal/config"
	v1 "github.com/healthcrm/healthcrm-api/internal/handler/v1"
	"github.com/healthcrm/healthcrm-api/internal/repository"
	"github.com/healthcrm/healthcrm-api/internal/service"
	"github.com/healthcrm/healthcrm-api/pkg/auth"
	"github.com/healthcrm/healthcrm-api/pkg/database"
	"github.com/healthcrm/healthcrm-api/pkg/logger"
	"github.com/healthcrm/healthcrm-api/pkg/metrics"
	"github.com/healthcrm/healthcrm-api/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		return err
	}
	defer log.Sync()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		log.Error("tracer init failed", zap.Error(err))
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Error("database connection failed", zap.Error(err))
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		log.Error("database migration failed", zap.Error(err))
		return err
	}

	collector := metrics.NewCollector("healthcrm")
	tokens := auth.NewJWTManager(cfg.JWT)

	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	recordRepo := repository.NewMedicalRecordRepository(db)
	examRepo := repository.NewExaminationRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditSvc := service.NewAuditService(auditRepo, log, collector)
	defer auditSvc.Shutdown()

	svcs := v1.Services{
		Auth:          service.NewAuthService(userRepo, tokens, auditSvc, collector, log),
		Doctor:        service.NewDoctorService(doctorRepo, auditSvc, collector, log),
		Patient:       service.NewPatientService(patientRepo, doctorRepo, recordRepo, auditSvc, collector, log),
		MedicalRecord: service.NewMedicalRecordService(recordRepo, patientRepo, doctorRepo, auditSvc, collector, log),
		Examination:   service.NewExaminationService(examRepo, patientRepo, doctorRepo, auditSvc, collector, log),
		Appointment:   service.NewAppointmentService(appointmentRepo, examRepo, patientRepo, doctorRepo, recordRepo, auditSvc, collector, log),
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	if err := svcs.Auth.SeedAdmin(seedCtx, cfg.Admin); err != nil {
		seedCancel()
		log.Error("admin seeding failed", zap.Error(err))
		return err
	}
	seedCancel()

	router := v1.NewRouter(cfg, svcs, tokens, collector, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Environment),
			zap.String("version", cfg.App.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server failed", zap.Error(err))
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}
