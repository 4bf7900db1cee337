package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthcrm/healthcrm-api/internal/domain/appointment"
	"github.com/healthcrm/healthcrm-api/internal/domain/doctor"
	"github.com/healthcrm/healthcrm-api/internal/domain/examination"
	mr "github.com/healthcrm/healthcrm-api/internal/domain/medicalrecord"
	"github.com/healthcrm/healthcrm-api/internal/domain/patient"
	"github.com/healthcrm/healthcrm-api/pkg/metrics"
)

type AppointmentService struct {
	repo            appointment.Repository
	examinationRepo examination.Repository
	patientRepo     patient.Repository
	doctorRepo      doctor.Repository
	recordRepo      mr.Repository
	auditSvc        *AuditService
	metrics         *metrics.Collector
	log             *zap.Logger

	// now is swapped in tests to pin the clock.
	now func() time.Time
}

func NewAppointmentService(repo appointment.Repository, examinationRepo examination.Repository, patientRepo patient.Repository, doctorRepo doctor.Repository, recordRepo mr.Repository, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *AppointmentService {
	return &AppointmentService{
		repo:            repo,
		examinationRepo: examinationRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		recordRepo:      recordRepo,
		auditSvc:        auditSvc,
		metrics:         collector,
		log:             log,
		now:             time.Now,
	}
}

func (s *AppointmentService) CreateAppointment(ctx context.Context, cmd *appointment.CreateAppointmentCommand, caller Caller) (*appointment.Appointment, error) {
	if err := validateAppointmentFields(cmd.FullName, cmd.PhoneNumber, cmd.Email, cmd.Notes, cmd.ExamType, cmd.Status); err != nil {
		return nil, err
	}
	if cmd.TotalPrice != nil && *cmd.TotalPrice < 0 {
		return nil, appointment.ErrNegativeTotalPrice
	}
	// The past-date check runs on the requested time; rounding happens after.
	if cmd.AppointmentDate.Before(s.now()) {
		return nil, appointment.ErrDateInPast
	}
	if err := s.verifyLinks(ctx, cmd.PatientID, cmd.DoctorID, cmd.MedicalRecordID, cmd.ExaminationID, nil); err != nil {
		return nil, err
	}

	a := &appointment.Appointment{
		FullName:         cmd.FullName,
		PhoneNumber:      cmd.PhoneNumber,
		Email:            normalizeEmail(cmd.Email),
		AppointmentDate:  appointment.RoundToHalfHour(cmd.AppointmentDate),
		ExamType:         cmd.ExamType,
		Status:           cmd.Status,
		Notes:            cmd.Notes,
		PatientID:        cmd.PatientID,
		DoctorID:         cmd.DoctorID,
		MedicalRecordID:  cmd.MedicalRecordID,
		ExaminationID:    cmd.ExaminationID,
		PrescriptionCode: cmd.PrescriptionCode,
		TotalPrice:       cmd.TotalPrice,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AppointmentsTotal.WithLabelValues(a.Status.String()).Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "create",
		ResourceType: "appointment",
		ResourceID:   strconv.FormatInt(a.ID, 10),
		IPAddress:    caller.IP,
	})

	s.log.Info("appointment created",
		zap.Int64("appointment_id", a.ID),
		zap.Time("appointment_date", a.AppointmentDate))
	return a, nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id int64) (*appointment.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) ListAppointments(ctx context.Context) ([]*appointment.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *AppointmentService) UpdateAppointment(ctx context.Context, cmd *appointment.UpdateAppointmentCommand, caller Caller) error {
	if err := validateAppointmentFields(cmd.FullName, cmd.PhoneNumber, cmd.Email, cmd.Notes, cmd.ExamType, cmd.Status); err != nil {
		return err
	}
	if cmd.TotalPrice != nil && *cmd.TotalPrice < 0 {
		return appointment.ErrNegativeTotalPrice
	}

	existing, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	// Only a rescheduled date must lie in the future; keeping the stored
	// date on a past appointment stays legal.
	if !cmd.AppointmentDate.Equal(existing.AppointmentDate) && cmd.AppointmentDate.Before(s.now()) {
		return appointment.ErrDateInPast
	}

	if err := s.verifyLinks(ctx, cmd.PatientID, cmd.DoctorID, cmd.MedicalRecordID, cmd.ExaminationID, &cmd.ID); err != nil {
		return err
	}

	now := s.now().UTC()
	updated := &appointment.Appointment{
		ID:               cmd.ID,
		FullName:         cmd.FullName,
		PhoneNumber:      cmd.PhoneNumber,
		Email:            normalizeEmail(cmd.Email),
		AppointmentDate:  appointment.RoundToHalfHour(cmd.AppointmentDate),
		ExamType:         cmd.ExamType,
		Status:           cmd.Status,
		Notes:            cmd.Notes,
		PatientID:        cmd.PatientID,
		DoctorID:         cmd.DoctorID,
		MedicalRecordID:  cmd.MedicalRecordID,
		ExaminationID:    cmd.ExaminationID,
		PrescriptionCode: cmd.PrescriptionCode,
		TotalPrice:       cmd.TotalPrice,
		UpdatedAt:        &now,
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   strconv.FormatInt(cmd.ID, 10),
		IPAddress:    caller.IP,
	})
	return nil
}

// DeleteAppointment removes the appointment along with its linked
// examination, if one exists.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id int64, caller Caller) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "delete",
		ResourceType: "appointment",
		ResourceID:   strconv.FormatInt(id, 10),
		IPAddress:    caller.IP,
	})
	return nil
}

func (s *AppointmentService) verifyLinks(ctx context.Context, patientID, doctorID, recordID *uuid.UUID, examinationID, excludeID *int64) error {
	if patientID != nil {
		ok, err := s.patientRepo.Exists(ctx, *patientID)
		if err != nil {
			return fmt.Errorf("verifying patient: %w", err)
		}
		if !ok {
			return patient.ErrPatientNotFound
		}
	}
	if doctorID != nil {
		ok, err := s.doctorRepo.Exists(ctx, *doctorID)
		if err != nil {
			return fmt.Errorf("verifying doctor: %w", err)
		}
		if !ok {
			return doctor.ErrDoctorNotFound
		}
	}
	if recordID != nil {
		ok, err := s.recordRepo.Exists(ctx, *recordID)
		if err != nil {
			return fmt.Errorf("verifying medical record: %w", err)
		}
		if !ok {
			return mr.ErrRecordNotFound
		}
	}
	if examinationID != nil {
		ok, err := s.examinationRepo.Exists(ctx, *examinationID)
		if err != nil {
			return fmt.Errorf("verifying examination: %w", err)
		}
		if !ok {
			return examination.ErrExaminationNotFound
		}
		linked, err := s.repo.ExaminationLinked(ctx, *examinationID, excludeID)
		if err != nil {
			return fmt.Errorf("checking examination link: %w", err)
		}
		if linked {
			return appointment.ErrExaminationLinked
		}
	}
	return nil
}

func validateAppointmentFields(fullName, phone string, email *string, notes string, examType examination.ExamType, status examination.ExamStatus) error {
	var errs []string

	errs = requireField(errs, fullName, "fullName", 50)
	if !validPhone(phone) {
		errs = append(errs, "phoneNumber format is invalid")
	}
	if email != nil && *email != "" && !validEmail(*email) {
		errs = append(errs, "email format is invalid")
	}
	if len(notes) > 500 {
		errs = append(errs, "notes must be at most 500 characters")
	}
	if !examType.IsValid() {
		errs = append(errs, "examType is not a recognized examination type")
	}
	if !status.IsValid() {
		errs = append(errs, "status is not a recognized examination status")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
