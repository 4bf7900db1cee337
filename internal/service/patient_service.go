package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthcrm/healthcrm-api/internal/domain/doctor"
	mr "github.com/healthcrm/healthcrm-api/internal/domain/medicalrecord"
	"github.com/healthcrm/healthcrm-api/internal/domain/patient"
	"github.com/healthcrm/healthcrm-api/pkg/metrics"
)

type PatientService struct {
	repo       patient.Repository
	doctorRepo doctor.Repository
	recordRepo mr.Repository
	auditSvc   *AuditService
	metrics    *metrics.Collector
	log        *zap.Logger
}

func NewPatientService(repo patient.Repository, doctorRepo doctor.Repository, recordRepo mr.Repository, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *PatientService {
	return &PatientService{
		repo:       repo,
		doctorRepo: doctorRepo,
		recordRepo: recordRepo,
		auditSvc:   auditSvc,
		metrics:    collector,
		log:        log,
	}
}

func (s *PatientService) CreatePatient(ctx context.Context, cmd *patient.CreatePatientCommand, caller Caller) (*patient.Patient, error) {
	if err := validatePatientFields(cmd.AMKA, cmd.FullName, cmd.Email, cmd.PhoneNumber, cmd.Address, cmd.City); err != nil {
		return nil, err
	}

	// The assigned doctor must exist.
	ok, err := s.doctorRepo.Exists(ctx, cmd.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}
	if !ok {
		return nil, patient.ErrDoctorRequired
	}

	exists, err := s.repo.ExistsByAMKA(ctx, cmd.AMKA, nil)
	if err != nil {
		return nil, fmt.Errorf("checking AMKA uniqueness: %w", err)
	}
	if exists {
		return nil, patient.ErrPatientAlreadyExists
	}

	p := &patient.Patient{
		DoctorID:    cmd.DoctorID,
		AMKA:        strings.TrimSpace(cmd.AMKA),
		FullName:    strings.TrimSpace(cmd.FullName),
		Email:       normalizeEmail(cmd.Email),
		PhoneNumber: strings.TrimSpace(cmd.PhoneNumber),
		Address:     cmd.Address,
		City:        cmd.City,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PatientsCreatedTotal.Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "create",
		ResourceType: "patient",
		ResourceID:   p.ID.String(),
		IPAddress:    caller.IP,
	})

	s.log.Info("patient created", zap.String("patient_id", p.ID.String()))
	return p, nil
}

func (s *PatientService) GetPatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) ListPatients(ctx context.Context) ([]*patient.Patient, error) {
	return s.repo.List(ctx)
}

func (s *PatientService) UpdatePatient(ctx context.Context, cmd *patient.UpdatePatientCommand, caller Caller) error {
	if err := validatePatientFields(cmd.AMKA, cmd.FullName, cmd.Email, cmd.PhoneNumber, cmd.Address, cmd.City); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(ctx, cmd.ID); err != nil {
		return err
	}

	ok, err := s.doctorRepo.Exists(ctx, cmd.DoctorID)
	if err != nil {
		return fmt.Errorf("verifying doctor: %w", err)
	}
	if !ok {
		return patient.ErrDoctorRequired
	}

	if cmd.MedicalRecordID != nil {
		ok, err := s.recordRepo.Exists(ctx, *cmd.MedicalRecordID)
		if err != nil {
			return fmt.Errorf("verifying medical record: %w", err)
		}
		if !ok {
			return mr.ErrRecordNotFound
		}
	}

	taken, err := s.repo.ExistsByAMKA(ctx, cmd.AMKA, &cmd.ID)
	if err != nil {
		return fmt.Errorf("checking AMKA uniqueness: %w", err)
	}
	if taken {
		return patient.ErrPatientAlreadyExists
	}

	now := time.Now().UTC()
	updated := &patient.Patient{
		ID:              cmd.ID,
		DoctorID:        cmd.DoctorID,
		MedicalRecordID: cmd.MedicalRecordID,
		AMKA:            strings.TrimSpace(cmd.AMKA),
		FullName:        strings.TrimSpace(cmd.FullName),
		Email:           normalizeEmail(cmd.Email),
		PhoneNumber:     strings.TrimSpace(cmd.PhoneNumber),
		Address:         cmd.Address,
		City:            cmd.City,
		UpdatedAt:       &now,
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "update",
		ResourceType: "patient",
		ResourceID:   cmd.ID.String(),
		IPAddress:    caller.IP,
	})
	return nil
}

// DeletePatient removes the patient unless a medical record still references
// it; records are delete-restricted, not cascaded.
func (s *PatientService) DeletePatient(ctx context.Context, id uuid.UUID, caller Caller) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	hasRecord, err := s.repo.HasMedicalRecord(ctx, id)
	if err != nil {
		return fmt.Errorf("checking medical record: %w", err)
	}
	if hasRecord {
		return patient.ErrPatientReferenced
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "delete",
		ResourceType: "patient",
		ResourceID:   id.String(),
		IPAddress:    caller.IP,
	})
	return nil
}

func validatePatientFields(amka, fullName string, email *string, phone, address, city string) error {
	var errs []string

	if !validAMKA(amka) {
		errs = append(errs, "amka must be exactly 11 digits")
	}
	errs = requireField(errs, fullName, "fullName", 50)
	if email != nil && *email != "" && !validEmail(*email) {
		errs = append(errs, "email format is invalid")
	}
	if !validPhone(phone) {
		errs = append(errs, "phoneNumber format is invalid")
	}
	errs = requireField(errs, address, "address", 100)
	errs = requireField(errs, city, "city", 50)

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}
	return &e
}
