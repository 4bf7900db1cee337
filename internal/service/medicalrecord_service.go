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

type MedicalRecordService struct {
	repo        mr.Repository
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
	auditSvc    *AuditService
	metrics     *metrics.Collector
	log         *zap.Logger
}

func NewMedicalRecordService(repo mr.Repository, patientRepo patient.Repository, doctorRepo doctor.Repository, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *MedicalRecordService {
	return &MedicalRecordService{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		auditSvc:    auditSvc,
		metrics:     collector,
		log:         log,
	}
}

func (s *MedicalRecordService) CreateRecord(ctx context.Context, cmd *mr.CreateRecordCommand, caller Caller) (*mr.MedicalRecord, error) {
	if err := validateRecordFields(cmd.AMKA, cmd.Disease, cmd.MedicalHistory, cmd.Medications); err != nil {
		return nil, err
	}

	if _, err := s.patientRepo.GetByID(ctx, cmd.PatientID); err != nil {
		return nil, err
	}
	ok, err := s.doctorRepo.Exists(ctx, cmd.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}

	// One record per patient.
	exists, err := s.repo.ExistsForPatient(ctx, cmd.PatientID, nil)
	if err != nil {
		return nil, fmt.Errorf("checking record uniqueness: %w", err)
	}
	if exists {
		return nil, mr.ErrRecordAlreadyExists
	}

	r := &mr.MedicalRecord{
		PatientID:      cmd.PatientID,
		DoctorID:       cmd.DoctorID,
		AMKA:           strings.TrimSpace(cmd.AMKA),
		Disease:        strings.TrimSpace(cmd.Disease),
		MedicalHistory: cmd.MedicalHistory,
		Medications:    strings.TrimSpace(cmd.Medications),
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "create",
		ResourceType: "medical_record",
		ResourceID:   r.ID.String(),
		IPAddress:    caller.IP,
	})

	s.log.Info("medical record created",
		zap.String("record_id", r.ID.String()),
		zap.String("patient_id", r.PatientID.String()))
	return r, nil
}

func (s *MedicalRecordService) GetRecord(ctx context.Context, id uuid.UUID) (*mr.MedicalRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MedicalRecordService) ListRecords(ctx context.Context) ([]*mr.MedicalRecord, error) {
	return s.repo.List(ctx)
}

func (s *MedicalRecordService) UpdateRecord(ctx context.Context, cmd *mr.UpdateRecordCommand, caller Caller) error {
	if err := validateRecordFields(cmd.AMKA, cmd.Disease, cmd.MedicalHistory, cmd.Medications); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(ctx, cmd.ID); err != nil {
		return err
	}
	if _, err := s.patientRepo.GetByID(ctx, cmd.PatientID); err != nil {
		return err
	}
	ok, err := s.doctorRepo.Exists(ctx, cmd.DoctorID)
	if err != nil {
		return fmt.Errorf("verifying doctor: %w", err)
	}
	if !ok {
		return doctor.ErrDoctorNotFound
	}

	taken, err := s.repo.ExistsForPatient(ctx, cmd.PatientID, &cmd.ID)
	if err != nil {
		return fmt.Errorf("checking record uniqueness: %w", err)
	}
	if taken {
		return mr.ErrRecordAlreadyExists
	}

	now := time.Now().UTC()
	updated := &mr.MedicalRecord{
		ID:             cmd.ID,
		PatientID:      cmd.PatientID,
		DoctorID:       cmd.DoctorID,
		AMKA:           strings.TrimSpace(cmd.AMKA),
		Disease:        strings.TrimSpace(cmd.Disease),
		MedicalHistory: cmd.MedicalHistory,
		Medications:    strings.TrimSpace(cmd.Medications),
		UpdatedAt:      &now,
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "update",
		ResourceType: "medical_record",
		ResourceID:   cmd.ID.String(),
		IPAddress:    caller.IP,
	})
	return nil
}

func (s *MedicalRecordService) DeleteRecord(ctx context.Context, id uuid.UUID, caller Caller) error {
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
		ResourceType: "medical_record",
		ResourceID:   id.String(),
		IPAddress:    caller.IP,
	})
	return nil
}

func validateRecordFields(amka, disease string, history *string, medications string) error {
	var errs []string

	if !validAMKA(amka) {
		errs = append(errs, "amka must be exactly 11 digits")
	}
	errs = requireField(errs, disease, "disease", 100)
	if history != nil && len(*history) > 500 {
		errs = append(errs, "medicalHistory must be at most 500 characters")
	}
	errs = requireField(errs, medications, "medications", 200)

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
