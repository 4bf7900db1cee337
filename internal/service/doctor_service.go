package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthcrm/healthcrm-api/internal/domain/doctor"
	"github.com/healthcrm/healthcrm-api/pkg/metrics"
)

type DoctorService struct {
	repo     doctor.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewDoctorService(repo doctor.Repository, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *DoctorService {
	return &DoctorService{repo: repo, auditSvc: auditSvc, metrics: collector, log: log}
}

func (s *DoctorService) CreateDoctor(ctx context.Context, cmd *doctor.CreateDoctorCommand, caller Caller) (*doctor.Doctor, error) {
	if err := validateDoctorFields(cmd.AMKA, cmd.FullName, cmd.Email, cmd.PhoneNumber, cmd.Address, cmd.City, cmd.Specialization); err != nil {
		return nil, err
	}

	// Advisory pre-checks; the unique indexes are the real guard.
	exists, err := s.repo.ExistsByAMKA(ctx, cmd.AMKA, nil)
	if err != nil {
		return nil, fmt.Errorf("checking AMKA uniqueness: %w", err)
	}
	if exists {
		return nil, doctor.ErrDoctorAlreadyExists
	}

	exists, err = s.repo.ExistsByEmail(ctx, cmd.Email, nil)
	if err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		return nil, doctor.ErrDoctorAlreadyExists
	}

	d := &doctor.Doctor{
		AMKA:           strings.TrimSpace(cmd.AMKA),
		FullName:       strings.TrimSpace(cmd.FullName),
		Email:          strings.ToLower(strings.TrimSpace(cmd.Email)),
		PhoneNumber:    strings.TrimSpace(cmd.PhoneNumber),
		Address:        cmd.Address,
		City:           cmd.City,
		Specialization: cmd.Specialization,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.DoctorsCreatedTotal.Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "create",
		ResourceType: "doctor",
		ResourceID:   d.ID.String(),
		IPAddress:    caller.IP,
	})

	s.log.Info("doctor created", zap.String("doctor_id", d.ID.String()))
	return d, nil
}

func (s *DoctorService) GetDoctor(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) ListDoctors(ctx context.Context) ([]*doctor.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *DoctorService) UpdateDoctor(ctx context.Context, cmd *doctor.UpdateDoctorCommand, caller Caller) error {
	if err := validateDoctorFields(cmd.AMKA, cmd.FullName, cmd.Email, cmd.PhoneNumber, cmd.Address, cmd.City, cmd.Specialization); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	if existing.AMKA != cmd.AMKA {
		taken, err := s.repo.ExistsByAMKA(ctx, cmd.AMKA, &cmd.ID)
		if err != nil {
			return fmt.Errorf("checking AMKA uniqueness: %w", err)
		}
		if taken {
			return doctor.ErrDoctorAlreadyExists
		}
	}

	if existing.Email != cmd.Email {
		taken, err := s.repo.ExistsByEmail(ctx, cmd.Email, &cmd.ID)
		if err != nil {
			return fmt.Errorf("checking email uniqueness: %w", err)
		}
		if taken {
			return doctor.ErrDoctorAlreadyExists
		}
	}

	now := time.Now().UTC()
	updated := &doctor.Doctor{
		ID:             cmd.ID,
		AMKA:           strings.TrimSpace(cmd.AMKA),
		FullName:       strings.TrimSpace(cmd.FullName),
		Email:          strings.ToLower(strings.TrimSpace(cmd.Email)),
		PhoneNumber:    strings.TrimSpace(cmd.PhoneNumber),
		Address:        cmd.Address,
		City:           cmd.City,
		Specialization: cmd.Specialization,
		UpdatedAt:      &now,
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "update",
		ResourceType: "doctor",
		ResourceID:   cmd.ID.String(),
		IPAddress:    caller.IP,
	})
	return nil
}

// DeleteDoctor refuses while any patient or medical record still references
// the row; dependents must be reassigned or removed first.
func (s *DoctorService) DeleteDoctor(ctx context.Context, id uuid.UUID, caller Caller) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	patients, err := s.repo.CountPatients(ctx, id)
	if err != nil {
		return fmt.Errorf("counting patients: %w", err)
	}
	if patients > 0 {
		return doctor.ErrDoctorHasPatients
	}

	records, err := s.repo.CountMedicalRecords(ctx, id)
	if err != nil {
		return fmt.Errorf("counting medical records: %w", err)
	}
	if records > 0 {
		return doctor.ErrDoctorHasRecords
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "delete",
		ResourceType: "doctor",
		ResourceID:   id.String(),
		IPAddress:    caller.IP,
	})
	return nil
}

func validateDoctorFields(amka, fullName, email, phone, address, city, specialization string) error {
	var errs []string

	if !validAMKA(amka) {
		errs = append(errs, "amka must be exactly 11 digits")
	}
	errs = requireField(errs, fullName, "fullName", 50)
	if !validEmail(email) {
		errs = append(errs, "email format is invalid")
	}
	if !validPhone(phone) {
		errs = append(errs, "phoneNumber format is invalid")
	}
	errs = requireField(errs, address, "address", 100)
	errs = requireField(errs, city, "city", 50)
	errs = requireField(errs, specialization, "specialization", 50)

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
