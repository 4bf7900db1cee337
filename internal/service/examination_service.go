package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthcrm/healthcrm-api/internal/domain/doctor"
	"github.com/healthcrm/healthcrm-api/internal/domain/examination"
	"github.com/healthcrm/healthcrm-api/internal/domain/patient"
	"github.com/healthcrm/healthcrm-api/pkg/metrics"
)

// MaxResultSize caps uploaded result documents at 5 MB.
const MaxResultSize = 5 * 1024 * 1024

var pdfMagic = []byte("%PDF")

type ExaminationService struct {
	repo        examination.Repository
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
	auditSvc    *AuditService
	metrics     *metrics.Collector
	log         *zap.Logger
}

func NewExaminationService(repo examination.Repository, patientRepo patient.Repository, doctorRepo doctor.Repository, auditSvc *AuditService, collector *metrics.Collector, log *zap.Logger) *ExaminationService {
	return &ExaminationService{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		auditSvc:    auditSvc,
		metrics:     collector,
		log:         log,
	}
}

func (s *ExaminationService) CreateExamination(ctx context.Context, cmd *examination.CreateExaminationCommand, caller Caller) (*examination.Examination, error) {
	if err := s.validateExamination(ctx, cmd.Type, cmd.Status, cmd.Price, cmd.ResultPDF); err != nil {
		return nil, err
	}
	if err := s.verifyLinks(ctx, cmd.PatientID, cmd.DoctorID); err != nil {
		return nil, err
	}

	e := &examination.Examination{
		PatientID:   cmd.PatientID,
		DoctorID:    cmd.DoctorID,
		Type:        cmd.Type,
		Status:      cmd.Status,
		Price:       cmd.Price,
		Description: cmd.Description,
		ResultPDF:   cmd.ResultPDF,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ExaminationsTotal.WithLabelValues(e.Type.String()).Inc()
		if e.HasResult() {
			s.metrics.ResultUploadsTotal.Inc()
		}
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "create",
		ResourceType: "examination",
		ResourceID:   strconv.FormatInt(e.ID, 10),
		IPAddress:    caller.IP,
	})

	s.log.Info("examination created",
		zap.Int64("examination_id", e.ID),
		zap.String("type", e.Type.String()))
	return e, nil
}

func (s *ExaminationService) GetExamination(ctx context.Context, id int64) (*examination.Examination, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ExaminationService) ListExaminations(ctx context.Context) ([]*examination.Examination, error) {
	return s.repo.List(ctx)
}

func (s *ExaminationService) UpdateExamination(ctx context.Context, cmd *examination.UpdateExaminationCommand, caller Caller) error {
	if err := s.validateExamination(ctx, cmd.Type, cmd.Status, cmd.Price, cmd.ResultPDF); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, cmd.ID); err != nil {
		return err
	}
	if err := s.verifyLinks(ctx, cmd.PatientID, cmd.DoctorID); err != nil {
		return err
	}

	now := time.Now().UTC()
	updated := &examination.Examination{
		ID:          cmd.ID,
		PatientID:   cmd.PatientID,
		DoctorID:    cmd.DoctorID,
		Type:        cmd.Type,
		Status:      cmd.Status,
		Price:       cmd.Price,
		Description: cmd.Description,
		ResultPDF:   cmd.ResultPDF,
		UpdatedAt:   &now,
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return err
	}

	if cmd.ResultPDF != nil && s.metrics != nil {
		s.metrics.ResultUploadsTotal.Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.UserID,
		UserRole:     caller.Role,
		Action:       "update",
		ResourceType: "examination",
		ResourceID:   strconv.FormatInt(cmd.ID, 10),
		IPAddress:    caller.IP,
	})
	return nil
}

func (s *ExaminationService) DeleteExamination(ctx context.Context, id int64, caller Caller) error {
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
		ResourceType: "examination",
		ResourceID:   strconv.FormatInt(id, 10),
		IPAddress:    caller.IP,
	})
	return nil
}

// GetResult returns the stored result document bytes for the examination.
func (s *ExaminationService) GetResult(ctx context.Context, id int64) ([]byte, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetResult(ctx, id)
}

// ValidateResultUpload checks size and content type of an uploaded result
// before the bytes are read into memory.
func ValidateResultUpload(size int64, contentType string) error {
	if size <= 0 || size > MaxResultSize {
		return examination.ErrInvalidResultFile
	}
	if contentType != "application/pdf" {
		return examination.ErrInvalidResultFile
	}
	return nil
}

func (s *ExaminationService) validateExamination(_ context.Context, t examination.ExamType, status examination.ExamStatus, price float64, result []byte) error {
	var errs []string
	if !t.IsValid() {
		errs = append(errs, "type is not a recognized examination type")
	}
	if !status.IsValid() {
		errs = append(errs, "status is not a recognized examination status")
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	if price < 0 {
		return examination.ErrNegativePrice
	}
	if result != nil {
		if len(result) == 0 || len(result) > MaxResultSize || !bytes.HasPrefix(result, pdfMagic) {
			return examination.ErrInvalidResultFile
		}
	}
	return nil
}

func (s *ExaminationService) verifyLinks(ctx context.Context, patientID, doctorID *uuid.UUID) error {
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
	return nil
}
