package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	mr "github.com/healthcrm/healthcrm-api/internal/domain/medicalrecord"
	"github.com/healthcrm/healthcrm-api/internal/domain/patient"
)

func newRecordService(repo *mockRecordRepo, patientRepo *mockPatientRepo) *MedicalRecordService {
	if patientRepo == nil {
		patientRepo = &mockPatientRepo{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
				return &patient.Patient{ID: id}, nil
			},
		}
	}
	return NewMedicalRecordService(repo, patientRepo, &mockDoctorRepo{}, newTestAudit(), nil, zap.NewNop())
}

func validCreateRecordCommand() *mr.CreateRecordCommand {
	return &mr.CreateRecordCommand{
		PatientID:   uuid.New(),
		DoctorID:    uuid.New(),
		AMKA:        "09876543210",
		Disease:     "Hypertension",
		Medications: "Lisinopril 10mg",
	}
}

func TestCreateRecord(t *testing.T) {
	repo := &mockRecordRepo{}
	svc := newRecordService(repo, nil)

	r, err := svc.CreateRecord(context.Background(), validCreateRecordCommand(), Caller{})

	assert.NoError(t, err)
	assert.Equal(t, "Hypertension", r.Disease)
}

func TestCreateRecordPatientAlreadyHasOne(t *testing.T) {
	repo := &mockRecordRepo{
		ExistsForPatientFunc: func(ctx context.Context, patientID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	svc := newRecordService(repo, nil)

	_, err := svc.CreateRecord(context.Background(), validCreateRecordCommand(), Caller{})
	assert.ErrorIs(t, err, mr.ErrRecordAlreadyExists)
}

func TestCreateRecordPatientMissing(t *testing.T) {
	patientRepo := &mockPatientRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
			return nil, patient.ErrPatientNotFound
		},
	}
	svc := newRecordService(&mockRecordRepo{}, patientRepo)

	_, err := svc.CreateRecord(context.Background(), validCreateRecordCommand(), Caller{})
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestCreateRecordLongHistory(t *testing.T) {
	svc := newRecordService(&mockRecordRepo{}, nil)

	history := string(make([]byte, 501))
	cmd := validCreateRecordCommand()
	cmd.MedicalHistory = &history

	_, err := svc.CreateRecord(context.Background(), cmd, Caller{})

	var validErr *ValidationError
	assert.ErrorAs(t, err, &validErr)
}

func TestUpdateRecordMovesToPatientWithRecord(t *testing.T) {
	recordID := uuid.New()
	repo := &mockRecordRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*mr.MedicalRecord, error) {
			return &mr.MedicalRecord{ID: id}, nil
		},
		ExistsForPatientFunc: func(ctx context.Context, patientID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	svc := newRecordService(repo, nil)

	err := svc.UpdateRecord(context.Background(), &mr.UpdateRecordCommand{
		ID:          recordID,
		PatientID:   uuid.New(),
		DoctorID:    uuid.New(),
		AMKA:        "09876543210",
		Disease:     "Asthma",
		Medications: "Salbutamol",
	}, Caller{})

	assert.ErrorIs(t, err, mr.ErrRecordAlreadyExists)
}
