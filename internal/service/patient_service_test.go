package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/healthcrm/healthcrm-api/internal/domain/patient"
)

func newPatientService(repo *mockPatientRepo, doctorRepo *mockDoctorRepo) *PatientService {
	if doctorRepo == nil {
		doctorRepo = &mockDoctorRepo{}
	}
	return NewPatientService(repo, doctorRepo, &mockRecordRepo{}, newTestAudit(), nil, zap.NewNop())
}

func validCreatePatientCommand() *patient.CreatePatientCommand {
	return &patient.CreatePatientCommand{
		DoctorID:    uuid.New(),
		AMKA:        "09876543210",
		FullName:    "Eleni Georgiou",
		PhoneNumber: "2101234567",
		Address:     "4 Stadiou St",
		City:        "Athens",
	}
}

func TestCreatePatient(t *testing.T) {
	repo := &mockPatientRepo{}
	svc := newPatientService(repo, nil)

	p, err := svc.CreatePatient(context.Background(), validCreatePatientCommand(), Caller{})

	assert.NoError(t, err)
	assert.Equal(t, "09876543210", p.AMKA)
	assert.Equal(t, int32(1), repo.CreateCalls)
}

func TestCreatePatientNormalizesEmail(t *testing.T) {
	var stored *patient.Patient
	repo := &mockPatientRepo{
		CreateFunc: func(ctx context.Context, p *patient.Patient) error {
			stored = p
			return nil
		},
	}
	svc := newPatientService(repo, nil)

	email := "  Eleni@Example.GR "
	cmd := validCreatePatientCommand()
	cmd.Email = &email

	_, err := svc.CreatePatient(context.Background(), cmd, Caller{})

	assert.NoError(t, err)
	assert.Equal(t, "eleni@example.gr", *stored.Email)
}

func TestCreatePatientMissingDoctor(t *testing.T) {
	doctorRepo := &mockDoctorRepo{
		ExistsFunc: func(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil },
	}
	svc := newPatientService(&mockPatientRepo{}, doctorRepo)

	_, err := svc.CreatePatient(context.Background(), validCreatePatientCommand(), Caller{})
	assert.ErrorIs(t, err, patient.ErrDoctorRequired)
}

func TestCreatePatientDuplicateAMKA(t *testing.T) {
	repo := &mockPatientRepo{
		ExistsByAMKAFunc: func(ctx context.Context, amka string, excludeID *uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	svc := newPatientService(repo, nil)

	_, err := svc.CreatePatient(context.Background(), validCreatePatientCommand(), Caller{})
	assert.ErrorIs(t, err, patient.ErrPatientAlreadyExists)
}

func TestCreatePatientInvalidPhone(t *testing.T) {
	svc := newPatientService(&mockPatientRepo{}, nil)

	cmd := validCreatePatientCommand()
	cmd.PhoneNumber = "12-34"

	_, err := svc.CreatePatient(context.Background(), cmd, Caller{})

	var validErr *ValidationError
	assert.ErrorAs(t, err, &validErr)
}

func TestDeletePatientWithRecord(t *testing.T) {
	repo := &mockPatientRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
			return &patient.Patient{ID: id}, nil
		},
		HasMedicalRecordFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	svc := newPatientService(repo, nil)

	err := svc.DeletePatient(context.Background(), uuid.New(), Caller{})

	assert.ErrorIs(t, err, patient.ErrPatientReferenced)
	assert.Equal(t, int32(0), repo.DeleteCalls)
}

func TestDeletePatientUnreferenced(t *testing.T) {
	repo := &mockPatientRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
			return &patient.Patient{ID: id}, nil
		},
	}
	svc := newPatientService(repo, nil)

	err := svc.DeletePatient(context.Background(), uuid.New(), Caller{})

	assert.NoError(t, err)
	assert.Equal(t, int32(1), repo.DeleteCalls)
}
