package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/healthcrm/healthcrm-api/internal/domain/doctor"
)

func newTestAudit() *AuditService {
	return NewAuditService(&mockAuditRepo{}, zap.NewNop(), nil)
}

func validCreateDoctorCommand() *doctor.CreateDoctorCommand {
	return &doctor.CreateDoctorCommand{
		AMKA:           "12345678901",
		FullName:       "Maria Papadopoulou",
		Email:          "maria@clinic.gr",
		PhoneNumber:    "+306912345678",
		Address:        "12 Ermou St",
		City:           "Athens",
		Specialization: "Cardiology",
	}
}

func TestCreateDoctor(t *testing.T) {
	repo := &mockDoctorRepo{}
	svc := NewDoctorService(repo, newTestAudit(), nil, zap.NewNop())

	d, err := svc.CreateDoctor(context.Background(), validCreateDoctorCommand(), Caller{})

	assert.NoError(t, err)
	assert.NotNil(t, d)
	assert.Equal(t, "12345678901", d.AMKA)
	assert.Equal(t, int32(1), repo.CreateCalls)
}

func TestCreateDoctorInvalidAMKA(t *testing.T) {
	repo := &mockDoctorRepo{}
	svc := NewDoctorService(repo, newTestAudit(), nil, zap.NewNop())

	cmd := validCreateDoctorCommand()
	cmd.AMKA = "123"

	_, err := svc.CreateDoctor(context.Background(), cmd, Caller{})

	var validErr *ValidationError
	assert.ErrorAs(t, err, &validErr)
	assert.Contains(t, validErr.Fields[0], "amka")
	assert.Equal(t, int32(0), repo.CreateCalls)
}

func TestCreateDoctorDuplicateAMKA(t *testing.T) {
	repo := &mockDoctorRepo{
		ExistsByAMKAFunc: func(ctx context.Context, amka string, excludeID *uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	svc := NewDoctorService(repo, newTestAudit(), nil, zap.NewNop())

	_, err := svc.CreateDoctor(context.Background(), validCreateDoctorCommand(), Caller{})

	assert.ErrorIs(t, err, doctor.ErrDoctorAlreadyExists)
	assert.Equal(t, int32(0), repo.CreateCalls)
}

func TestCreateDoctorDuplicateEmail(t *testing.T) {
	repo := &mockDoctorRepo{
		ExistsByEmailFunc: func(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	svc := NewDoctorService(repo, newTestAudit(), nil, zap.NewNop())

	_, err := svc.CreateDoctor(context.Background(), validCreateDoctorCommand(), Caller{})

	assert.ErrorIs(t, err, doctor.ErrDoctorAlreadyExists)
}

func TestUpdateDoctorNotFound(t *testing.T) {
	repo := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
			return nil, doctor.ErrDoctorNotFound
		},
	}
	svc := NewDoctorService(repo, newTestAudit(), nil, zap.NewNop())

	cmd := &doctor.UpdateDoctorCommand{
		ID:             uuid.New(),
		AMKA:           "12345678901",
		FullName:       "Maria Papadopoulou",
		Email:          "maria@clinic.gr",
		PhoneNumber:    "+306912345678",
		Address:        "12 Ermou St",
		City:           "Athens",
		Specialization: "Cardiology",
	}

	err := svc.UpdateDoctor(context.Background(), cmd, Caller{})
	assert.ErrorIs(t, err, doctor.ErrDoctorNotFound)
}

func TestDeleteDoctorWithPatients(t *testing.T) {
	id := uuid.New()
	repo := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, got uuid.UUID) (*doctor.Doctor, error) {
			return &doctor.Doctor{ID: got}, nil
		},
		CountPatientsFunc: func(ctx context.Context, got uuid.UUID) (int64, error) {
			return 3, nil
		},
	}
	svc := NewDoctorService(repo, newTestAudit(), nil, zap.NewNop())

	err := svc.DeleteDoctor(context.Background(), id, Caller{})

	assert.ErrorIs(t, err, doctor.ErrDoctorHasPatients)
	assert.Equal(t, int32(0), repo.DeleteCalls)
}

func TestDeleteDoctorWithRecords(t *testing.T) {
	repo := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, got uuid.UUID) (*doctor.Doctor, error) {
			return &doctor.Doctor{ID: got}, nil
		},
		CountMedicalRecordsFunc: func(ctx context.Context, got uuid.UUID) (int64, error) {
			return 1, nil
		},
	}
	svc := NewDoctorService(repo, newTestAudit(), nil, zap.NewNop())

	err := svc.DeleteDoctor(context.Background(), uuid.New(), Caller{})

	assert.ErrorIs(t, err, doctor.ErrDoctorHasRecords)
	assert.Equal(t, int32(0), repo.DeleteCalls)
}

func TestDeleteDoctorUnreferenced(t *testing.T) {
	repo := &mockDoctorRepo{
		GetByIDFunc: func(ctx context.Context, got uuid.UUID) (*doctor.Doctor, error) {
			return &doctor.Doctor{ID: got}, nil
		},
	}
	svc := NewDoctorService(repo, newTestAudit(), nil, zap.NewNop())

	err := svc.DeleteDoctor(context.Background(), uuid.New(), Caller{})

	assert.NoError(t, err)
	assert.Equal(t, int32(1), repo.DeleteCalls)
}
