package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/healthcrm/healthcrm-api/internal/domain/appointment"
	"github.com/healthcrm/healthcrm-api/internal/domain/examination"
)

func newAppointmentService(repo *mockAppointmentRepo, examRepo *mockExaminationRepo) *AppointmentService {
	if examRepo == nil {
		examRepo = &mockExaminationRepo{}
	}
	return NewAppointmentService(
		repo,
		examRepo,
		&mockPatientRepo{},
		&mockDoctorRepo{},
		&mockRecordRepo{},
		newTestAudit(),
		nil,
		zap.NewNop(),
	)
}

func validCreateAppointmentCommand(date time.Time) *appointment.CreateAppointmentCommand {
	return &appointment.CreateAppointmentCommand{
		FullName:        "Giorgos Nikolaou",
		PhoneNumber:     "+306987654321",
		AppointmentDate: date,
		ExamType:        examination.TypeBloodTest,
		Status:          examination.StatusPending,
	}
}

func TestCreateAppointmentRoundsDate(t *testing.T) {
	var stored *appointment.Appointment
	repo := &mockAppointmentRepo{
		CreateFunc: func(ctx context.Context, a *appointment.Appointment) error {
			stored = a
			return nil
		},
	}
	svc := newAppointmentService(repo, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	requested := time.Date(2026, 3, 2, 14, 42, 17, 500, time.UTC)
	_, err := svc.CreateAppointment(context.Background(), validCreateAppointmentCommand(requested), Caller{})

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC), stored.AppointmentDate)
}

func TestCreateAppointmentPastDate(t *testing.T) {
	repo := &mockAppointmentRepo{}
	svc := newAppointmentService(repo, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	past := time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC)
	_, err := svc.CreateAppointment(context.Background(), validCreateAppointmentCommand(past), Caller{})

	assert.ErrorIs(t, err, appointment.ErrDateInPast)
	assert.Equal(t, int32(0), repo.CreateCalls)
}

func TestCreateAppointmentPastDateCheckedBeforeRounding(t *testing.T) {
	// 09:10 rounds down to 09:00, but the request itself is still in the
	// future at 09:05, so it must be accepted.
	repo := &mockAppointmentRepo{}
	svc := newAppointmentService(repo, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC) }

	requested := time.Date(2026, 3, 1, 9, 10, 0, 0, time.UTC)
	a, err := svc.CreateAppointment(context.Background(), validCreateAppointmentCommand(requested), Caller{})

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), a.AppointmentDate)
}

func TestCreateAppointmentExaminationAlreadyLinked(t *testing.T) {
	examID := int64(7)
	repo := &mockAppointmentRepo{
		ExaminationLinkedFunc: func(ctx context.Context, examinationID int64, excludeID *int64) (bool, error) {
			return true, nil
		},
	}
	svc := newAppointmentService(repo, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	cmd := validCreateAppointmentCommand(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	cmd.ExaminationID = &examID

	_, err := svc.CreateAppointment(context.Background(), cmd, Caller{})

	assert.ErrorIs(t, err, appointment.ErrExaminationLinked)
	assert.Equal(t, int32(0), repo.CreateCalls)
}

func TestCreateAppointmentExaminationMissing(t *testing.T) {
	examID := int64(99)
	examRepo := &mockExaminationRepo{
		ExistsFunc: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	svc := newAppointmentService(&mockAppointmentRepo{}, examRepo)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	cmd := validCreateAppointmentCommand(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	cmd.ExaminationID = &examID

	_, err := svc.CreateAppointment(context.Background(), cmd, Caller{})
	assert.ErrorIs(t, err, examination.ErrExaminationNotFound)
}

func TestCreateAppointmentNegativeTotalPrice(t *testing.T) {
	svc := newAppointmentService(&mockAppointmentRepo{}, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	price := -10.0
	cmd := validCreateAppointmentCommand(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	cmd.TotalPrice = &price

	_, err := svc.CreateAppointment(context.Background(), cmd, Caller{})
	assert.ErrorIs(t, err, appointment.ErrNegativeTotalPrice)
}

func TestCreateAppointmentInvalidEnum(t *testing.T) {
	svc := newAppointmentService(&mockAppointmentRepo{}, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	cmd := validCreateAppointmentCommand(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	cmd.ExamType = examination.ExamType(42)

	_, err := svc.CreateAppointment(context.Background(), cmd, Caller{})

	var validErr *ValidationError
	assert.ErrorAs(t, err, &validErr)
}

func TestUpdateAppointmentKeepsStoredPastDate(t *testing.T) {
	stored := time.Date(2026, 1, 10, 11, 0, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*appointment.Appointment, error) {
			return &appointment.Appointment{ID: id, AppointmentDate: stored}, nil
		},
	}
	svc := newAppointmentService(repo, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	cmd := &appointment.UpdateAppointmentCommand{
		ID:              1,
		FullName:        "Giorgos Nikolaou",
		PhoneNumber:     "+306987654321",
		AppointmentDate: stored,
		ExamType:        examination.TypeBloodTest,
		Status:          examination.StatusCompleted,
	}

	err := svc.UpdateAppointment(context.Background(), cmd, Caller{})
	assert.NoError(t, err)
}

func TestUpdateAppointmentRescheduleToPast(t *testing.T) {
	stored := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	repo := &mockAppointmentRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*appointment.Appointment, error) {
			return &appointment.Appointment{ID: id, AppointmentDate: stored}, nil
		},
	}
	svc := newAppointmentService(repo, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	cmd := &appointment.UpdateAppointmentCommand{
		ID:              1,
		FullName:        "Giorgos Nikolaou",
		PhoneNumber:     "+306987654321",
		AppointmentDate: time.Date(2026, 2, 1, 11, 0, 0, 0, time.UTC),
		ExamType:        examination.TypeBloodTest,
		Status:          examination.StatusScheduled,
	}

	err := svc.UpdateAppointment(context.Background(), cmd, Caller{})
	assert.ErrorIs(t, err, appointment.ErrDateInPast)
}
