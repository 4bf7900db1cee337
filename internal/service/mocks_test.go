package service

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/healthcrm/healthcrm-api/internal/domain"
	"github.com/healthcrm/healthcrm-api/internal/domain/appointment"
	"github.com/healthcrm/healthcrm-api/internal/domain/doctor"
	"github.com/healthcrm/healthcrm-api/internal/domain/examination"
	mr "github.com/healthcrm/healthcrm-api/internal/domain/medicalrecord"
	"github.com/healthcrm/healthcrm-api/internal/domain/patient"
)

var _ doctor.Repository = (*mockDoctorRepo)(nil)

type mockDoctorRepo struct {
	CreateFunc              func(ctx context.Context, d *doctor.Doctor) error
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
	ListFunc                func(ctx context.Context) ([]*doctor.Doctor, error)
	UpdateFunc              func(ctx context.Context, d *doctor.Doctor) error
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
	ExistsFunc              func(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByAMKAFunc        func(ctx context.Context, amka string, excludeID *uuid.UUID) (bool, error)
	ExistsByEmailFunc       func(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
	CountPatientsFunc       func(ctx context.Context, id uuid.UUID) (int64, error)
	CountMedicalRecordsFunc func(ctx context.Context, id uuid.UUID) (int64, error)

	CreateCalls int32
	DeleteCalls int32
}

func (m *mockDoctorRepo) Create(ctx context.Context, d *doctor.Doctor) error {
	atomic.AddInt32(&m.CreateCalls, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, d)
	}
	return nil
}

func (m *mockDoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not set")
}

func (m *mockDoctorRepo) List(ctx context.Context) ([]*doctor.Doctor, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockDoctorRepo) Update(ctx context.Context, d *doctor.Doctor) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, d)
	}
	return nil
}

func (m *mockDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	atomic.AddInt32(&m.DeleteCalls, 1)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockDoctorRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

func (m *mockDoctorRepo) ExistsByAMKA(ctx context.Context, amka string, excludeID *uuid.UUID) (bool, error) {
	if m.ExistsByAMKAFunc != nil {
		return m.ExistsByAMKAFunc(ctx, amka, excludeID)
	}
	return false, nil
}

func (m *mockDoctorRepo) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email, excludeID)
	}
	return false, nil
}

func (m *mockDoctorRepo) CountPatients(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.CountPatientsFunc != nil {
		return m.CountPatientsFunc(ctx, id)
	}
	return 0, nil
}

func (m *mockDoctorRepo) CountMedicalRecords(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.CountMedicalRecordsFunc != nil {
		return m.CountMedicalRecordsFunc(ctx, id)
	}
	return 0, nil
}

var _ patient.Repository = (*mockPatientRepo)(nil)

type mockPatientRepo struct {
	CreateFunc           func(ctx context.Context, p *patient.Patient) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	ListFunc             func(ctx context.Context) ([]*patient.Patient, error)
	UpdateFunc           func(ctx context.Context, p *patient.Patient) error
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	ExistsFunc           func(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByAMKAFunc     func(ctx context.Context, amka string, excludeID *uuid.UUID) (bool, error)
	HasMedicalRecordFunc func(ctx context.Context, id uuid.UUID) (bool, error)

	CreateCalls int32
	DeleteCalls int32
}

func (m *mockPatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	atomic.AddInt32(&m.CreateCalls, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not set")
}

func (m *mockPatientRepo) List(ctx context.Context) ([]*patient.Patient, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockPatientRepo) Update(ctx context.Context, p *patient.Patient) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

func (m *mockPatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	atomic.AddInt32(&m.DeleteCalls, 1)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPatientRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

func (m *mockPatientRepo) ExistsByAMKA(ctx context.Context, amka string, excludeID *uuid.UUID) (bool, error) {
	if m.ExistsByAMKAFunc != nil {
		return m.ExistsByAMKAFunc(ctx, amka, excludeID)
	}
	return false, nil
}

func (m *mockPatientRepo) HasMedicalRecord(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.HasMedicalRecordFunc != nil {
		return m.HasMedicalRecordFunc(ctx, id)
	}
	return false, nil
}

var _ mr.Repository = (*mockRecordRepo)(nil)

type mockRecordRepo struct {
	CreateFunc           func(ctx context.Context, r *mr.MedicalRecord) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*mr.MedicalRecord, error)
	ListFunc             func(ctx context.Context) ([]*mr.MedicalRecord, error)
	UpdateFunc           func(ctx context.Context, r *mr.MedicalRecord) error
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	ExistsFunc           func(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsForPatientFunc func(ctx context.Context, patientID uuid.UUID, excludeID *uuid.UUID) (bool, error)
}

func (m *mockRecordRepo) Create(ctx context.Context, r *mr.MedicalRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	return nil
}

func (m *mockRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*mr.MedicalRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not set")
}

func (m *mockRecordRepo) List(ctx context.Context) ([]*mr.MedicalRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockRecordRepo) Update(ctx context.Context, r *mr.MedicalRecord) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, r)
	}
	return nil
}

func (m *mockRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockRecordRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

func (m *mockRecordRepo) ExistsForPatient(ctx context.Context, patientID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	if m.ExistsForPatientFunc != nil {
		return m.ExistsForPatientFunc(ctx, patientID, excludeID)
	}
	return false, nil
}

var _ examination.Repository = (*mockExaminationRepo)(nil)

type mockExaminationRepo struct {
	CreateFunc    func(ctx context.Context, e *examination.Examination) error
	GetByIDFunc   func(ctx context.Context, id int64) (*examination.Examination, error)
	ListFunc      func(ctx context.Context) ([]*examination.Examination, error)
	UpdateFunc    func(ctx context.Context, e *examination.Examination) error
	DeleteFunc    func(ctx context.Context, id int64) error
	ExistsFunc    func(ctx context.Context, id int64) (bool, error)
	GetResultFunc func(ctx context.Context, id int64) ([]byte, error)

	CreateCalls int32
}

func (m *mockExaminationRepo) Create(ctx context.Context, e *examination.Examination) error {
	atomic.AddInt32(&m.CreateCalls, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return nil
}

func (m *mockExaminationRepo) GetByID(ctx context.Context, id int64) (*examination.Examination, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not set")
}

func (m *mockExaminationRepo) List(ctx context.Context) ([]*examination.Examination, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockExaminationRepo) Update(ctx context.Context, e *examination.Examination) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, e)
	}
	return nil
}

func (m *mockExaminationRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockExaminationRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

func (m *mockExaminationRepo) GetResult(ctx context.Context, id int64) ([]byte, error) {
	if m.GetResultFunc != nil {
		return m.GetResultFunc(ctx, id)
	}
	return nil, examination.ErrResultNotFound
}

var _ appointment.Repository = (*mockAppointmentRepo)(nil)

type mockAppointmentRepo struct {
	CreateFunc            func(ctx context.Context, a *appointment.Appointment) error
	GetByIDFunc           func(ctx context.Context, id int64) (*appointment.Appointment, error)
	ListFunc              func(ctx context.Context) ([]*appointment.Appointment, error)
	UpdateFunc            func(ctx context.Context, a *appointment.Appointment) error
	DeleteFunc            func(ctx context.Context, id int64) error
	ExistsFunc            func(ctx context.Context, id int64) (bool, error)
	ExaminationLinkedFunc func(ctx context.Context, examinationID int64, excludeID *int64) (bool, error)

	CreateCalls int32
}

func (m *mockAppointmentRepo) Create(ctx context.Context, a *appointment.Appointment) error {
	atomic.AddInt32(&m.CreateCalls, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*appointment.Appointment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not set")
}

func (m *mockAppointmentRepo) List(ctx context.Context) ([]*appointment.Appointment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) Update(ctx context.Context, a *appointment.Appointment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockAppointmentRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

func (m *mockAppointmentRepo) ExaminationLinked(ctx context.Context, examinationID int64, excludeID *int64) (bool, error) {
	if m.ExaminationLinkedFunc != nil {
		return m.ExaminationLinkedFunc(ctx, examinationID, excludeID)
	}
	return false, nil
}

var _ UserRepository = (*mockUserRepo)(nil)

type mockUserRepo struct {
	CreateFunc         func(ctx context.Context, u *domain.User) error
	GetByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListFunc           func(ctx context.Context) ([]*domain.User, error)
	UpdateRoleFunc     func(ctx context.Context, id uuid.UUID, role domain.Role) error
	UpdatePasswordFunc func(ctx context.Context, id uuid.UUID, hash string) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, errors.New("GetByEmailFunc not set")
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not set")
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, hash)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockAuditRepo struct {
	CreateFunc func(ctx context.Context, entry *domain.AuditLog) error
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}
