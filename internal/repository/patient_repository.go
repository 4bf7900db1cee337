package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	mr "github.com/healthcrm/healthcrm-api/internal/domain/medicalrecord"
	"github.com/healthcrm/healthcrm-api/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

var _ patient.Repository = (*PatientRepository)(nil)

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return patient.ErrPatientAlreadyExists
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return patient.ErrDoctorRequired
		}
		return err
	}
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, patient.ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) List(ctx context.Context) ([]*patient.Patient, error) {
	var patients []*patient.Patient
	if err := r.db.WithContext(ctx).Order("created_at").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, p *patient.Patient) error {
	res := r.db.WithContext(ctx).Model(&patient.Patient{}).Where("id = ?", p.ID).
		Select("doctor_id", "medical_record_id", "amka", "full_name", "email",
			"phone_number", "address", "city", "updated_at").
		Updates(p)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return patient.ErrPatientAlreadyExists
		}
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return patient.ErrDoctorRequired
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return patient.ErrPatientNotFound
	}
	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&patient.Patient{}, "id = ?", id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return patient.ErrPatientReferenced
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return patient.ErrPatientNotFound
	}
	return nil
}

func (r *PatientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&patient.Patient{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *PatientRepository) ExistsByAMKA(ctx context.Context, amka string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&patient.Patient{}).Where("amka = ?", amka)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *PatientRepository) HasMedicalRecord(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&mr.MedicalRecord{}).Where("patient_id = ?", id).Count(&count).Error
	return count > 0, err
}
