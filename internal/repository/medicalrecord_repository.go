package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	mr "github.com/healthcrm/healthcrm-api/internal/domain/medicalrecord"
	"github.com/healthcrm/healthcrm-api/internal/domain/patient"
)

type MedicalRecordRepository struct {
	db *gorm.DB
}

func NewMedicalRecordRepository(db *gorm.DB) *MedicalRecordRepository {
	return &MedicalRecordRepository{db: db}
}

var _ mr.Repository = (*MedicalRecordRepository)(nil)

func (r *MedicalRecordRepository) Create(ctx context.Context, record *mr.MedicalRecord) error {
	// Creating the record also stamps the back-reference on the patient row,
	// in one transaction.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return mr.ErrRecordAlreadyExists
			}
			return err
		}
		return tx.Model(&patient.Patient{}).Where("id = ?", record.PatientID).
			Update("medical_record_id", record.ID).Error
	})
}

func (r *MedicalRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*mr.MedicalRecord, error) {
	var record mr.MedicalRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mr.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *MedicalRecordRepository) List(ctx context.Context) ([]*mr.MedicalRecord, error) {
	var records []*mr.MedicalRecord
	if err := r.db.WithContext(ctx).Order("created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *MedicalRecordRepository) Update(ctx context.Context, record *mr.MedicalRecord) error {
	res := r.db.WithContext(ctx).Model(&mr.MedicalRecord{}).Where("id = ?", record.ID).
		Select("amka", "disease", "medical_history", "medications", "updated_at").
		Updates(record)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return mr.ErrRecordNotFound
	}
	return nil
}

func (r *MedicalRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Clear the patient's back-reference before removing the row.
		if err := tx.Model(&patient.Patient{}).Where("medical_record_id = ?", id).
			Update("medical_record_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&mr.MedicalRecord{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return mr.ErrRecordNotFound
		}
		return nil
	})
}

func (r *MedicalRecordRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&mr.MedicalRecord{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *MedicalRecordRepository) ExistsForPatient(ctx context.Context, patientID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&mr.MedicalRecord{}).Where("patient_id = ?", patientID)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}
