package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/healthcrm/healthcrm-api/internal/domain/appointment"
	"github.com/healthcrm/healthcrm-api/internal/domain/examination"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

var _ appointment.Repository = (*AppointmentRepository)(nil)

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return appointment.ErrExaminationLinked
		}
		return err
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*appointment.Appointment, error) {
	var a appointment.Appointment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) List(ctx context.Context) ([]*appointment.Appointment, error) {
	var appts []*appointment.Appointment
	if err := r.db.WithContext(ctx).Order("appointment_date").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	// Full-field overwrite of the mutable columns. examination_id is always
	// included so an omitted link is explicitly nulled out, not left as-is.
	res := r.db.WithContext(ctx).Model(&appointment.Appointment{}).Where("id = ?", a.ID).
		Select("full_name", "phone_number", "email", "appointment_date", "exam_type",
			"status", "notes", "patient_id", "doctor_id", "medical_record_id",
			"examination_id", "prescription_code", "total_price", "updated_at").
		Updates(a)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return appointment.ErrExaminationLinked
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a appointment.Appointment
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appointment.ErrAppointmentNotFound
			}
			return err
		}

		if err := tx.Delete(&appointment.Appointment{}, "id = ?", id).Error; err != nil {
			return err
		}

		// Cascade policy: the appointment owns its examination.
		if a.ExaminationID != nil {
			if err := tx.Delete(&examination.Examination{}, "id = ?", *a.ExaminationID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AppointmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&appointment.Appointment{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *AppointmentRepository) ExaminationLinked(ctx context.Context, examinationID int64, excludeID *int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&appointment.Appointment{}).Where("examination_id = ?", examinationID)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}
