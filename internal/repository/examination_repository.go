package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/healthcrm/healthcrm-api/internal/domain/appointment"
	"github.com/healthcrm/healthcrm-api/internal/domain/examination"
)

type ExaminationRepository struct {
	db *gorm.DB
}

func NewExaminationRepository(db *gorm.DB) *ExaminationRepository {
	return &ExaminationRepository{db: db}
}

var _ examination.Repository = (*ExaminationRepository)(nil)

func (r *ExaminationRepository) Create(ctx context.Context, e *examination.Examination) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExaminationRepository) GetByID(ctx context.Context, id int64) (*examination.Examination, error) {
	var e examination.Examination
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, examination.ErrExaminationNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExaminationRepository) List(ctx context.Context) ([]*examination.Examination, error) {
	var exams []*examination.Examination
	// The blob column is omitted from listings; it is only needed by the
	// download endpoint.
	if err := r.db.WithContext(ctx).
		Omit("result_pdf").
		Order("created_at").
		Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *ExaminationRepository) Update(ctx context.Context, e *examination.Examination) error {
	cols := []string{"patient_id", "doctor_id", "type", "status", "price", "description", "updated_at"}
	if e.ResultPDF != nil {
		cols = append(cols, "result_pdf")
	}
	res := r.db.WithContext(ctx).Model(&examination.Examination{}).Where("id = ?", e.ID).
		Select(cols).Updates(e)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return examination.ErrExaminationNotFound
	}
	return nil
}

func (r *ExaminationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Detach from any appointment first; only appointment deletion
		// cascades the other way.
		if err := tx.Model(&appointment.Appointment{}).Where("examination_id = ?", id).
			Update("examination_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&examination.Examination{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return examination.ErrExaminationNotFound
		}
		return nil
	})
}

func (r *ExaminationRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&examination.Examination{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ExaminationRepository) GetResult(ctx context.Context, id int64) ([]byte, error) {
	var e examination.Examination
	if err := r.db.WithContext(ctx).Select("result_pdf").First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, examination.ErrExaminationNotFound
		}
		return nil, err
	}
	if len(e.ResultPDF) == 0 {
		return nil, examination.ErrResultNotFound
	}
	return e.ResultPDF, nil
}
