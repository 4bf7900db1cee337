package medicalrecord

import (
	"time"

	"github.com/google/uuid"
)

type MedicalRecord struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updatedAt"`

	// One record per patient, enforced by a unique index on patient_id.
	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;uniqueIndex;not null" json:"patientId"`
	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index" json:"doctorId"`

	AMKA           string  `gorm:"column:amka;type:varchar(11);not null" json:"amka"`
	Disease        string  `gorm:"column:disease;type:varchar(100);not null" json:"disease"`
	MedicalHistory *string `gorm:"column:medical_history;type:varchar(500)" json:"medicalHistory"`
	Medications    string  `gorm:"column:medications;type:varchar(200);not null" json:"medications"`
}

func (MedicalRecord) TableName() string {
	return "clinic.medical_records"
}

type CreateRecordCommand struct {
	PatientID      uuid.UUID
	DoctorID       uuid.UUID
	AMKA           string
	Disease        string
	MedicalHistory *string
	Medications    string
}

type UpdateRecordCommand struct {
	ID             uuid.UUID
	PatientID      uuid.UUID
	DoctorID       uuid.UUID
	AMKA           string
	Disease        string
	MedicalHistory *string
	Medications    string
}
