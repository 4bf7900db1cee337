package patient

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updatedAt"`

	// Every patient is assigned to a doctor.
	DoctorID uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index" json:"doctorId"`

	// Set once a medical record is opened for the patient (at most one).
	MedicalRecordID *uuid.UUID `gorm:"column:medical_record_id;type:uuid" json:"medicalRecordId"`

	AMKA        string  `gorm:"column:amka;type:varchar(11);uniqueIndex;not null" json:"amka"`
	FullName    string  `gorm:"column:full_name;type:varchar(50);not null;index" json:"fullName"`
	Email       *string `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	PhoneNumber string  `gorm:"column:phone_number;type:varchar(20);not null" json:"phoneNumber"`
	Address     string  `gorm:"column:address;type:varchar(100);not null" json:"address"`
	City        string  `gorm:"column:city;type:varchar(50);not null" json:"city"`
}

func (Patient) TableName() string {
	return "clinic.patients"
}

type CreatePatientCommand struct {
	DoctorID    uuid.UUID
	AMKA        string
	FullName    string
	Email       *string
	PhoneNumber string
	Address     string
	City        string
}

type UpdatePatientCommand struct {
	ID              uuid.UUID
	DoctorID        uuid.UUID
	MedicalRecordID *uuid.UUID
	AMKA            string
	FullName        string
	Email           *string
	PhoneNumber     string
	Address         string
	City            string
}
