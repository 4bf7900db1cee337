package doctor

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updatedAt"`

	// AMKA is the 11-digit national identification number.
	AMKA           string `gorm:"column:amka;type:varchar(11);uniqueIndex;not null" json:"amka"`
	FullName       string `gorm:"column:full_name;type:varchar(50);not null;index:idx_doctors_name_spec" json:"fullName"`
	Email          string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber    string `gorm:"column:phone_number;type:varchar(20);not null" json:"phoneNumber"`
	Address        string `gorm:"column:address;type:varchar(100);not null" json:"address"`
	City           string `gorm:"column:city;type:varchar(50);not null" json:"city"`
	Specialization string `gorm:"column:specialization;type:varchar(50);not null;index:idx_doctors_name_spec" json:"specialization"`
}

func (Doctor) TableName() string {
	return "clinic.doctors"
}

type CreateDoctorCommand struct {
	AMKA           string
	FullName       string
	Email          string
	PhoneNumber    string
	Address        string
	City           string
	Specialization string
}

type UpdateDoctorCommand struct {
	ID             uuid.UUID
	AMKA           string
	FullName       string
	Email          string
	PhoneNumber    string
	Address        string
	City           string
	Specialization string
}
