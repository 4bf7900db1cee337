package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/healthcrm/healthcrm-api/internal/domain/examination"
)

type Appointment struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updatedAt"`

	FullName    string  `gorm:"column:full_name;type:varchar(50);not null" json:"fullName"`
	PhoneNumber string  `gorm:"column:phone_number;type:varchar(20);not null" json:"phoneNumber"`
	Email       *string `gorm:"column:email;type:varchar(255)" json:"email"`

	// Normalized to a half-hour boundary before persistence.
	AppointmentDate time.Time `gorm:"column:appointment_date;not null;index" json:"appointmentDate"`

	ExamType examination.ExamType   `gorm:"column:exam_type;not null" json:"examType"`
	Status   examination.ExamStatus `gorm:"column:status;not null;index" json:"status"`

	Notes string `gorm:"column:notes;type:varchar(500)" json:"notes"`

	// Optional links filled in later by staff.
	PatientID       *uuid.UUID `gorm:"column:patient_id;type:uuid;index" json:"patientId"`
	DoctorID        *uuid.UUID `gorm:"column:doctor_id;type:uuid;index" json:"doctorId"`
	MedicalRecordID *uuid.UUID `gorm:"column:medical_record_id;type:uuid" json:"medicalRecordId"`

	// An examination backs at most one appointment (partial unique index).
	ExaminationID *int64 `gorm:"column:examination_id" json:"examinationId"`

	PrescriptionCode *string  `gorm:"column:prescription_code;type:varchar(50)" json:"prescriptionCode"`
	TotalPrice       *float64 `gorm:"column:total_price;type:numeric(18,2)" json:"totalPrice"`
}

func (Appointment) TableName() string {
	return "clinic.appointments"
}

type CreateAppointmentCommand struct {
	FullName         string
	PhoneNumber      string
	Email            *string
	AppointmentDate  time.Time
	ExamType         examination.ExamType
	Status           examination.ExamStatus
	Notes            string
	PatientID        *uuid.UUID
	DoctorID         *uuid.UUID
	MedicalRecordID  *uuid.UUID
	ExaminationID    *int64
	PrescriptionCode *string
	TotalPrice       *float64
}

type UpdateAppointmentCommand struct {
	ID               int64
	FullName         string
	PhoneNumber      string
	Email            *string
	AppointmentDate  time.Time
	ExamType         examination.ExamType
	Status           examination.ExamStatus
	Notes            string
	PatientID        *uuid.UUID
	DoctorID         *uuid.UUID
	MedicalRecordID  *uuid.UUID
	// Nil removes any existing examination link.
	ExaminationID    *int64
	PrescriptionCode *string
	TotalPrice       *float64
}
