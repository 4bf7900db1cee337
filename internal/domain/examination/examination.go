package examination

import (
	"time"

	"github.com/google/uuid"
)

// ExamType is wire-compatible with the integer codes the frontend stores;
// names are exposed through the lookup endpoint.
type ExamType int

const (
	TypeBloodTest ExamType = iota + 1
	TypeXRay
	TypeMRI
	TypeUltrasound
	TypeEndoscopy
	TypeSpirometry
	TypeElectrocardiogram
	TypeBoneDensityScan
	TypeGlucoseToleranceTest
	TypeThyroidFunctionTest
)

var examTypeNames = map[ExamType]string{
	TypeBloodTest:            "BloodTest",
	TypeXRay:                 "XRay",
	TypeMRI:                  "MRI",
	TypeUltrasound:           "Ultrasound",
	TypeEndoscopy:            "Endoscopy",
	TypeSpirometry:           "Spirometry",
	TypeElectrocardiogram:    "Electrocardiogram",
	TypeBoneDensityScan:      "BoneDensityScan",
	TypeGlucoseToleranceTest: "GlucoseToleranceTest",
	TypeThyroidFunctionTest:  "ThyroidFunctionTest",
}

func (t ExamType) IsValid() bool {
	_, ok := examTypeNames[t]
	return ok
}

func (t ExamType) String() string {
	if name, ok := examTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ExamTypeNames returns the integer→name mapping served by the lookup endpoint.
func ExamTypeNames() map[int]string {
	out := make(map[int]string, len(examTypeNames))
	for k, v := range examTypeNames {
		out[int(k)] = v
	}
	return out
}

type ExamStatus int

const (
	StatusPending ExamStatus = iota + 1
	StatusScheduled
	StatusCompleted
)

var examStatusNames = map[ExamStatus]string{
	StatusPending:   "Pending",
	StatusScheduled: "Scheduled",
	StatusCompleted: "Completed",
}

func (s ExamStatus) IsValid() bool {
	_, ok := examStatusNames[s]
	return ok
}

func (s ExamStatus) String() string {
	if name, ok := examStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func ExamStatusNames() map[int]string {
	out := make(map[int]string, len(examStatusNames))
	for k, v := range examStatusNames {
		out[int(k)] = v
	}
	return out
}

type Examination struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updatedAt"`

	PatientID *uuid.UUID `gorm:"column:patient_id;type:uuid;index" json:"patientId"`
	DoctorID  *uuid.UUID `gorm:"column:doctor_id;type:uuid;index" json:"doctorId"`

	Type        ExamType   `gorm:"column:type;not null" json:"type"`
	Status      ExamStatus `gorm:"column:status;not null" json:"status"`
	Price       float64    `gorm:"column:price;type:numeric(18,2);not null" json:"price"`
	Description string     `gorm:"column:description;type:text" json:"description"`

	// Result document stored as an opaque blob; streamed by the download endpoint.
	ResultPDF []byte `gorm:"column:result_pdf;type:bytea" json:"-"`
}

func (Examination) TableName() string {
	return "clinic.examinations"
}

// HasResult reports whether a result document is stored for the examination.
func (e *Examination) HasResult() bool {
	return len(e.ResultPDF) > 0
}

type CreateExaminationCommand struct {
	PatientID   *uuid.UUID
	DoctorID    *uuid.UUID
	Type        ExamType
	Status      ExamStatus
	Price       float64
	Description string
	ResultPDF   []byte
}

type UpdateExaminationCommand struct {
	ID          int64
	PatientID   *uuid.UUID
	DoctorID    *uuid.UUID
	Type        ExamType
	Status      ExamStatus
	Price       float64
	Description string
	// Nil leaves the stored document untouched.
	ResultPDF []byte
}
