package medicalrecord

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new record. Returns ErrRecordAlreadyExists when the
	// patient already has one (unique index on patient_id).
	Create(ctx context.Context, r *MedicalRecord) error

	// GetByID returns ErrRecordNotFound when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error)

	List(ctx context.Context) ([]*MedicalRecord, error)

	Update(ctx context.Context, r *MedicalRecord) error

	Delete(ctx context.Context, id uuid.UUID) error

	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsForPatient checks the one-record-per-patient rule pre-write.
	ExistsForPatient(ctx context.Context, patientID uuid.UUID, excludeID *uuid.UUID) (bool, error)
}
