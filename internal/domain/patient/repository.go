package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient. Returns ErrPatientAlreadyExists when the
	// AMKA or email unique index rejects the row.
	Create(ctx context.Context, p *Patient) error

	// GetByID returns ErrPatientNotFound when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	List(ctx context.Context) ([]*Patient, error)

	Update(ctx context.Context, p *Patient) error

	// Delete removes the patient. Returns ErrPatientReferenced when a
	// restricting foreign key (its medical record) still points at the row.
	Delete(ctx context.Context, id uuid.UUID) error

	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	ExistsByAMKA(ctx context.Context, amka string, excludeID *uuid.UUID) (bool, error)

	// HasMedicalRecord reports whether a medical record row references the patient.
	HasMedicalRecord(ctx context.Context, id uuid.UUID) (bool, error)
}
