package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new doctor. Returns ErrDoctorAlreadyExists when the
	// AMKA or email unique index rejects the row.
	Create(ctx context.Context, d *Doctor) error

	// GetByID returns ErrDoctorNotFound when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)

	List(ctx context.Context) ([]*Doctor, error)

	Update(ctx context.Context, d *Doctor) error

	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a doctor row with the given id is present.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByAMKA checks business-key uniqueness, optionally excluding a row.
	ExistsByAMKA(ctx context.Context, amka string, excludeID *uuid.UUID) (bool, error)

	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)

	// CountPatients and CountMedicalRecords back the delete-restriction rule.
	CountPatients(ctx context.Context, id uuid.UUID) (int64, error)
	CountMedicalRecords(ctx context.Context, id uuid.UUID) (int64, error)
}
