package appointment

import "context"

type Repository interface {
	// Create persists a new appointment. Returns ErrExaminationLinked when the
	// examination unique index rejects the row.
	Create(ctx context.Context, a *Appointment) error

	// GetByID returns ErrAppointmentNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*Appointment, error)

	List(ctx context.Context) ([]*Appointment, error)

	Update(ctx context.Context, a *Appointment) error

	// Delete removes the appointment and, by cascade policy, its linked
	// examination.
	Delete(ctx context.Context, id int64) error

	Exists(ctx context.Context, id int64) (bool, error)

	// ExaminationLinked reports whether any appointment already references the
	// examination, optionally excluding one appointment row.
	ExaminationLinked(ctx context.Context, examinationID int64, excludeID *int64) (bool, error)
}
