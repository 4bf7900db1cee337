package examination

import "context"

type Repository interface {
	Create(ctx context.Context, e *Examination) error

	// GetByID returns ErrExaminationNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*Examination, error)

	List(ctx context.Context) ([]*Examination, error)

	Update(ctx context.Context, e *Examination) error

	// Delete detaches any appointment link before removing the row.
	Delete(ctx context.Context, id int64) error

	Exists(ctx context.Context, id int64) (bool, error)

	// GetResult fetches only the stored document bytes.
	GetResult(ctx context.Context, id int64) ([]byte, error)
}
