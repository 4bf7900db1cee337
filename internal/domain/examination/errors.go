package examination

import "errors"

var (
	ErrExaminationNotFound = errors.New("examination not found")
	ErrInvalidExamType     = errors.New("invalid exam type")
	ErrInvalidExamStatus   = errors.New("invalid exam status")
	ErrNegativePrice       = errors.New("price cannot be negative")
	ErrResultNotFound      = errors.New("no result document found for this examination")
	ErrInvalidResultFile   = errors.New("result document must be a PDF of at most 5 MB")
)
