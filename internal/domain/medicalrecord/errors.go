package medicalrecord

import "errors"

var (
	ErrRecordNotFound      = errors.New("medical record not found")
	ErrRecordAlreadyExists = errors.New("a medical record for this patient already exists")
)
