package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDateInPast          = errors.New("appointment date cannot be in the past")
	ErrExaminationLinked   = errors.New("this examination is already linked to another appointment")
	ErrNegativeTotalPrice  = errors.New("total price must be a positive value")
)
