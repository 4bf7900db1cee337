package doctor

import "errors"

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrDoctorAlreadyExists = errors.New("a doctor with this AMKA or email already exists")
	ErrDoctorHasPatients   = errors.New("cannot delete a doctor with associated patients")
	ErrDoctorHasRecords    = errors.New("cannot delete a doctor with associated medical records")
)
