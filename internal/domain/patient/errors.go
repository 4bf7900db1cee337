package patient

import "errors"

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrPatientAlreadyExists = errors.New("a patient with this AMKA already exists")
	ErrPatientReferenced    = errors.New("cannot delete a patient that is still referenced")
	ErrDoctorRequired       = errors.New("patient must reference an existing doctor")
)
