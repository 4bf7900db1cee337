package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthcrm/healthcrm-api/internal/domain/appointment"
	"github.com/healthcrm/healthcrm-api/internal/domain/doctor"
	"github.com/healthcrm/healthcrm-api/internal/domain/examination"
	mr "github.com/healthcrm/healthcrm-api/internal/domain/medicalrecord"
	"github.com/healthcrm/healthcrm-api/internal/domain/patient"
	"github.com/healthcrm/healthcrm-api/internal/service"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, doctor.ErrDoctorNotFound),
		errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, mr.ErrRecordNotFound),
		errors.Is(err, examination.ErrExaminationNotFound),
		errors.Is(err, examination.ErrResultNotFound),
		errors.Is(err, appointment.ErrAppointmentNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, doctor.ErrDoctorAlreadyExists),
		errors.Is(err, patient.ErrPatientAlreadyExists),
		errors.Is(err, mr.ErrRecordAlreadyExists),
		errors.Is(err, appointment.ErrExaminationLinked),
		errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, doctor.ErrDoctorHasPatients),
		errors.Is(err, doctor.ErrDoctorHasRecords),
		errors.Is(err, patient.ErrPatientReferenced),
		errors.Is(err, patient.ErrDoctorRequired),
		errors.Is(err, examination.ErrInvalidResultFile),
		errors.Is(err, examination.ErrNegativePrice),
		errors.Is(err, appointment.ErrDateInPast),
		errors.Is(err, appointment.ErrNegativeTotalPrice),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrWrongPassword):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func parseID(c *gin.Context, param string) (int64, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a positive integer"})
		return 0, false
	}
	return id, true
}

// caller extracts the audit identity placed in the context by the auth
// middleware.
func caller(c *gin.Context) service.Caller {
	cl := service.Caller{IP: c.ClientIP()}
	if claims := claimsFrom(c); claims != nil {
		cl.UserID = claims.UserID
		if len(claims.Roles) > 0 {
			cl.Role = claims.Roles[0]
		}
	}
	return cl
}
