package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthcrm/healthcrm-api/internal/domain/appointment"
	"github.com/healthcrm/healthcrm-api/internal/domain/examination"
	"github.com/healthcrm/healthcrm-api/internal/service"
)

type AppointmentHandler struct {
	svc *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

type appointmentRequest struct {
	FullName         string     `json:"fullName" binding:"required"`
	PhoneNumber      string     `json:"phoneNumber" binding:"required"`
	Email            *string    `json:"email"`
	AppointmentDate  time.Time  `json:"appointmentDate" binding:"required"`
	ExamType         int        `json:"examType" binding:"required"`
	Status           int        `json:"status" binding:"required"`
	Notes            string     `json:"notes"`
	PatientID        *uuid.UUID `json:"patientId"`
	DoctorID         *uuid.UUID `json:"doctorId"`
	MedicalRecordID  *uuid.UUID `json:"medicalRecordId"`
	ExaminationID    *int64     `json:"examinationId"`
	PrescriptionCode *string    `json:"prescriptionCode"`
	TotalPrice       *float64   `json:"totalPrice"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req appointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.svc.CreateAppointment(c.Request.Context(), &appointment.CreateAppointmentCommand{
		FullName:         req.FullName,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		AppointmentDate:  req.AppointmentDate,
		ExamType:         examination.ExamType(req.ExamType),
		Status:           examination.ExamStatus(req.Status),
		Notes:            req.Notes,
		PatientID:        req.PatientID,
		DoctorID:         req.DoctorID,
		MedicalRecordID:  req.MedicalRecordID,
		ExaminationID:    req.ExaminationID,
		PrescriptionCode: req.PrescriptionCode,
		TotalPrice:       req.TotalPrice,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, a)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a, err := h.svc.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.svc.ListAppointments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if appointments == nil {
		appointments = []*appointment.Appointment{}
	}
	respondOK(c, appointments)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req appointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.svc.UpdateAppointment(c.Request.Context(), &appointment.UpdateAppointmentCommand{
		ID:               id,
		FullName:         req.FullName,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		AppointmentDate:  req.AppointmentDate,
		ExamType:         examination.ExamType(req.ExamType),
		Status:           examination.ExamStatus(req.Status),
		Notes:            req.Notes,
		PatientID:        req.PatientID,
		DoctorID:         req.DoctorID,
		MedicalRecordID:  req.MedicalRecordID,
		ExaminationID:    req.ExaminationID,
		PrescriptionCode: req.PrescriptionCode,
		TotalPrice:       req.TotalPrice,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteAppointment(c.Request.Context(), id, caller(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}
