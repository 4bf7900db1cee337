package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthcrm/healthcrm-api/internal/domain/patient"
	"github.com/healthcrm/healthcrm-api/internal/service"
)

type PatientHandler struct {
	svc *service.PatientService
}

func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

type createPatientRequest struct {
	DoctorID    uuid.UUID `json:"doctorId" binding:"required"`
	AMKA        string    `json:"amka" binding:"required"`
	FullName    string    `json:"fullName" binding:"required"`
	Email       *string   `json:"email"`
	PhoneNumber string    `json:"phoneNumber" binding:"required"`
	Address     string    `json:"address" binding:"required"`
	City        string    `json:"city" binding:"required"`
}

type updatePatientRequest struct {
	DoctorID        uuid.UUID  `json:"doctorId" binding:"required"`
	MedicalRecordID *uuid.UUID `json:"medicalRecordId"`
	AMKA            string     `json:"amka" binding:"required"`
	FullName        string     `json:"fullName" binding:"required"`
	Email           *string    `json:"email"`
	PhoneNumber     string     `json:"phoneNumber" binding:"required"`
	Address         string     `json:"address" binding:"required"`
	City            string     `json:"city" binding:"required"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.CreatePatient(c.Request.Context(), &patient.CreatePatientCommand{
		DoctorID:    req.DoctorID,
		AMKA:        req.AMKA,
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, p)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetPatient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.svc.ListPatients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if patients == nil {
		patients = []*patient.Patient{}
	}
	respondOK(c, patients)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.svc.UpdatePatient(c.Request.Context(), &patient.UpdatePatientCommand{
		ID:              id,
		DoctorID:        req.DoctorID,
		MedicalRecordID: req.MedicalRecordID,
		AMKA:            req.AMKA,
		FullName:        req.FullName,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Address:         req.Address,
		City:            req.City,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePatient(c.Request.Context(), id, caller(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}
