package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mr "github.com/healthcrm/healthcrm-api/internal/domain/medicalrecord"
	"github.com/healthcrm/healthcrm-api/internal/service"
)

type MedicalRecordHandler struct {
	svc *service.MedicalRecordService
}

func NewMedicalRecordHandler(svc *service.MedicalRecordService) *MedicalRecordHandler {
	return &MedicalRecordHandler{svc: svc}
}

type recordRequest struct {
	PatientID      uuid.UUID `json:"patientId" binding:"required"`
	DoctorID       uuid.UUID `json:"doctorId" binding:"required"`
	AMKA           string    `json:"amka" binding:"required"`
	Disease        string    `json:"disease" binding:"required"`
	MedicalHistory *string   `json:"medicalHistory"`
	Medications    string    `json:"medications" binding:"required"`
}

func (h *MedicalRecordHandler) Create(c *gin.Context) {
	var req recordRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.svc.CreateRecord(c.Request.Context(), &mr.CreateRecordCommand{
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		AMKA:           req.AMKA,
		Disease:        req.Disease,
		MedicalHistory: req.MedicalHistory,
		Medications:    req.Medications,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, r)
}

func (h *MedicalRecordHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	r, err := h.svc.GetRecord(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, r)
}

func (h *MedicalRecordHandler) List(c *gin.Context) {
	records, err := h.svc.ListRecords(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if records == nil {
		records = []*mr.MedicalRecord{}
	}
	respondOK(c, records)
}

func (h *MedicalRecordHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req recordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.svc.UpdateRecord(c.Request.Context(), &mr.UpdateRecordCommand{
		ID:             id,
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		AMKA:           req.AMKA,
		Disease:        req.Disease,
		MedicalHistory: req.MedicalHistory,
		Medications:    req.Medications,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (h *MedicalRecordHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteRecord(c.Request.Context(), id, caller(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}
