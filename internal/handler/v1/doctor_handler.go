package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/healthcrm/healthcrm-api/internal/domain/doctor"
	"github.com/healthcrm/healthcrm-api/internal/service"
)

type DoctorHandler struct {
	svc *service.DoctorService
}

func NewDoctorHandler(svc *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{svc: svc}
}

type doctorRequest struct {
	AMKA           string `json:"amka" binding:"required"`
	FullName       string `json:"fullName" binding:"required"`
	Email          string `json:"email" binding:"required"`
	PhoneNumber    string `json:"phoneNumber" binding:"required"`
	Address        string `json:"address" binding:"required"`
	City           string `json:"city" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req doctorRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.svc.CreateDoctor(c.Request.Context(), &doctor.CreateDoctorCommand{
		AMKA:           req.AMKA,
		FullName:       req.FullName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Address:        req.Address,
		City:           req.City,
		Specialization: req.Specialization,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, d)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	d, err := h.svc.GetDoctor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.svc.ListDoctors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if doctors == nil {
		doctors = []*doctor.Doctor{}
	}
	respondOK(c, doctors)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req doctorRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.svc.UpdateDoctor(c.Request.Context(), &doctor.UpdateDoctorCommand{
		ID:             id,
		AMKA:           req.AMKA,
		FullName:       req.FullName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Address:        req.Address,
		City:           req.City,
		Specialization: req.Specialization,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteDoctor(c.Request.Context(), id, caller(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}
