package v1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthcrm/healthcrm-api/internal/domain/examination"
	"github.com/healthcrm/healthcrm-api/internal/service"
)

type ExaminationHandler struct {
	svc *service.ExaminationService
}

func NewExaminationHandler(svc *service.ExaminationService) *ExaminationHandler {
	return &ExaminationHandler{svc: svc}
}

// examinationForm is bound from multipart form data so the result document
// can travel with the rest of the fields.
type examinationForm struct {
	PatientID   string  `form:"patientId"`
	DoctorID    string  `form:"doctorId"`
	Type        int     `form:"type" binding:"required"`
	Status      int     `form:"status" binding:"required"`
	Price       float64 `form:"price"`
	Description string  `form:"description"`
}

// formUUID parses an optional UUID form value; empty means absent.
func formUUID(c *gin.Context, raw, field string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+field+": must be a valid UUID")
		return nil, false
	}
	return &id, true
}

func (h *ExaminationHandler) Create(c *gin.Context) {
	var form examinationForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	patientID, ok := formUUID(c, form.PatientID, "patientId")
	if !ok {
		return
	}
	doctorID, ok := formUUID(c, form.DoctorID, "doctorId")
	if !ok {
		return
	}
	result, ok := readResultFile(c)
	if !ok {
		return
	}

	e, err := h.svc.CreateExamination(c.Request.Context(), &examination.CreateExaminationCommand{
		PatientID:   patientID,
		DoctorID:    doctorID,
		Type:        examination.ExamType(form.Type),
		Status:      examination.ExamStatus(form.Status),
		Price:       form.Price,
		Description: form.Description,
		ResultPDF:   result,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, e)
}

func (h *ExaminationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	e, err := h.svc.GetExamination(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, e)
}

func (h *ExaminationHandler) List(c *gin.Context) {
	exams, err := h.svc.ListExaminations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if exams == nil {
		exams = []*examination.Examination{}
	}
	respondOK(c, exams)
}

func (h *ExaminationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var form examinationForm
	if err := c.ShouldBind(&form); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	patientID, ok := formUUID(c, form.PatientID, "patientId")
	if !ok {
		return
	}
	doctorID, ok := formUUID(c, form.DoctorID, "doctorId")
	if !ok {
		return
	}
	result, ok := readResultFile(c)
	if !ok {
		return
	}

	err := h.svc.UpdateExamination(c.Request.Context(), &examination.UpdateExaminationCommand{
		ID:          id,
		PatientID:   patientID,
		DoctorID:    doctorID,
		Type:        examination.ExamType(form.Type),
		Status:      examination.ExamStatus(form.Status),
		Price:       form.Price,
		Description: form.Description,
		ResultPDF:   result,
	}, caller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (h *ExaminationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteExamination(c.Request.Context(), id, caller(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

// DownloadResult streams the stored result document as a PDF attachment.
func (h *ExaminationHandler) DownloadResult(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	data, err := h.svc.GetResult(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="Examination_%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", data)
}

// ExamTypes serves the integer→name lookup; the frontend builds its pickers
// from this.
func (h *ExaminationHandler) ExamTypes(c *gin.Context) {
	respondOK(c, examination.ExamTypeNames())
}

func (h *ExaminationHandler) ExamStatuses(c *gin.Context) {
	respondOK(c, examination.ExamStatusNames())
}

// readResultFile pulls the optional "resultPdf" upload out of the multipart
// form. A nil slice means no file was sent.
func readResultFile(c *gin.Context) ([]byte, bool) {
	fh, err := c.FormFile("resultPdf")
	if err != nil {
		return nil, true
	}

	if err := service.ValidateResultUpload(fh.Size, fh.Header.Get("Content-Type")); err != nil {
		respondServiceError(c, err)
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read uploaded file")
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxResultSize+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read uploaded file")
		return nil, false
	}
	return data, true
}
