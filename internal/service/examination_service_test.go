package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/healthcrm/healthcrm-api/internal/domain/examination"
)

func newExaminationService(repo *mockExaminationRepo) *ExaminationService {
	return NewExaminationService(repo, &mockPatientRepo{}, &mockDoctorRepo{}, newTestAudit(), nil, zap.NewNop())
}

func TestCreateExamination(t *testing.T) {
	repo := &mockExaminationRepo{}
	svc := newExaminationService(repo)

	e, err := svc.CreateExamination(context.Background(), &examination.CreateExaminationCommand{
		Type:   examination.TypeMRI,
		Status: examination.StatusScheduled,
		Price:  120.50,
	}, Caller{})

	assert.NoError(t, err)
	assert.NotNil(t, e)
	assert.Equal(t, int32(1), repo.CreateCalls)
}

func TestCreateExaminationNegativePrice(t *testing.T) {
	repo := &mockExaminationRepo{}
	svc := newExaminationService(repo)

	_, err := svc.CreateExamination(context.Background(), &examination.CreateExaminationCommand{
		Type:   examination.TypeXRay,
		Status: examination.StatusPending,
		Price:  -1,
	}, Caller{})

	assert.ErrorIs(t, err, examination.ErrNegativePrice)
	assert.Equal(t, int32(0), repo.CreateCalls)
}

func TestCreateExaminationInvalidType(t *testing.T) {
	svc := newExaminationService(&mockExaminationRepo{})

	_, err := svc.CreateExamination(context.Background(), &examination.CreateExaminationCommand{
		Type:   examination.ExamType(0),
		Status: examination.StatusPending,
	}, Caller{})

	var validErr *ValidationError
	assert.ErrorAs(t, err, &validErr)
}

func TestCreateExaminationRejectsNonPDF(t *testing.T) {
	svc := newExaminationService(&mockExaminationRepo{})

	_, err := svc.CreateExamination(context.Background(), &examination.CreateExaminationCommand{
		Type:      examination.TypeBloodTest,
		Status:    examination.StatusCompleted,
		ResultPDF: []byte("not a pdf"),
	}, Caller{})

	assert.ErrorIs(t, err, examination.ErrInvalidResultFile)
}

func TestCreateExaminationRejectsOversizedPDF(t *testing.T) {
	svc := newExaminationService(&mockExaminationRepo{})

	big := append([]byte("%PDF"), bytes.Repeat([]byte{0}, MaxResultSize)...)
	_, err := svc.CreateExamination(context.Background(), &examination.CreateExaminationCommand{
		Type:      examination.TypeBloodTest,
		Status:    examination.StatusCompleted,
		ResultPDF: big,
	}, Caller{})

	assert.ErrorIs(t, err, examination.ErrInvalidResultFile)
}

func TestCreateExaminationAcceptsPDF(t *testing.T) {
	var stored *examination.Examination
	repo := &mockExaminationRepo{
		CreateFunc: func(ctx context.Context, e *examination.Examination) error {
			stored = e
			return nil
		},
	}
	svc := newExaminationService(repo)

	_, err := svc.CreateExamination(context.Background(), &examination.CreateExaminationCommand{
		Type:      examination.TypeBloodTest,
		Status:    examination.StatusCompleted,
		ResultPDF: []byte("%PDF-1.7 fake body"),
	}, Caller{})

	assert.NoError(t, err)
	assert.True(t, stored.HasResult())
}

func TestValidateResultUpload(t *testing.T) {
	cases := []struct {
		name        string
		size        int64
		contentType string
		wantErr     bool
	}{
		{"valid", 1024, "application/pdf", false},
		{"at limit", MaxResultSize, "application/pdf", false},
		{"too large", MaxResultSize + 1, "application/pdf", true},
		{"empty", 0, "application/pdf", true},
		{"wrong type", 1024, "image/png", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateResultUpload(tc.size, tc.contentType)
			if tc.wantErr {
				assert.ErrorIs(t, err, examination.ErrInvalidResultFile)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetResultMissing(t *testing.T) {
	repo := &mockExaminationRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*examination.Examination, error) {
			return &examination.Examination{ID: id}, nil
		},
	}
	svc := newExaminationService(repo)

	_, err := svc.GetResult(context.Background(), 1)
	assert.ErrorIs(t, err, examination.ErrResultNotFound)
}
