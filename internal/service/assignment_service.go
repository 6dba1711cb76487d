package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/buddybud/buddybud-api/internal/dto"
	"github.com/buddybud/buddybud-api/internal/models"
	"github.com/buddybud/buddybud-api/internal/repository"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// AttachmentUpload pairs an uploaded file with its declared attachment type.
type AttachmentUpload struct {
	FileType string
	File     *multipart.FileHeader
}

// AssignmentService manages teacher-owned assignments.
type AssignmentService interface {
	Create(ctx context.Context, teacherID uint, payload dto.AssignmentCreateRequest, attachments []AttachmentUpload) (dto.AssignmentResponse, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]dto.AssignmentResponse, error)
	UpdateStatus(ctx context.Context, teacherID, id uint, status string) (dto.AssignmentResponse, error)
	GetActiveByCode(ctx context.Context, code string) (models.Assignment, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	uploader    FileUploader
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(repo repository.AssignmentRepository, validate *validator.Validate, uploader FileUploader, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: repo,
		validator:   validate,
		uploader:    uploader,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) Create(ctx context.Context, teacherID uint, payload dto.AssignmentCreateRequest, attachments []AttachmentUpload) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	dueDate, err := time.Parse("2006-01-02", payload.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, fmt.Errorf("invalid due date, use YYYY-MM-DD: %w", err)
	}

	for _, attachment := range attachments {
		if err := validateAttachmentFile(attachment.File); err != nil {
			return dto.AssignmentResponse{}, err
		}
		if !isKnownAttachmentType(attachment.FileType) {
			return dto.AssignmentResponse{}, fmt.Errorf("unknown attachment type: %s", attachment.FileType)
		}
	}

	code, err := s.generateCode(ctx, payload.Subject)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment := models.Assignment{
		TeacherID:    teacherID,
		Code:         code,
		Title:        s.sanitizer.Sanitize(payload.Title),
		Subject:      s.sanitizer.Sanitize(payload.Subject),
		Level:        s.sanitizer.Sanitize(payload.Level),
		ClassName:    s.sanitizer.Sanitize(payload.ClassName),
		DueDate:      dueDate,
		TotalMarks:   payload.TotalMarks,
		NumQuestions: payload.NumQuestions,
		Instructions: s.sanitizer.Sanitize(payload.Instructions),
		Status:       models.AssignmentStatusActive,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	for _, upload := range attachments {
		reader, err := upload.File.Open()
		if err != nil {
			return dto.AssignmentResponse{}, fmt.Errorf("failed to open attachment: %w", err)
		}

		url, err := s.uploader.Upload(ctx, upload.File.Filename, reader)
		reader.Close()
		if err != nil {
			return dto.AssignmentResponse{}, fmt.Errorf("failed to upload attachment: %w", err)
		}

		attachment := models.Attachment{
			AssignmentID: assignment.ID,
			FileType:     upload.FileType,
			FileName:     upload.File.Filename,
			FileURL:      url,
		}
		if err := s.assignments.AddAttachment(ctx, &attachment); err != nil {
			return dto.AssignmentResponse{}, err
		}
	}

	created, err := s.assignments.GetByID(ctx, assignment.ID)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", created.ID).Str("code", created.Code).Msg("assignment created")

	return dto.NewAssignmentResponse(created), nil
}

func (s *assignmentService) ListByTeacher(ctx context.Context, teacherID uint) ([]dto.AssignmentResponse, error) {
	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(assignments), nil
}

func (s *assignmentService) UpdateStatus(ctx context.Context, teacherID, id uint, status string) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	if assignment.TeacherID != teacherID {
		return dto.AssignmentResponse{}, ErrAssignmentNotFound
	}

	assignment.Status = status
	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", id).Str("status", status).Msg("assignment status updated")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) GetActiveByCode(ctx context.Context, code string) (models.Assignment, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	assignment, err := s.assignments.GetByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrAssignmentNotFound
		}
		return models.Assignment{}, err
	}

	if !assignment.IsActive() {
		return models.Assignment{}, ErrAssignmentInactive
	}

	return assignment, nil
}

// generateCode builds a globally unique code of the form PRE-XXXX-XXXX from
// the subject prefix and an uppercase-alphanumeric random source.
func (s *assignmentService) generateCode(ctx context.Context, subject string) (string, error) {
	prefix := strings.ToUpper(subject)
	prefix = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, prefix)
	if len(prefix) < 3 {
		prefix = (prefix + "XXX")[:3]
	} else {
		prefix = prefix[:3]
	}

	for attempt := 0; attempt < 10; attempt++ {
		random, err := randomCode(8)
		if err != nil {
			return "", err
		}

		code := fmt.Sprintf("%s-%s-%s", prefix, random[:4], random[4:])

		exists, err := s.assignments.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique assignment code")
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = codeCharset[int(b)%len(codeCharset)]
	}

	return string(out), nil
}

func isKnownAttachmentType(fileType string) bool {
	switch fileType {
	case models.AttachmentTypeQuestions, models.AttachmentTypeMarkScheme,
		models.AttachmentTypeModelAnswers, models.AttachmentTypeTextbook:
		return true
	default:
		return false
	}
}
