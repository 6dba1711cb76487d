package dto

import (
	"time"

	"github.com/buddybud/buddybud-api/internal/models"
)

// AssignmentCreateRequest describes the multipart payload for assignment creation.
type AssignmentCreateRequest struct {
	Title        string `form:"title" validate:"required,min=3,max=200"`
	Subject      string `form:"subject" validate:"required,min=3,max=100"`
	Level        string `form:"level" validate:"required,max=100"`
	ClassName    string `form:"class_name" validate:"required,max=100"`
	DueDate      string `form:"due_date" validate:"required"`
	TotalMarks   int    `form:"total_marks" validate:"required,gt=0"`
	NumQuestions int    `form:"num_questions" validate:"required,gt=0"`
	Instructions string `form:"instructions" validate:"omitempty,max=5000"`
}

// AssignmentStatusUpdateRequest toggles an assignment's lifecycle status.
type AssignmentStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// AttachmentResponse serializes an assignment attachment.
type AttachmentResponse struct {
	ID       uint   `json:"id"`
	FileType string `json:"file_type"`
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
}

// AssignmentResponse is returned to API clients when viewing assignments.
type AssignmentResponse struct {
	ID           uint                 `json:"id"`
	Code         string               `json:"code"`
	Title        string               `json:"title"`
	Subject      string               `json:"subject"`
	Level        string               `json:"level"`
	ClassName    string               `json:"class_name"`
	DueDate      time.Time            `json:"due_date"`
	TotalMarks   int                  `json:"total_marks"`
	NumQuestions int                  `json:"num_questions"`
	Instructions string               `json:"instructions"`
	Status       string               `json:"status"`
	Attachments  []AttachmentResponse `json:"attachments"`
	CreatedAt    time.Time            `json:"created_at"`
}

// NewAssignmentResponse converts an Assignment model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	attachments := make([]AttachmentResponse, 0, len(model.Attachments))
	for _, attachment := range model.Attachments {
		attachments = append(attachments, AttachmentResponse{
			ID:       attachment.ID,
			FileType: attachment.FileType,
			FileName: attachment.FileName,
			FileURL:  attachment.FileURL,
		})
	}

	return AssignmentResponse{
		ID:           model.ID,
		Code:         model.Code,
		Title:        model.Title,
		Subject:      model.Subject,
		Level:        model.Level,
		ClassName:    model.ClassName,
		DueDate:      model.DueDate,
		TotalMarks:   model.TotalMarks,
		NumQuestions: model.NumQuestions,
		Instructions: model.Instructions,
		Status:       model.Status,
		Attachments:  attachments,
		CreatedAt:    model.CreatedAt,
	}
}

// NewAssignmentResponseSlice converts assignment models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
