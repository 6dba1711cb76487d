package dto

import (
	"time"

	"github.com/buddybud/buddybud-api/internal/models"
)

// CodeEntryRequest is the payload for the student code-entry step.
type CodeEntryRequest struct {
	Code string `json:"code" validate:"required,min=10,max=20"`
}

// SubmissionCreateRequest describes the multipart payload for answer upload.
// At least one of answer text or answer file must be provided; the file is
// delivered alongside this form payload.
type SubmissionCreateRequest struct {
	StudentName string `form:"student_name" validate:"required,min=2,max=200"`
	AnswerText  string `form:"answer_text" validate:"omitempty,max=50000"`
}

// SubmissionResponse is returned to API clients when viewing a submission.
type SubmissionResponse struct {
	ID                  uint       `json:"id"`
	AssignmentID        uint       `json:"assignment_id"`
	StudentName         string     `json:"student_name"`
	AnswerText          string     `json:"answer_text"`
	AnswerFileURL       string     `json:"answer_file_url"`
	Status              string     `json:"status"`
	WrittenScore        int        `json:"written_score"`
	InterviewScore      int        `json:"interview_score"`
	OverallScore        int        `json:"overall_score"`
	OverallStrengths    []string   `json:"overall_strengths"`
	OverallImprovements []string   `json:"overall_improvements"`
	AnalysisCompletedAt *time.Time `json:"analysis_completed_at"`
	CreatedAt           time.Time  `json:"created_at"`
}

// QuestionFeedbackResponse serializes one per-question feedback row.
type QuestionFeedbackResponse struct {
	QuestionNumber   int      `json:"question_number"`
	QuestionTitle    string   `json:"question_title"`
	MarksAwarded     int      `json:"marks_awarded"`
	MarksTotal       int      `json:"marks_total"`
	Percentage       int      `json:"percentage"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	DetailedAnalysis string   `json:"detailed_analysis,omitempty"`
}

// WrittenFeedbackResponse is the written-analysis view: the submission plus
// its per-question feedback.
type WrittenFeedbackResponse struct {
	Submission SubmissionResponse         `json:"submission"`
	Questions  []QuestionFeedbackResponse `json:"questions"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:                  model.ID,
		AssignmentID:        model.AssignmentID,
		StudentName:         model.StudentName,
		AnswerText:          model.AnswerText,
		AnswerFileURL:       model.AnswerFileURL,
		Status:              model.Status,
		WrittenScore:        model.WrittenScore,
		InterviewScore:      model.InterviewScore,
		OverallScore:        model.OverallScore,
		OverallStrengths:    model.OverallStrengthList(),
		OverallImprovements: model.OverallImprovementList(),
		AnalysisCompletedAt: model.AnalysisCompletedAt,
		CreatedAt:           model.CreatedAt,
	}
}

// NewQuestionFeedbackResponse converts a QuestionFeedback model into a DTO.
func NewQuestionFeedbackResponse(model models.QuestionFeedback) QuestionFeedbackResponse {
	return QuestionFeedbackResponse{
		QuestionNumber:   model.QuestionNumber,
		QuestionTitle:    model.QuestionTitle,
		MarksAwarded:     model.MarksAwarded,
		MarksTotal:       model.MarksTotal,
		Percentage:       model.Percentage,
		Strengths:        model.StrengthList(),
		Improvements:     model.ImprovementList(),
		DetailedAnalysis: model.DetailedAnalysis,
	}
}

// NewQuestionFeedbackResponseSlice converts feedback models into DTOs.
func NewQuestionFeedbackResponseSlice(feedbacks []models.QuestionFeedback) []QuestionFeedbackResponse {
	responses := make([]QuestionFeedbackResponse, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		responses = append(responses, NewQuestionFeedbackResponse(feedback))
	}

	return responses
}
