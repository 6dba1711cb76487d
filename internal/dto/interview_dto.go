package dto

import (
	"time"

	"github.com/buddybud/buddybud-api/internal/models"
)

// InterviewQuestionResponse serializes one generated interview question.
type InterviewQuestionResponse struct {
	QuestionNumber int    `json:"question_number"`
	QuestionType   string `json:"question_type"`
	QuestionText   string `json:"question_text"`
}

// InterviewSessionResponse is returned when the student opens the interview.
type InterviewSessionResponse struct {
	ID           uint                        `json:"id"`
	SubmissionID uint                        `json:"submission_id"`
	Status       string                      `json:"status"`
	StartedAt    time.Time                   `json:"started_at"`
	Questions    []InterviewQuestionResponse `json:"questions"`
}

// InterviewResultResponse summarizes the scored interview.
type InterviewResultResponse struct {
	Status                       string     `json:"status"`
	CompletedAt                  *time.Time `json:"completed_at"`
	DurationSeconds              int        `json:"duration_seconds"`
	ProblemSolvingScore          int        `json:"problem_solving_score"`
	ConceptualUnderstandingScore int        `json:"conceptual_understanding_score"`
	CreativeApplicationScore     int        `json:"creative_application_score"`
	StrongMoments                []string   `json:"strong_moments"`
	DevelopmentAreas             []string   `json:"development_areas"`
	OverallAnalysis              string     `json:"overall_analysis"`
}

// NewInterviewSessionResponse converts an InterviewSession model into a DTO.
func NewInterviewSessionResponse(model models.InterviewSession) InterviewSessionResponse {
	questions := make([]InterviewQuestionResponse, 0, len(model.Questions))
	for _, question := range model.Questions {
		questions = append(questions, InterviewQuestionResponse{
			QuestionNumber: question.QuestionNumber,
			QuestionType:   question.QuestionType,
			QuestionText:   question.QuestionText,
		})
	}

	return InterviewSessionResponse{
		ID:           model.ID,
		SubmissionID: model.SubmissionID,
		Status:       model.Status,
		StartedAt:    model.StartedAt,
		Questions:    questions,
	}
}

// NewInterviewResultResponse converts a scored InterviewSession into a DTO.
func NewInterviewResultResponse(model models.InterviewSession) InterviewResultResponse {
	return InterviewResultResponse{
		Status:                       model.Status,
		CompletedAt:                  model.CompletedAt,
		DurationSeconds:              model.Duration,
		ProblemSolvingScore:          model.ProblemSolvingScore,
		ConceptualUnderstandingScore: model.ConceptualUnderstandingScore,
		CreativeApplicationScore:     model.CreativeApplicationScore,
		StrongMoments:                model.StrongMomentList(),
		DevelopmentAreas:             model.DevelopmentAreaList(),
		OverallAnalysis:              model.OverallAnalysis,
	}
}
