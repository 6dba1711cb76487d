package dto

import (
	"github.com/buddybud/buddybud-api/internal/models"
)

// PriorityTopicResponse serializes one study-plan focus area.
type PriorityTopicResponse struct {
	Topic        string   `json:"topic"`
	Priority     string   `json:"priority"`
	CurrentScore int      `json:"current_score"`
	Actions      []string `json:"actions"`
}

// StudyPlanResponse serializes a generated study plan.
type StudyPlanResponse struct {
	PriorityTopics          []PriorityTopicResponse `json:"priority_topics"`
	StrengthTopics          []string                `json:"strength_topics"`
	WrittenVsVerbalAnalysis string                  `json:"written_vs_verbal_analysis"`
	LearningStyleInsights   string                  `json:"learning_style_insights"`
}

// FinalResultsResponse aggregates everything the results page shows. Reading
// it never mutates any record.
type FinalResultsResponse struct {
	Submission SubmissionResponse         `json:"submission"`
	Assignment AssignmentResponse         `json:"assignment"`
	Questions  []QuestionFeedbackResponse `json:"questions"`
	Interview  *InterviewResultResponse   `json:"interview"`
	StudyPlan  *StudyPlanResponse         `json:"study_plan"`
}

// NewStudyPlanResponse converts a StudyPlan model into a DTO.
func NewStudyPlanResponse(model models.StudyPlan) StudyPlanResponse {
	topics := model.PriorityTopicList()
	priorityTopics := make([]PriorityTopicResponse, 0, len(topics))
	for _, topic := range topics {
		priorityTopics = append(priorityTopics, PriorityTopicResponse{
			Topic:        topic.Topic,
			Priority:     topic.Priority,
			CurrentScore: topic.CurrentScore,
			Actions:      topic.Actions,
		})
	}

	return StudyPlanResponse{
		PriorityTopics:          priorityTopics,
		StrengthTopics:          model.StrengthTopicList(),
		WrittenVsVerbalAnalysis: model.WrittenVsVerbalAnalysis,
		LearningStyleInsights:   model.LearningStyleInsights,
	}
}
