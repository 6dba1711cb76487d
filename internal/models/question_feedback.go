package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionFeedback stores per-question grading detail for a submission.
// Rows are immutable once created; question numbers are unique per submission.
type QuestionFeedback struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	SubmissionID     uint           `gorm:"not null;uniqueIndex:idx_submission_question" json:"submission_id"`
	QuestionNumber   int            `gorm:"not null;uniqueIndex:idx_submission_question" json:"question_number"`
	QuestionTitle    string         `gorm:"size:200;not null" json:"question_title"`
	MarksAwarded     int            `gorm:"not null" json:"marks_awarded"`
	MarksTotal       int            `gorm:"not null" json:"marks_total"`
	Percentage       int            `gorm:"not null" json:"percentage"`
	Strengths        datatypes.JSON `gorm:"type:json" json:"-"`
	Improvements     datatypes.JSON `gorm:"type:json" json:"-"`
	DetailedAnalysis string         `gorm:"type:text" json:"detailed_analysis"`
	CreatedAt        time.Time      `json:"created_at"`
}

// SetStrengths stores the ordered strengths list in the JSON column.
func (q *QuestionFeedback) SetStrengths(items []string) {
	q.Strengths = encodeJSON(items)
}

// SetImprovements stores the ordered improvements list in the JSON column.
func (q *QuestionFeedback) SetImprovements(items []string) {
	q.Improvements = encodeJSON(items)
}

// StrengthList deserializes the stored strengths.
func (q QuestionFeedback) StrengthList() []string {
	return decodeStringList(q.Strengths)
}

// ImprovementList deserializes the stored improvements.
func (q QuestionFeedback) ImprovementList() []string {
	return decodeStringList(q.Improvements)
}

// IsWeak reports whether the question falls in the weak bucket used for study plans.
func (q QuestionFeedback) IsWeak() bool {
	return q.Percentage < 70
}

// IsStrong reports whether the question falls in the strong bucket used for study plans.
func (q QuestionFeedback) IsStrong() bool {
	return q.Percentage >= 80
}
