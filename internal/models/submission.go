package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission is one student's attempt at an assignment. It carries the written
// score from AI analysis and, once the interview is scored, the combined
// overall score.
type Submission struct {
	ID                  uint               `gorm:"primaryKey" json:"id"`
	AssignmentID        uint               `gorm:"not null;index" json:"assignment_id"`
	StudentName         string             `gorm:"size:200;not null" json:"student_name"`
	AnswerText          string             `gorm:"type:text" json:"answer_text"`
	AnswerFileURL       string             `gorm:"size:512" json:"answer_file_url"`
	Status              string             `gorm:"size:20;not null;default:pending" json:"status"`
	WrittenScore        int                `gorm:"not null;default:0" json:"written_score"`
	InterviewScore      int                `gorm:"not null;default:0" json:"interview_score"`
	OverallScore        int                `gorm:"not null;default:0" json:"overall_score"`
	OverallStrengths    datatypes.JSON     `gorm:"type:json" json:"-"`
	OverallImprovements datatypes.JSON     `gorm:"type:json" json:"-"`
	AnalysisCompletedAt *time.Time         `json:"analysis_completed_at"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	Assignment          Assignment         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	QuestionFeedbacks   []QuestionFeedback `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Interview           *InterviewSession  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	StudyPlan           *StudyPlan         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

const (
	// SubmissionStatusPending is the initial placeholder state.
	SubmissionStatusPending = "pending"
	// SubmissionStatusAnalyzing means written analysis has not yet run.
	SubmissionStatusAnalyzing = "analyzing"
	// SubmissionStatusAnalyzed means written analysis succeeded.
	SubmissionStatusAnalyzed = "analyzed"
	// SubmissionStatusComplete means the interview has been scored.
	SubmissionStatusComplete = "complete"
	// SubmissionStatusError is terminal for the current attempt.
	SubmissionStatusError = "error"
)

// SetOverallStrengths stores the ordered strengths list in the JSON column.
func (s *Submission) SetOverallStrengths(items []string) {
	s.OverallStrengths = encodeJSON(items)
}

// SetOverallImprovements stores the ordered improvements list in the JSON column.
func (s *Submission) SetOverallImprovements(items []string) {
	s.OverallImprovements = encodeJSON(items)
}

// OverallStrengthList deserializes the stored strengths.
func (s Submission) OverallStrengthList() []string {
	return decodeStringList(s.OverallStrengths)
}

// OverallImprovementList deserializes the stored improvements.
func (s Submission) OverallImprovementList() []string {
	return decodeStringList(s.OverallImprovements)
}

// CombinedScore returns the floor average of the written and interview scores.
func CombinedScore(written, interview int) int {
	return (written + interview) / 2
}
