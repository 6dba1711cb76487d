package models

import (
	"time"

	"gorm.io/datatypes"
)

// InterviewSession is the verbal-assessment record attached one-to-one to a
// submission. The recording URL is written by a separate capture request while
// the interview is in progress; completion re-reads the row to observe it.
type InterviewSession struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SubmissionID uint       `gorm:"not null;uniqueIndex" json:"submission_id"`
	StartedAt    time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	Duration     int        `gorm:"not null;default:0" json:"duration_seconds"`
	RecordingURL string     `gorm:"size:512" json:"recording_url"`
	Transcript   string     `gorm:"type:text" json:"transcription"`
	Status       string     `gorm:"size:20;not null;default:pending" json:"status"`

	ProblemSolvingScore          int `gorm:"not null;default:0" json:"problem_solving_score"`
	ConceptualUnderstandingScore int `gorm:"not null;default:0" json:"conceptual_understanding_score"`
	CreativeApplicationScore     int `gorm:"not null;default:0" json:"creative_application_score"`

	StrongMoments    datatypes.JSON `gorm:"type:json" json:"-"`
	DevelopmentAreas datatypes.JSON `gorm:"type:json" json:"-"`
	OverallAnalysis  string         `gorm:"type:text" json:"overall_analysis"`

	Questions []InterviewQuestion `gorm:"foreignKey:InterviewID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"questions"`
}

const (
	InterviewStatusPending    = "pending"
	InterviewStatusInProgress = "in_progress"
	InterviewStatusCompleted  = "completed"
)

// SetStrongMoments stores the ordered strong-moments list in the JSON column.
func (i *InterviewSession) SetStrongMoments(items []string) {
	i.StrongMoments = encodeJSON(items)
}

// SetDevelopmentAreas stores the ordered development-areas list in the JSON column.
func (i *InterviewSession) SetDevelopmentAreas(items []string) {
	i.DevelopmentAreas = encodeJSON(items)
}

// StrongMomentList deserializes the stored strong moments.
func (i InterviewSession) StrongMomentList() []string {
	return decodeStringList(i.StrongMoments)
}

// DevelopmentAreaList deserializes the stored development areas.
func (i InterviewSession) DevelopmentAreaList() []string {
	return decodeStringList(i.DevelopmentAreas)
}

// HasRecording reports whether a capture request has stored a recording.
func (i InterviewSession) HasRecording() bool {
	return i.RecordingURL != ""
}

// InterviewQuestion is one AI-generated question within a session.
type InterviewQuestion struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	InterviewID     uint      `gorm:"not null;index" json:"interview_id"`
	QuestionNumber  int       `gorm:"not null" json:"question_number"`
	QuestionType    string    `gorm:"size:50;not null" json:"question_type"`
	QuestionText    string    `gorm:"type:text;not null" json:"question_text"`
	ResponseQuality int       `gorm:"not null;default:0" json:"response_quality"`
	CreatedAt       time.Time `json:"created_at"`
}

const (
	QuestionTypeProcess     = "process"
	QuestionTypeConcept     = "concept"
	QuestionTypeApplication = "application"
	QuestionTypeReflection  = "reflection"
	QuestionTypeExtension   = "extension"
)

// InterviewQuestionTypes lists the five fixed categories in generation order.
func InterviewQuestionTypes() []string {
	return []string{
		QuestionTypeProcess,
		QuestionTypeConcept,
		QuestionTypeApplication,
		QuestionTypeReflection,
		QuestionTypeExtension,
	}
}
