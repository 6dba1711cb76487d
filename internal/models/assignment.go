package models

import "time"

// Assignment represents a homework unit issued by a teacher and identified by
// a unique human-enterable code.
type Assignment struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	TeacherID    uint         `gorm:"not null" json:"teacher_id"`
	Code         string       `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Subject      string       `gorm:"size:100;not null" json:"subject"`
	Level        string       `gorm:"size:100;not null" json:"level"`
	ClassName    string       `gorm:"size:100" json:"class_name"`
	DueDate      time.Time    `gorm:"not null" json:"due_date"`
	TotalMarks   int          `gorm:"not null" json:"total_marks"`
	NumQuestions int          `gorm:"not null" json:"num_questions"`
	Instructions string       `gorm:"type:text" json:"instructions"`
	Status       string       `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Teacher      Teacher      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Attachments  []Attachment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"attachments"`
	Submissions  []Submission `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

const (
	// AssignmentStatusActive means students may still enter the code.
	AssignmentStatusActive = "active"
	// AssignmentStatusInactive means code entry is closed.
	AssignmentStatusInactive = "inactive"
)

// IsActive reports whether students can still join the assignment.
func (a Assignment) IsActive() bool {
	return a.Status == AssignmentStatusActive
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}

// Attachment is a teacher-uploaded supporting file for an assignment.
type Attachment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssignmentID uint      `gorm:"not null;index" json:"assignment_id"`
	FileType     string    `gorm:"size:20;not null" json:"file_type"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	FileURL      string    `gorm:"size:512;not null" json:"file_url"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	AttachmentTypeQuestions    = "questions"
	AttachmentTypeMarkScheme   = "mark_scheme"
	AttachmentTypeModelAnswers = "model_answers"
	AttachmentTypeTextbook     = "textbook"
)
