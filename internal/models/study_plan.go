package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// PriorityTopic is one focus area inside a study plan.
type PriorityTopic struct {
	Topic        string   `json:"topic"`
	Priority     string   `json:"priority"`
	CurrentScore int      `json:"current_score"`
	Actions      []string `json:"actions"`
}

// StudyPlan is the best-effort personalized recommendation artifact generated
// after a completed interview.
type StudyPlan struct {
	ID                      uint           `gorm:"primaryKey" json:"id"`
	SubmissionID            uint           `gorm:"not null;uniqueIndex" json:"submission_id"`
	PriorityTopics          datatypes.JSON `gorm:"type:json" json:"-"`
	StrengthTopics          datatypes.JSON `gorm:"type:json" json:"-"`
	WrittenVsVerbalAnalysis string         `gorm:"type:text" json:"written_vs_verbal_analysis"`
	LearningStyleInsights   string         `gorm:"type:text" json:"learning_style_insights"`
	CreatedAt               time.Time      `json:"created_at"`
}

// SetPriorityTopics stores the ordered priority-topic records in the JSON column.
func (p *StudyPlan) SetPriorityTopics(topics []PriorityTopic) {
	p.PriorityTopics = encodeJSON(topics)
}

// SetStrengthTopics stores the ordered strength-topic list in the JSON column.
func (p *StudyPlan) SetStrengthTopics(items []string) {
	p.StrengthTopics = encodeJSON(items)
}

// PriorityTopicList deserializes the stored priority topics.
func (p StudyPlan) PriorityTopicList() []PriorityTopic {
	if len(p.PriorityTopics) == 0 {
		return nil
	}

	var topics []PriorityTopic
	if err := json.Unmarshal(p.PriorityTopics, &topics); err != nil {
		return nil
	}

	return topics
}

// StrengthTopicList deserializes the stored strength topics.
func (p StudyPlan) StrengthTopicList() []string {
	return decodeStringList(p.StrengthTopics)
}
