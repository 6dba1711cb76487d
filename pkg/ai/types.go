package ai

import (
	"context"
	"io"
)

// AssignmentMeta carries the assignment context passed with every grading call.
type AssignmentMeta struct {
	Subject      string
	Level        string
	Title        string
	TotalMarks   int
	NumQuestions int
	Instructions string
}

// QuestionGrade is the per-question grading detail returned for written work.
type QuestionGrade struct {
	Number           int      `json:"number"`
	Title            string   `json:"title"`
	MarksAwarded     int      `json:"marks_awarded"`
	MarksTotal       int      `json:"marks_total"`
	Percentage       int      `json:"percentage"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	DetailedAnalysis string   `json:"detailed_analysis,omitempty"`
}

// WrittenFeedback is the structured result of grading written work.
type WrittenFeedback struct {
	OverallScore        int             `json:"overall_score"`
	OverallStrengths    []string        `json:"overall_strengths"`
	OverallImprovements []string        `json:"overall_improvements"`
	Questions           []QuestionGrade `json:"questions"`
}

// InterviewQuestion is one generated verbal-assessment question.
type InterviewQuestion struct {
	Number   int      `json:"number"`
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Question string   `json:"question"`
	Hints    []string `json:"hints"`
}

// InterviewAnalysis is the structured result of scoring an interview transcript.
type InterviewAnalysis struct {
	InterviewScore               int      `json:"interview_score"`
	ProblemSolvingScore          int      `json:"problem_solving_score"`
	ConceptualUnderstandingScore int      `json:"conceptual_understanding_score"`
	CreativeApplicationScore     int      `json:"creative_application_score"`
	Misconceptions               []string `json:"misconceptions"`
	StrongMoments                []string `json:"strong_moments"`
	DevelopmentAreas             []string `json:"development_areas"`
	OverallAnalysis              string   `json:"overall_analysis"`
}

// ScoreSummary feeds the study-plan call with the submission's final scores.
type ScoreSummary struct {
	WrittenScore   int
	InterviewScore int
}

// TopicResult identifies a graded question topic and its percentage score.
type TopicResult struct {
	Title      string
	Percentage int
}

// InterviewSubScores carries the interview dimension scores into study-plan generation.
type InterviewSubScores struct {
	ProblemSolving          int
	ConceptualUnderstanding int
}

// PriorityTopic is one focus area in a generated study plan.
type PriorityTopic struct {
	Topic        string   `json:"topic"`
	Priority     string   `json:"priority"`
	CurrentScore int      `json:"current_score"`
	Actions      []string `json:"actions"`
}

// StudyPlan is the structured study-plan result.
type StudyPlan struct {
	PriorityTopics          []PriorityTopic `json:"priority_topics"`
	StrengthTopics          []string        `json:"strength_topics"`
	WrittenVsVerbalAnalysis string          `json:"written_vs_verbal_analysis"`
	LearningStyleInsights   string          `json:"learning_style_insights"`
}

// Gateway describes the LLM capabilities the grading orchestrator depends on.
// Every call is a single synchronous request with no retry and no fallback
// data; malformed responses propagate as errors.
type Gateway interface {
	GradeWrittenWork(ctx context.Context, meta AssignmentMeta, answerText string) (WrittenFeedback, error)
	GenerateInterviewQuestions(ctx context.Context, meta AssignmentMeta, weakAreas []string) ([]InterviewQuestion, error)
	AnalyzeInterview(ctx context.Context, meta AssignmentMeta, writtenScore, durationSeconds int, transcript string) (InterviewAnalysis, error)
	GenerateStudyPlan(ctx context.Context, scores ScoreSummary, weak, strong []TopicResult, subScores InterviewSubScores) (StudyPlan, error)
}

// Transcriber converts recorded interview media into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, media io.Reader) (string, error)
}
