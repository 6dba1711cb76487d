package dto

// TeacherDashboardResponse aggregates assignment and submission metrics for
// the teacher dashboard.
type TeacherDashboardResponse struct {
	Assignments    []AssignmentResponse `json:"assignments"`
	TotalStudents  int                  `json:"total_students"`
	AverageScore   int                  `json:"average_score"`
	CompletionRate int                  `json:"completion_rate"`
	CacheHit       bool                 `json:"cache_hit"`
}

// ScoreDistribution buckets completed submissions by overall score.
type ScoreDistribution struct {
	Band90To100 int `json:"band_90_100"`
	Band80To89  int `json:"band_80_89"`
	Band70To79  int `json:"band_70_79"`
	Band60To69  int `json:"band_60_69"`
	BandBelow60 int `json:"band_below_60"`
}

// VerbalWrittenSplit counts how interview scores compare to written scores.
// A gap of five points or fewer counts as consistent.
type VerbalWrittenSplit struct {
	HigherVerbal  int `json:"higher_verbal"`
	HigherWritten int `json:"higher_written"`
	Consistent    int `json:"consistent"`
}

// AssignmentResultsResponse aggregates class-level results for one assignment.
type AssignmentResultsResponse struct {
	Assignment     AssignmentResponse   `json:"assignment"`
	Submissions    []SubmissionResponse `json:"submissions"`
	AverageScore   int                  `json:"average_score"`
	CompletionRate int                  `json:"completion_rate"`
	Distribution   ScoreDistribution    `json:"distribution"`
	Split          VerbalWrittenSplit   `json:"split"`
}

// StudentReportResponse is the teacher's per-student detail view.
type StudentReportResponse struct {
	Submission SubmissionResponse         `json:"submission"`
	Assignment AssignmentResponse         `json:"assignment"`
	Questions  []QuestionFeedbackResponse `json:"questions"`
	Interview  *InterviewResultResponse   `json:"interview"`
}
