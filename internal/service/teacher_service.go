package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/buddybud/buddybud-api/internal/dto"
	"github.com/buddybud/buddybud-api/internal/models"
	"github.com/buddybud/buddybud-api/internal/repository"
)

// TeacherService backs the teacher-facing review surface: the dashboard,
// per-assignment class results, and per-student reports.
type TeacherService interface {
	Dashboard(ctx context.Context, teacherID uint) (dto.TeacherDashboardResponse, error)
	AssignmentResults(ctx context.Context, teacherID, assignmentID uint) (dto.AssignmentResultsResponse, error)
	StudentReport(ctx context.Context, teacherID, submissionID uint) (dto.StudentReportResponse, error)
}

type teacherService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	interviews  repository.InterviewRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewTeacherService constructs a TeacherService. A nil cache client disables
// dashboard caching without affecting correctness.
func NewTeacherService(
	assignments repository.AssignmentRepository,
	submissions repository.SubmissionRepository,
	interviews repository.InterviewRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) TeacherService {
	if cacheTTL <= 0 {
		cacheTTL = 2 * time.Minute
	}

	return &teacherService{
		assignments: assignments,
		submissions: submissions,
		interviews:  interviews,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "teacher_service").Logger(),
	}
}

func dashboardCacheKey(teacherID uint) string {
	return fmt.Sprintf("dashboard:teacher:%d", teacherID)
}

func (s *teacherService) Dashboard(ctx context.Context, teacherID uint) (dto.TeacherDashboardResponse, error) {
	key := dashboardCacheKey(teacherID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var response dto.TeacherDashboardResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				return response, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("dashboard cache read failed")
		}
	}

	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	submissions, err := s.submissions.ListByTeacher(ctx, teacherID)
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	response := dto.TeacherDashboardResponse{
		Assignments:    dto.NewAssignmentResponseSlice(assignments),
		TotalStudents:  len(submissions),
		AverageScore:   averageOverallScore(submissions),
		CompletionRate: completionRate(submissions),
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}

	return response, nil
}

func (s *teacherService) AssignmentResults(ctx context.Context, teacherID, assignmentID uint) (dto.AssignmentResultsResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResultsResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResultsResponse{}, err
	}

	if assignment.TeacherID != teacherID {
		return dto.AssignmentResultsResponse{}, ErrAssignmentNotFound
	}

	submissions, err := s.submissions.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return dto.AssignmentResultsResponse{}, err
	}

	responses := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, dto.NewSubmissionResponse(submission))
	}

	return dto.AssignmentResultsResponse{
		Assignment:     dto.NewAssignmentResponse(assignment),
		Submissions:    responses,
		AverageScore:   averageOverallScore(submissions),
		CompletionRate: completionRate(submissions),
		Distribution:   scoreDistribution(submissions),
		Split:          verbalWrittenSplit(submissions),
	}, nil
}

func (s *teacherService) StudentReport(ctx context.Context, teacherID, submissionID uint) (dto.StudentReportResponse, error) {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentReportResponse{}, ErrSubmissionNotFound
		}
		return dto.StudentReportResponse{}, err
	}

	if submission.Assignment.TeacherID != teacherID {
		return dto.StudentReportResponse{}, ErrSubmissionNotFound
	}

	feedbacks, err := s.submissions.ListFeedback(ctx, submissionID)
	if err != nil {
		return dto.StudentReportResponse{}, err
	}

	report := dto.StudentReportResponse{
		Submission: dto.NewSubmissionResponse(submission),
		Assignment: dto.NewAssignmentResponse(submission.Assignment),
		Questions:  dto.NewQuestionFeedbackResponseSlice(feedbacks),
	}

	session, err := s.interviews.GetBySubmission(ctx, submissionID)
	switch {
	case err == nil && session.Status == models.InterviewStatusCompleted:
		interview := dto.NewInterviewResultResponse(session)
		report.Interview = &interview
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return dto.StudentReportResponse{}, err
	}

	return report, nil
}

func averageOverallScore(submissions []models.Submission) int {
	total := 0
	count := 0
	for _, submission := range submissions {
		if submission.Status == models.SubmissionStatusComplete {
			total += submission.OverallScore
			count++
		}
	}
	if count == 0 {
		return 0
	}

	return total / count
}

func completionRate(submissions []models.Submission) int {
	if len(submissions) == 0 {
		return 0
	}

	completed := 0
	for _, submission := range submissions {
		if submission.Status == models.SubmissionStatusComplete {
			completed++
		}
	}

	return completed * 100 / len(submissions)
}

func scoreDistribution(submissions []models.Submission) dto.ScoreDistribution {
	var distribution dto.ScoreDistribution
	for _, submission := range submissions {
		if submission.Status != models.SubmissionStatusComplete {
			continue
		}
		switch {
		case submission.OverallScore >= 90:
			distribution.Band90To100++
		case submission.OverallScore >= 80:
			distribution.Band80To89++
		case submission.OverallScore >= 70:
			distribution.Band70To79++
		case submission.OverallScore >= 60:
			distribution.Band60To69++
		default:
			distribution.BandBelow60++
		}
	}

	return distribution
}

func verbalWrittenSplit(submissions []models.Submission) dto.VerbalWrittenSplit {
	var split dto.VerbalWrittenSplit
	for _, submission := range submissions {
		if submission.Status != models.SubmissionStatusComplete {
			continue
		}
		gap := submission.InterviewScore - submission.WrittenScore
		switch {
		case gap > 5:
			split.HigherVerbal++
		case gap < -5:
			split.HigherWritten++
		default:
			split.Consistent++
		}
	}

	return split
}
