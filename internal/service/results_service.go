package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/buddybud/buddybud-api/internal/dto"
	"github.com/buddybud/buddybud-api/internal/models"
	"github.com/buddybud/buddybud-api/internal/repository"
)

// ResultsService assembles the final results page. It is a pure read: calling
// it any number of times has no side effects on the stored records.
type ResultsService interface {
	FinalResults(ctx context.Context, token string) (dto.FinalResultsResponse, error)
}

type resultsService struct {
	submissions SubmissionService
	store       repository.SubmissionRepository
	interviews  repository.InterviewRepository
	studyPlans  repository.StudyPlanRepository
	logger      zerolog.Logger
}

// NewResultsService constructs a ResultsService instance.
func NewResultsService(
	submissions SubmissionService,
	store repository.SubmissionRepository,
	interviews repository.InterviewRepository,
	studyPlans repository.StudyPlanRepository,
	logger zerolog.Logger,
) ResultsService {
	return &resultsService{
		submissions: submissions,
		store:       store,
		interviews:  interviews,
		studyPlans:  studyPlans,
		logger:      logger.With().Str("component", "results_service").Logger(),
	}
}

func (s *resultsService) FinalResults(ctx context.Context, token string) (dto.FinalResultsResponse, error) {
	submission, err := s.submissions.ResolveSubmission(ctx, token)
	if err != nil {
		return dto.FinalResultsResponse{}, err
	}

	feedbacks, err := s.store.ListFeedback(ctx, submission.ID)
	if err != nil {
		return dto.FinalResultsResponse{}, err
	}

	results := dto.FinalResultsResponse{
		Submission: dto.NewSubmissionResponse(submission),
		Assignment: dto.NewAssignmentResponse(submission.Assignment),
		Questions:  dto.NewQuestionFeedbackResponseSlice(feedbacks),
	}

	session, err := s.interviews.GetBySubmission(ctx, submission.ID)
	switch {
	case err == nil && session.Status == models.InterviewStatusCompleted:
		interview := dto.NewInterviewResultResponse(session)
		results.Interview = &interview
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return dto.FinalResultsResponse{}, err
	}

	plan, err := s.studyPlans.GetBySubmission(ctx, submission.ID)
	switch {
	case err == nil:
		studyPlan := dto.NewStudyPlanResponse(plan)
		results.StudyPlan = &studyPlan
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return dto.FinalResultsResponse{}, err
	}

	return results, nil
}
