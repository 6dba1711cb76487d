package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/buddybud/buddybud-api/internal/dto"
	"github.com/buddybud/buddybud-api/internal/models"
	"github.com/buddybud/buddybud-api/internal/repository"
	"github.com/buddybud/buddybud-api/pkg/ai"
)

// InterviewService drives the verbal half of the student flow: question
// generation, recording capture, transcription, and scoring.
type InterviewService interface {
	Prepare(ctx context.Context, token string) (dto.InterviewSessionResponse, error)
	GetSession(ctx context.Context, token string) (dto.InterviewSessionResponse, error)
	SaveRecording(ctx context.Context, token string, file *multipart.FileHeader) (string, error)
	Complete(ctx context.Context, token string) (dto.InterviewResultResponse, error)
}

type interviewService struct {
	submissions SubmissionService
	store       repository.SubmissionRepository
	interviews  repository.InterviewRepository
	studyPlans  repository.StudyPlanRepository
	gateway     ai.Gateway
	transcriber ai.Transcriber
	recordings  RecordingUploader
	fetcher     RecordingFetcher
	events      EventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewInterviewService constructs an InterviewService instance.
func NewInterviewService(
	submissions SubmissionService,
	store repository.SubmissionRepository,
	interviews repository.InterviewRepository,
	studyPlans repository.StudyPlanRepository,
	gateway ai.Gateway,
	transcriber ai.Transcriber,
	recordings RecordingUploader,
	fetcher RecordingFetcher,
	events EventPublisher,
	logger zerolog.Logger,
) InterviewService {
	return &interviewService{
		submissions: submissions,
		store:       store,
		interviews:  interviews,
		studyPlans:  studyPlans,
		gateway:     gateway,
		transcriber: transcriber,
		recordings:  recordings,
		fetcher:     fetcher,
		events:      events,
		logger:      logger.With().Str("component", "interview_service").Logger(),
		now:         time.Now,
	}
}

// Prepare creates or resets the interview session for the flow's submission
// and generates a fresh question set. Calling it again discards the previous
// questions entirely.
func (s *interviewService) Prepare(ctx context.Context, token string) (dto.InterviewSessionResponse, error) {
	submission, err := s.submissions.ResolveSubmission(ctx, token)
	if err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	if submission.Status != models.SubmissionStatusAnalyzed && submission.Status != models.SubmissionStatusComplete {
		return dto.InterviewSessionResponse{}, fmt.Errorf("%w: written analysis has not completed", ErrInterviewNotReady)
	}

	if s.gateway == nil {
		return dto.InterviewSessionResponse{}, ErrAIUnavailable
	}

	session, err := s.interviews.GetBySubmission(ctx, submission.ID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		session = models.InterviewSession{
			SubmissionID: submission.ID,
			StartedAt:    s.now(),
			Status:       models.InterviewStatusInProgress,
		}
		if err := s.interviews.Create(ctx, &session); err != nil {
			return dto.InterviewSessionResponse{}, err
		}
	case err != nil:
		return dto.InterviewSessionResponse{}, err
	default:
		session.StartedAt = s.now()
		session.CompletedAt = nil
		session.Duration = 0
		session.Transcript = ""
		session.Status = models.InterviewStatusInProgress
		if err := s.interviews.Update(ctx, &session); err != nil {
			return dto.InterviewSessionResponse{}, err
		}
		if err := s.interviews.DeleteQuestions(ctx, session.ID); err != nil {
			return dto.InterviewSessionResponse{}, err
		}
	}

	// Question generation is seeded by the top three improvement areas from
	// the written analysis.
	weakAreas := submission.OverallImprovementList()
	if len(weakAreas) > 3 {
		weakAreas = weakAreas[:3]
	}

	generated, err := s.gateway.GenerateInterviewQuestions(ctx, assignmentMeta(submission.Assignment), weakAreas)
	if err != nil {
		return dto.InterviewSessionResponse{}, fmt.Errorf("question generation failed: %w", err)
	}

	questions := make([]models.InterviewQuestion, 0, len(generated))
	for _, q := range generated {
		question := models.InterviewQuestion{
			InterviewID:    session.ID,
			QuestionNumber: q.Number,
			QuestionType:   q.Type,
			QuestionText:   q.Question,
		}
		if err := s.interviews.CreateQuestion(ctx, &question); err != nil {
			return dto.InterviewSessionResponse{}, err
		}
		questions = append(questions, question)
	}
	session.Questions = questions

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Int("questions", len(questions)).
		Strs("weak_areas", weakAreas).
		Msg("interview prepared")

	return dto.NewInterviewSessionResponse(session), nil
}

func (s *interviewService) GetSession(ctx context.Context, token string) (dto.InterviewSessionResponse, error) {
	session, _, err := s.resolveSession(ctx, token)
	if err != nil {
		return dto.InterviewSessionResponse{}, err
	}

	if len(session.Questions) == 0 {
		return dto.InterviewSessionResponse{}, ErrInterviewNotReady
	}

	return dto.NewInterviewSessionResponse(session), nil
}

// SaveRecording stores the captured interview media and points the session at
// the new blob. A re-recording uploads a fresh blob; only the session's
// recording reference is replaced.
func (s *interviewService) SaveRecording(ctx context.Context, token string, file *multipart.FileHeader) (string, error) {
	session, submission, err := s.resolveSession(ctx, token)
	if err != nil {
		return "", err
	}

	if err := validateRecording(file); err != nil {
		return "", err
	}

	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open recording: %w", err)
	}
	defer reader.Close()

	publicID := fmt.Sprintf("interview_%d_%d", submission.ID, s.now().Unix())
	url, err := s.recordings.UploadVideo(ctx, publicID, reader)
	if err != nil {
		return "", fmt.Errorf("failed to store recording: %w", err)
	}

	session.RecordingURL = url
	if err := s.interviews.Update(ctx, &session); err != nil {
		return "", err
	}

	s.logger.Info().Uint("submission_id", submission.ID).Int64("size", file.Size).Msg("recording stored")

	return url, nil
}

// Complete closes the interview, transcribes the stored recording, scores the
// transcript, and finalizes the submission. The interview row is re-read so a
// recording saved by a concurrent capture request is observed.
func (s *interviewService) Complete(ctx context.Context, token string) (dto.InterviewResultResponse, error) {
	session, submission, err := s.resolveSession(ctx, token)
	if err != nil {
		return dto.InterviewResultResponse{}, err
	}

	if len(session.Questions) == 0 {
		return dto.InterviewResultResponse{}, fmt.Errorf("%w: no interview questions generated", ErrInterviewNotReady)
	}

	if s.gateway == nil || s.transcriber == nil {
		return dto.InterviewResultResponse{}, ErrAIUnavailable
	}

	completedAt := s.now()
	session.CompletedAt = &completedAt
	session.Duration = int(completedAt.Sub(session.StartedAt).Seconds())
	session.Status = models.InterviewStatusCompleted
	if err := s.interviews.Update(ctx, &session); err != nil {
		return dto.InterviewResultResponse{}, err
	}

	// A completion attempt without a stored recording is a failed attempt,
	// not a retryable precondition.
	if !session.HasRecording() {
		return dto.InterviewResultResponse{}, s.failInterview(ctx, &submission, ErrRecordingMissing)
	}

	media, err := s.fetcher.Fetch(ctx, session.RecordingURL)
	if err != nil {
		return dto.InterviewResultResponse{}, s.failInterview(ctx, &submission, fmt.Errorf("fetch recording: %w", err))
	}

	transcript, err := s.transcriber.Transcribe(ctx, fmt.Sprintf("interview_%d.webm", submission.ID), media)
	media.Close()
	if err != nil {
		return dto.InterviewResultResponse{}, s.failInterview(ctx, &submission, fmt.Errorf("transcription: %w", err))
	}

	analysis, err := s.gateway.AnalyzeInterview(ctx, assignmentMeta(submission.Assignment), submission.WrittenScore, session.Duration, transcript)
	if err != nil {
		return dto.InterviewResultResponse{}, s.failInterview(ctx, &submission, fmt.Errorf("interview analysis: %w", err))
	}

	session.Transcript = transcript
	session.ProblemSolvingScore = analysis.ProblemSolvingScore
	session.ConceptualUnderstandingScore = analysis.ConceptualUnderstandingScore
	session.CreativeApplicationScore = analysis.CreativeApplicationScore
	session.SetStrongMoments(analysis.StrongMoments)
	session.SetDevelopmentAreas(analysis.DevelopmentAreas)
	session.OverallAnalysis = analysis.OverallAnalysis
	if err := s.interviews.Update(ctx, &session); err != nil {
		return dto.InterviewResultResponse{}, err
	}

	submission.InterviewScore = analysis.InterviewScore
	submission.OverallScore = models.CombinedScore(submission.WrittenScore, analysis.InterviewScore)
	submission.Status = models.SubmissionStatusComplete
	if err := s.store.Update(ctx, &submission); err != nil {
		return dto.InterviewResultResponse{}, err
	}
	s.events.PublishStatus(submission.ID, submission.AssignmentID, submission.Status)

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Int("interview_score", analysis.InterviewScore).
		Int("overall_score", submission.OverallScore).
		Msg("interview complete")

	// Study-plan generation never blocks the result: a failure here leaves
	// the submission complete with no plan.
	if err := s.generateStudyPlan(ctx, submission, session); err != nil {
		s.logger.Warn().Err(err).Uint("submission_id", submission.ID).Msg("study plan generation failed")
	}

	return dto.NewInterviewResultResponse(session), nil
}

func (s *interviewService) resolveSession(ctx context.Context, token string) (models.InterviewSession, models.Submission, error) {
	submission, err := s.submissions.ResolveSubmission(ctx, token)
	if err != nil {
		return models.InterviewSession{}, models.Submission{}, err
	}

	session, err := s.interviews.GetBySubmission(ctx, submission.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InterviewSession{}, models.Submission{}, ErrInterviewNotFound
		}
		return models.InterviewSession{}, models.Submission{}, err
	}

	return session, submission, nil
}

func (s *interviewService) generateStudyPlan(ctx context.Context, submission models.Submission, session models.InterviewSession) error {
	if _, err := s.studyPlans.GetBySubmission(ctx, submission.ID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	feedbacks, err := s.store.ListFeedback(ctx, submission.ID)
	if err != nil {
		return err
	}

	var weak, strong []ai.TopicResult
	for _, feedback := range feedbacks {
		topic := ai.TopicResult{Title: feedback.QuestionTitle, Percentage: feedback.Percentage}
		switch {
		case feedback.IsWeak():
			weak = append(weak, topic)
		case feedback.IsStrong():
			strong = append(strong, topic)
		}
	}

	plan, err := s.gateway.GenerateStudyPlan(ctx,
		ai.ScoreSummary{WrittenScore: submission.WrittenScore, InterviewScore: submission.InterviewScore},
		weak, strong,
		ai.InterviewSubScores{
			ProblemSolving:          session.ProblemSolvingScore,
			ConceptualUnderstanding: session.ConceptualUnderstandingScore,
		})
	if err != nil {
		return err
	}

	record := models.StudyPlan{
		SubmissionID:            submission.ID,
		WrittenVsVerbalAnalysis: plan.WrittenVsVerbalAnalysis,
		LearningStyleInsights:   plan.LearningStyleInsights,
	}

	topics := make([]models.PriorityTopic, 0, len(plan.PriorityTopics))
	for _, topic := range plan.PriorityTopics {
		topics = append(topics, models.PriorityTopic{
			Topic:        topic.Topic,
			Priority:     topic.Priority,
			CurrentScore: topic.CurrentScore,
			Actions:      topic.Actions,
		})
	}
	record.SetPriorityTopics(topics)
	record.SetStrengthTopics(plan.StrengthTopics)

	return s.studyPlans.Create(ctx, &record)
}

func (s *interviewService) failInterview(ctx context.Context, submission *models.Submission, cause error) error {
	submission.Status = models.SubmissionStatusError
	if err := s.store.Update(ctx, submission); err != nil {
		s.logger.Error().Err(err).Uint("submission_id", submission.ID).Msg("failed to record error state")
	}
	s.events.PublishStatus(submission.ID, submission.AssignmentID, submission.Status)

	s.logger.Error().Err(cause).Uint("submission_id", submission.ID).Msg("interview completion failed")

	return fmt.Errorf("interview completion failed: %w", cause)
}
