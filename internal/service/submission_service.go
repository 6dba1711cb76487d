package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/buddybud/buddybud-api/internal/dto"
	"github.com/buddybud/buddybud-api/internal/models"
	"github.com/buddybud/buddybud-api/internal/repository"
	"github.com/buddybud/buddybud-api/pkg/ai"
)

// FlowStartResponse is returned after a successful code entry. The token
// scopes the rest of the student flow to this assignment.
type FlowStartResponse struct {
	FlowToken  string                 `json:"flow_token"`
	Assignment dto.AssignmentResponse `json:"assignment"`
}

// SubmissionService drives the written half of the student flow: code entry,
// answer upload, AI analysis, and feedback retrieval.
type SubmissionService interface {
	EnterCode(ctx context.Context, payload dto.CodeEntryRequest) (FlowStartResponse, error)
	Create(ctx context.Context, token string, payload dto.SubmissionCreateRequest, answerFile *multipart.FileHeader) (dto.SubmissionResponse, error)
	AnalyzeWritten(ctx context.Context, token string) (dto.WrittenFeedbackResponse, error)
	GetFeedback(ctx context.Context, token string) (dto.WrittenFeedbackResponse, error)
	ResolveSubmission(ctx context.Context, token string) (models.Submission, error)
}

type submissionService struct {
	assignments AssignmentService
	submissions repository.SubmissionRepository
	sessions    FlowSessionStore
	gateway     ai.Gateway
	uploader    FileUploader
	events      EventPublisher
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService. A nil gateway leaves
// the flow in degraded mode: submissions can be created but analysis reports
// ErrAIUnavailable.
func NewSubmissionService(
	assignments AssignmentService,
	submissions repository.SubmissionRepository,
	sessions FlowSessionStore,
	gateway ai.Gateway,
	uploader FileUploader,
	events EventPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		assignments: assignments,
		submissions: submissions,
		sessions:    sessions,
		gateway:     gateway,
		uploader:    uploader,
		events:      events,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) EnterCode(ctx context.Context, payload dto.CodeEntryRequest) (FlowStartResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return FlowStartResponse{}, err
	}

	assignment, err := s.assignments.GetActiveByCode(ctx, payload.Code)
	if err != nil {
		return FlowStartResponse{}, err
	}

	token, err := s.sessions.Start(ctx, assignment.ID)
	if err != nil {
		return FlowStartResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Msg("student flow started")

	return FlowStartResponse{
		FlowToken:  token,
		Assignment: dto.NewAssignmentResponse(assignment),
	}, nil
}

func (s *submissionService) Create(ctx context.Context, token string, payload dto.SubmissionCreateRequest, answerFile *multipart.FileHeader) (dto.SubmissionResponse, error) {
	state, err := s.sessions.Get(ctx, token)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	answerText := strings.TrimSpace(payload.AnswerText)
	if answerText == "" && answerFile == nil {
		return dto.SubmissionResponse{}, ErrAnswerRequired
	}

	fileURL := ""
	if answerFile != nil {
		if err := validateAnswerFile(answerFile); err != nil {
			return dto.SubmissionResponse{}, err
		}

		reader, err := answerFile.Open()
		if err != nil {
			return dto.SubmissionResponse{}, fmt.Errorf("failed to open answer file: %w", err)
		}

		fileURL, err = s.uploader.Upload(ctx, answerFile.Filename, reader)
		reader.Close()
		if err != nil {
			return dto.SubmissionResponse{}, fmt.Errorf("failed to upload answer file: %w", err)
		}
	}

	submission := models.Submission{
		AssignmentID:  state.AssignmentID,
		StudentName:   s.sanitizer.Sanitize(payload.StudentName),
		AnswerText:    answerText,
		AnswerFileURL: fileURL,
		Status:        models.SubmissionStatusAnalyzing,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	if err := s.sessions.SetSubmission(ctx, token, submission.ID); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.events.PublishStatus(submission.ID, submission.AssignmentID, submission.Status)
	s.logger.Info().Uint("submission_id", submission.ID).Uint("assignment_id", state.AssignmentID).Msg("submission created")

	return dto.NewSubmissionResponse(submission), nil
}

// AnalyzeWritten runs the AI grading step. Any failure along the way parks the
// submission in the error state; a later retry starts from a fresh analyzing
// transition.
func (s *submissionService) AnalyzeWritten(ctx context.Context, token string) (dto.WrittenFeedbackResponse, error) {
	submission, err := s.ResolveSubmission(ctx, token)
	if err != nil {
		return dto.WrittenFeedbackResponse{}, err
	}

	if submission.Status == models.SubmissionStatusAnalyzed || submission.Status == models.SubmissionStatusComplete {
		return s.feedbackView(ctx, submission)
	}

	if s.gateway == nil {
		return dto.WrittenFeedbackResponse{}, ErrAIUnavailable
	}

	submission.Status = models.SubmissionStatusAnalyzing
	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.WrittenFeedbackResponse{}, err
	}
	s.events.PublishStatus(submission.ID, submission.AssignmentID, submission.Status)

	if strings.TrimSpace(submission.AnswerText) == "" {
		return dto.WrittenFeedbackResponse{}, s.failAnalysis(ctx, &submission, ErrAnswerRequired)
	}

	meta := assignmentMeta(submission.Assignment)
	feedback, err := s.gateway.GradeWrittenWork(ctx, meta, submission.AnswerText)
	if err != nil {
		return dto.WrittenFeedbackResponse{}, s.failAnalysis(ctx, &submission, err)
	}

	for _, grade := range feedback.Questions {
		row := models.QuestionFeedback{
			SubmissionID:     submission.ID,
			QuestionNumber:   grade.Number,
			QuestionTitle:    grade.Title,
			MarksAwarded:     grade.MarksAwarded,
			MarksTotal:       grade.MarksTotal,
			Percentage:       grade.Percentage,
			DetailedAnalysis: grade.DetailedAnalysis,
		}
		row.SetStrengths(grade.Strengths)
		row.SetImprovements(grade.Improvements)

		if err := s.submissions.CreateFeedback(ctx, &row); err != nil {
			return dto.WrittenFeedbackResponse{}, s.failAnalysis(ctx, &submission, err)
		}
	}

	completedAt := s.now()
	submission.WrittenScore = feedback.OverallScore
	// Until the interview is scored the overall score is the written score.
	submission.OverallScore = feedback.OverallScore
	submission.SetOverallStrengths(feedback.OverallStrengths)
	submission.SetOverallImprovements(feedback.OverallImprovements)
	submission.AnalysisCompletedAt = &completedAt
	submission.Status = models.SubmissionStatusAnalyzed

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.WrittenFeedbackResponse{}, err
	}
	s.events.PublishStatus(submission.ID, submission.AssignmentID, submission.Status)

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Int("written_score", submission.WrittenScore).
		Msg("written analysis complete")

	return s.feedbackView(ctx, submission)
}

func (s *submissionService) GetFeedback(ctx context.Context, token string) (dto.WrittenFeedbackResponse, error) {
	submission, err := s.ResolveSubmission(ctx, token)
	if err != nil {
		return dto.WrittenFeedbackResponse{}, err
	}

	return s.feedbackView(ctx, submission)
}

// ResolveSubmission maps a flow token to the submission it created, with the
// assignment preloaded.
func (s *submissionService) ResolveSubmission(ctx context.Context, token string) (models.Submission, error) {
	state, err := s.sessions.Get(ctx, token)
	if err != nil {
		return models.Submission{}, err
	}

	if state.SubmissionID == 0 {
		return models.Submission{}, ErrSubmissionNotFound
	}

	submission, err := s.submissions.GetByID(ctx, state.SubmissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, ErrSubmissionNotFound
		}
		return models.Submission{}, err
	}

	return submission, nil
}

func (s *submissionService) feedbackView(ctx context.Context, submission models.Submission) (dto.WrittenFeedbackResponse, error) {
	feedbacks, err := s.submissions.ListFeedback(ctx, submission.ID)
	if err != nil {
		return dto.WrittenFeedbackResponse{}, err
	}

	return dto.WrittenFeedbackResponse{
		Submission: dto.NewSubmissionResponse(submission),
		Questions:  dto.NewQuestionFeedbackResponseSlice(feedbacks),
	}, nil
}

func (s *submissionService) failAnalysis(ctx context.Context, submission *models.Submission, cause error) error {
	submission.Status = models.SubmissionStatusError
	if err := s.submissions.Update(ctx, submission); err != nil {
		s.logger.Error().Err(err).Uint("submission_id", submission.ID).Msg("failed to record error state")
	}
	s.events.PublishStatus(submission.ID, submission.AssignmentID, submission.Status)

	s.logger.Error().Err(cause).Uint("submission_id", submission.ID).Msg("written analysis failed")

	return fmt.Errorf("written analysis failed: %w", cause)
}

func assignmentMeta(assignment models.Assignment) ai.AssignmentMeta {
	return ai.AssignmentMeta{
		Subject:      assignment.Subject,
		Level:        assignment.Level,
		Title:        assignment.Title,
		TotalMarks:   assignment.TotalMarks,
		NumQuestions: assignment.NumQuestions,
		Instructions: assignment.Instructions,
	}
}
