package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/buddybud/buddybud-api/internal/dto"
	"github.com/buddybud/buddybud-api/internal/models"
	"github.com/buddybud/buddybud-api/pkg/ai"
)

type submissionFixture struct {
	assignments *memoryAssignmentRepo
	submissions *memorySubmissionRepo
	sessions    *memoryFlowStore
	gateway     *fakeGateway
	uploader    *fakeUploader
	events      *recordingEvents
	service     SubmissionService
	code        string
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()

	assignments := newMemoryAssignmentRepo()
	submissions := newMemorySubmissionRepo(assignments)
	sessions := newMemoryFlowStore()
	gateway := &fakeGateway{}
	uploader := &fakeUploader{}
	events := &recordingEvents{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	assignmentService := NewAssignmentService(assignments, validate, uploader, zerolog.Nop())
	created, err := assignmentService.Create(context.Background(), 1, validAssignmentRequest(), nil)
	require.NoError(t, err)

	service := NewSubmissionService(assignmentService, submissions, sessions, gateway, uploader, events, validate, zerolog.Nop())

	return &submissionFixture{
		assignments: assignments,
		submissions: submissions,
		sessions:    sessions,
		gateway:     gateway,
		uploader:    uploader,
		events:      events,
		service:     service,
		code:        created.Code,
	}
}

func (f *submissionFixture) startFlow(t *testing.T) string {
	t.Helper()

	flow, err := f.service.EnterCode(context.Background(), dto.CodeEntryRequest{Code: f.code})
	require.NoError(t, err)
	require.NotEmpty(t, flow.FlowToken)

	return flow.FlowToken
}

func (f *submissionFixture) submit(t *testing.T, token, answer string) dto.SubmissionResponse {
	t.Helper()

	submission, err := f.service.Create(context.Background(), token, dto.SubmissionCreateRequest{
		StudentName: "Ada Lovelace",
		AnswerText:  answer,
	}, nil)
	require.NoError(t, err)

	return submission
}

func writtenFeedbackOf(score int, questions ...ai.QuestionGrade) ai.WrittenFeedback {
	return ai.WrittenFeedback{
		OverallScore:        score,
		OverallStrengths:    []string{"clear working"},
		OverallImprovements: []string{"show units"},
		Questions:           questions,
	}
}

func TestEnterCodeRejectsUnknownCode(t *testing.T) {
	fixture := newSubmissionFixture(t)

	_, err := fixture.service.EnterCode(context.Background(), dto.CodeEntryRequest{Code: "BIO-0000-0000"})
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestCreateRequiresAnswerTextOrFile(t *testing.T) {
	fixture := newSubmissionFixture(t)
	token := fixture.startFlow(t)

	_, err := fixture.service.Create(context.Background(), token, dto.SubmissionCreateRequest{
		StudentName: "Ada Lovelace",
		AnswerText:  "   ",
	}, nil)
	require.ErrorIs(t, err, ErrAnswerRequired)
}

func TestCreateStoresSubmissionAndBindsFlow(t *testing.T) {
	fixture := newSubmissionFixture(t)
	token := fixture.startFlow(t)

	submission := fixture.submit(t, token, "The xylem transports water.")
	require.Equal(t, models.SubmissionStatusAnalyzing, submission.Status)
	require.Equal(t, models.SubmissionStatusAnalyzing, fixture.events.last())

	state, err := fixture.sessions.Get(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, submission.ID, state.SubmissionID)
}

func TestAnalyzeWrittenHappyPath(t *testing.T) {
	fixture := newSubmissionFixture(t)
	token := fixture.startFlow(t)
	fixture.submit(t, token, "The xylem transports water.")

	fixture.gateway.gradeFn = func(ctx context.Context, meta ai.AssignmentMeta, answer string) (ai.WrittenFeedback, error) {
		require.Equal(t, "Biology", meta.Subject)
		return writtenFeedbackOf(78,
			ai.QuestionGrade{Number: 1, Title: "Transport systems", MarksAwarded: 6, MarksTotal: 10, Percentage: 60},
			ai.QuestionGrade{Number: 2, Title: "Cell structure", MarksAwarded: 9, MarksTotal: 10, Percentage: 90},
		), nil
	}

	feedback, err := fixture.service.AnalyzeWritten(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusAnalyzed, feedback.Submission.Status)
	require.Equal(t, 78, feedback.Submission.WrittenScore)
	require.Equal(t, 78, feedback.Submission.OverallScore, "overall score mirrors the written score until the interview is scored")
	require.NotNil(t, feedback.Submission.AnalysisCompletedAt)
	require.Len(t, feedback.Questions, 2)
	require.Equal(t, 1, feedback.Questions[0].QuestionNumber)
	require.Equal(t, models.SubmissionStatusAnalyzed, fixture.events.last())
}

func TestAnalyzeWrittenGatewayFailureParksInError(t *testing.T) {
	fixture := newSubmissionFixture(t)
	token := fixture.startFlow(t)
	created := fixture.submit(t, token, "answer")

	fixture.gateway.gradeFn = func(ctx context.Context, meta ai.AssignmentMeta, answer string) (ai.WrittenFeedback, error) {
		return ai.WrittenFeedback{}, fmt.Errorf("model overloaded")
	}

	_, err := fixture.service.AnalyzeWritten(context.Background(), token)
	require.Error(t, err)

	stored, err := fixture.submissions.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusError, stored.Status)
	require.Equal(t, models.SubmissionStatusError, fixture.events.last())
}

func TestAnalyzeWrittenFileOnlySubmissionFails(t *testing.T) {
	fixture := newSubmissionFixture(t)
	token := fixture.startFlow(t)

	file := makeFileHeader(t, "answers.pdf", "application/pdf", []byte("%PDF-1.7"))
	created, err := fixture.service.Create(context.Background(), token, dto.SubmissionCreateRequest{
		StudentName: "Ada Lovelace",
	}, file)
	require.NoError(t, err)
	require.NotEmpty(t, created.AnswerFileURL)

	_, err = fixture.service.AnalyzeWritten(context.Background(), token)
	require.ErrorIs(t, err, ErrAnswerRequired)

	stored, err := fixture.submissions.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusError, stored.Status)
}

func TestAnalyzeWrittenIsIdempotentOnceAnalyzed(t *testing.T) {
	fixture := newSubmissionFixture(t)
	token := fixture.startFlow(t)
	fixture.submit(t, token, "answer")

	calls := 0
	fixture.gateway.gradeFn = func(ctx context.Context, meta ai.AssignmentMeta, answer string) (ai.WrittenFeedback, error) {
		calls++
		return writtenFeedbackOf(80), nil
	}

	_, err := fixture.service.AnalyzeWritten(context.Background(), token)
	require.NoError(t, err)

	again, err := fixture.service.AnalyzeWritten(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, models.SubmissionStatusAnalyzed, again.Submission.Status)
}

func TestAnalyzeWrittenRequiresGateway(t *testing.T) {
	assignments := newMemoryAssignmentRepo()
	submissions := newMemorySubmissionRepo(assignments)
	sessions := newMemoryFlowStore()
	validate := validator.New(validator.WithRequiredStructEnabled())

	assignmentService := NewAssignmentService(assignments, validate, &fakeUploader{}, zerolog.Nop())
	created, err := assignmentService.Create(context.Background(), 1, validAssignmentRequest(), nil)
	require.NoError(t, err)

	service := NewSubmissionService(assignmentService, submissions, sessions, nil, &fakeUploader{}, &recordingEvents{}, validate, zerolog.Nop())

	flow, err := service.EnterCode(context.Background(), dto.CodeEntryRequest{Code: created.Code})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), flow.FlowToken, dto.SubmissionCreateRequest{
		StudentName: "Ada Lovelace",
		AnswerText:  "answer",
	}, nil)
	require.NoError(t, err)

	_, err = service.AnalyzeWritten(context.Background(), flow.FlowToken)
	require.ErrorIs(t, err, ErrAIUnavailable)
}

func TestResolveSubmissionRequiresFlowProgress(t *testing.T) {
	fixture := newSubmissionFixture(t)
	token := fixture.startFlow(t)

	_, err := fixture.service.ResolveSubmission(context.Background(), token)
	require.ErrorIs(t, err, ErrSubmissionNotFound)

	_, err = fixture.service.ResolveSubmission(context.Background(), "missing-token")
	require.ErrorIs(t, err, ErrFlowSessionNotFound)
}
