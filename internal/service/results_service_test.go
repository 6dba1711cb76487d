package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/buddybud/buddybud-api/internal/models"
	"github.com/buddybud/buddybud-api/pkg/ai"
)

func newResultsService(fixture *interviewFixture) ResultsService {
	return NewResultsService(
		fixture.submissionFixture.service,
		fixture.submissions,
		fixture.interviews,
		fixture.studyPlans,
		zerolog.Nop(),
	)
}

func TestFinalResultsBeforeInterviewOmitsOptionalSections(t *testing.T) {
	fixture := newInterviewFixture(t)
	results := newResultsService(fixture)

	view, err := results.FinalResults(context.Background(), fixture.token)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusAnalyzed, view.Submission.Status)
	require.Len(t, view.Questions, 2)
	require.Nil(t, view.Interview)
	require.Nil(t, view.StudyPlan)
}

func TestFinalResultsAfterCompletionIsStableAcrossReads(t *testing.T) {
	fixture := newInterviewFixture(t)
	fixture.prepare(t)
	fixture.saveRecording(t)

	fixture.gateway.analyzeFn = func(ctx context.Context, meta ai.AssignmentMeta, writtenScore, duration int, transcript string) (ai.InterviewAnalysis, error) {
		return ai.InterviewAnalysis{InterviewScore: 96, ProblemSolvingScore: 90}, nil
	}
	fixture.gateway.planFn = func(ctx context.Context, scores ai.ScoreSummary, weak, strong []ai.TopicResult, subScores ai.InterviewSubScores) (ai.StudyPlan, error) {
		return ai.StudyPlan{StrengthTopics: []string{"Cell structure"}}, nil
	}

	_, err := fixture.service.Complete(context.Background(), fixture.token)
	require.NoError(t, err)

	results := newResultsService(fixture)

	first, err := results.FinalResults(context.Background(), fixture.token)
	require.NoError(t, err)
	second, err := results.FinalResults(context.Background(), fixture.token)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.NotNil(t, first.Interview)
	require.Equal(t, 96, first.Submission.InterviewScore)
	require.Equal(t, 95, first.Submission.OverallScore)
	require.NotNil(t, first.StudyPlan)
	require.Equal(t, []string{"Cell structure"}, first.StudyPlan.StrengthTopics)
}

func TestFinalResultsUnknownTokenFails(t *testing.T) {
	fixture := newInterviewFixture(t)
	results := newResultsService(fixture)

	_, err := results.FinalResults(context.Background(), "missing")
	require.ErrorIs(t, err, ErrFlowSessionNotFound)
}
