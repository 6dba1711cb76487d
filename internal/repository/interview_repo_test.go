package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/buddybud/buddybud-api/internal/models"
)

func TestInterviewRepositoryGetBySubmissionOrdersQuestions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInterviewRepository(db)
	assignment := seedAssignment(t, db)

	submission := models.Submission{AssignmentID: assignment.ID, StudentName: "Maya Chen", Status: models.SubmissionStatusAnalyzed}
	require.NoError(t, db.Create(&submission).Error)

	session := models.InterviewSession{
		SubmissionID: submission.ID,
		StartedAt:    time.Now(),
		Status:       models.InterviewStatusInProgress,
	}
	require.NoError(t, repo.Create(context.Background(), &session))

	// Insert out of order to exercise the preload ordering.
	for _, number := range []int{3, 1, 5, 2, 4} {
		question := models.InterviewQuestion{
			InterviewID:    session.ID,
			QuestionNumber: number,
			QuestionType:   models.InterviewQuestionTypes()[number-1],
			QuestionText:   "Explain your reasoning.",
		}
		require.NoError(t, repo.CreateQuestion(context.Background(), &question))
	}

	found, err := repo.GetBySubmission(context.Background(), submission.ID)
	require.NoError(t, err)
	require.Len(t, found.Questions, 5)
	for i, question := range found.Questions {
		require.Equal(t, i+1, question.QuestionNumber)
	}
}

func TestInterviewRepositoryUpdateDoesNotTouchQuestions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInterviewRepository(db)
	assignment := seedAssignment(t, db)

	submission := models.Submission{AssignmentID: assignment.ID, StudentName: "Maya Chen", Status: models.SubmissionStatusAnalyzed}
	require.NoError(t, db.Create(&submission).Error)

	session := models.InterviewSession{SubmissionID: submission.ID, StartedAt: time.Now(), Status: models.InterviewStatusInProgress}
	require.NoError(t, repo.Create(context.Background(), &session))
	require.NoError(t, repo.CreateQuestion(context.Background(), &models.InterviewQuestion{
		InterviewID:    session.ID,
		QuestionNumber: 1,
		QuestionType:   models.QuestionTypeProcess,
		QuestionText:   "Walk me through your method.",
	}))

	loaded, err := repo.GetBySubmission(context.Background(), submission.ID)
	require.NoError(t, err)

	// Mutate the in-memory association; a session update must not write it back.
	loaded.Questions[0].QuestionText = "overwritten"
	loaded.Status = models.InterviewStatusCompleted
	now := time.Now()
	loaded.CompletedAt = &now
	loaded.Duration = 240
	require.NoError(t, repo.Update(context.Background(), &loaded))

	reloaded, err := repo.GetBySubmission(context.Background(), submission.ID)
	require.NoError(t, err)
	require.Equal(t, models.InterviewStatusCompleted, reloaded.Status)
	require.Equal(t, 240, reloaded.Duration)
	require.Equal(t, "Walk me through your method.", reloaded.Questions[0].QuestionText)
}

func TestInterviewRepositoryDeleteQuestionsClearsSession(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInterviewRepository(db)
	assignment := seedAssignment(t, db)

	submission := models.Submission{AssignmentID: assignment.ID, StudentName: "Maya Chen", Status: models.SubmissionStatusAnalyzed}
	require.NoError(t, db.Create(&submission).Error)

	session := models.InterviewSession{SubmissionID: submission.ID, StartedAt: time.Now(), Status: models.InterviewStatusInProgress}
	require.NoError(t, repo.Create(context.Background(), &session))

	other := models.Submission{AssignmentID: assignment.ID, StudentName: "Ravi Patel", Status: models.SubmissionStatusAnalyzed}
	require.NoError(t, db.Create(&other).Error)
	otherSession := models.InterviewSession{SubmissionID: other.ID, StartedAt: time.Now(), Status: models.InterviewStatusInProgress}
	require.NoError(t, repo.Create(context.Background(), &otherSession))

	for _, target := range []uint{session.ID, otherSession.ID} {
		require.NoError(t, repo.CreateQuestion(context.Background(), &models.InterviewQuestion{
			InterviewID:    target,
			QuestionNumber: 1,
			QuestionType:   models.QuestionTypeProcess,
			QuestionText:   "Walk me through your method.",
		}))
	}

	require.NoError(t, repo.DeleteQuestions(context.Background(), session.ID))

	cleared, err := repo.ListQuestions(context.Background(), session.ID)
	require.NoError(t, err)
	require.Empty(t, cleared)

	untouched, err := repo.ListQuestions(context.Background(), otherSession.ID)
	require.NoError(t, err)
	require.Len(t, untouched, 1, "expected the sibling session to keep its questions")
}

func TestInterviewRepositoryUniqueSessionPerSubmission(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInterviewRepository(db)
	assignment := seedAssignment(t, db)

	submission := models.Submission{AssignmentID: assignment.ID, StudentName: "Maya Chen", Status: models.SubmissionStatusAnalyzed}
	require.NoError(t, db.Create(&submission).Error)

	first := models.InterviewSession{SubmissionID: submission.ID, StartedAt: time.Now(), Status: models.InterviewStatusInProgress}
	require.NoError(t, repo.Create(context.Background(), &first))

	second := models.InterviewSession{SubmissionID: submission.ID, StartedAt: time.Now(), Status: models.InterviewStatusInProgress}
	require.Error(t, repo.Create(context.Background(), &second), "expected one session per submission")
}
