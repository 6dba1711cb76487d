package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/buddybud/buddybud-api/internal/models"
)

// InterviewRepository defines data operations for interview sessions and
// their generated questions.
type InterviewRepository interface {
	GetBySubmission(ctx context.Context, submissionID uint) (models.InterviewSession, error)
	Create(ctx context.Context, session *models.InterviewSession) error
	Update(ctx context.Context, session *models.InterviewSession) error
	DeleteQuestions(ctx context.Context, interviewID uint) error
	CreateQuestion(ctx context.Context, question *models.InterviewQuestion) error
	ListQuestions(ctx context.Context, interviewID uint) ([]models.InterviewQuestion, error)
}

type interviewRepository struct {
	db *gorm.DB
}

// NewInterviewRepository instantiates the repository.
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) GetBySubmission(ctx context.Context, submissionID uint) (models.InterviewSession, error) {
	var session models.InterviewSession
	if err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_number")
		}).
		Where("submission_id = ?", submissionID).
		First(&session).Error; err != nil {
		return models.InterviewSession{}, err
	}

	return session, nil
}

func (r *interviewRepository) Create(ctx context.Context, session *models.InterviewSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *interviewRepository) Update(ctx context.Context, session *models.InterviewSession) error {
	return r.db.WithContext(ctx).Omit("Questions").Save(session).Error
}

func (r *interviewRepository) DeleteQuestions(ctx context.Context, interviewID uint) error {
	return r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Delete(&models.InterviewQuestion{}).Error
}

func (r *interviewRepository) CreateQuestion(ctx context.Context, question *models.InterviewQuestion) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *interviewRepository) ListQuestions(ctx context.Context, interviewID uint) ([]models.InterviewQuestion, error) {
	var questions []models.InterviewQuestion
	if err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("question_number").
		Find(&questions).Error; err != nil {
		return nil, err
	}

	return questions, nil
}
