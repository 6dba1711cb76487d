package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/buddybud/buddybud-api/internal/models"
)

// SubmissionRepository defines data operations for submissions and their
// per-question feedback rows.
type SubmissionRepository interface {
	ListByAssignment(ctx context.Context, assignmentID uint) ([]models.Submission, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]models.Submission, error)
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	Create(ctx context.Context, submission *models.Submission) error
	Update(ctx context.Context, submission *models.Submission) error
	CreateFeedback(ctx context.Context, feedback *models.QuestionFeedback) error
	ListFeedback(ctx context.Context, submissionID uint) ([]models.QuestionFeedback, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Submission{}).Preload("Assignment")
}

func (r *submissionRepository) ListByAssignment(ctx context.Context, assignmentID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.baseQuery(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.WithContext(ctx).Model(&models.Submission{}).
		Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
		Where("assignments.teacher_id = ?", teacherID).
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.baseQuery(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) Update(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *submissionRepository) CreateFeedback(ctx context.Context, feedback *models.QuestionFeedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *submissionRepository) ListFeedback(ctx context.Context, submissionID uint) ([]models.QuestionFeedback, error) {
	var feedbacks []models.QuestionFeedback
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("question_number").
		Find(&feedbacks).Error; err != nil {
		return nil, err
	}

	return feedbacks, nil
}
