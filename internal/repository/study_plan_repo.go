package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/buddybud/buddybud-api/internal/models"
)

// StudyPlanRepository defines data operations for study plans.
type StudyPlanRepository interface {
	GetBySubmission(ctx context.Context, submissionID uint) (models.StudyPlan, error)
	Create(ctx context.Context, plan *models.StudyPlan) error
}

type studyPlanRepository struct {
	db *gorm.DB
}

// NewStudyPlanRepository instantiates the repository.
func NewStudyPlanRepository(db *gorm.DB) StudyPlanRepository {
	return &studyPlanRepository{db: db}
}

func (r *studyPlanRepository) GetBySubmission(ctx context.Context, submissionID uint) (models.StudyPlan, error) {
	var plan models.StudyPlan
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		First(&plan).Error; err != nil {
		return models.StudyPlan{}, err
	}

	return plan, nil
}

func (r *studyPlanRepository) Create(ctx context.Context, plan *models.StudyPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}
