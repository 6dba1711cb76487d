package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/buddybud/buddybud-api/internal/models"
)

// TeacherRepository defines data operations for teacher records.
type TeacherRepository interface {
	GetByUsername(ctx context.Context, username string) (models.Teacher, error)
	GetByID(ctx context.Context, id uint) (models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	// EnsureDefault provisions the given teacher record if no teacher exists
	// yet. Identity provisioning is an explicit setup step, not a request-time
	// side effect.
	EnsureDefault(ctx context.Context, teacher *models.Teacher) error
}

type teacherRepository struct {
	db *gorm.DB
}

// NewTeacherRepository instantiates the repository.
func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) GetByUsername(ctx context.Context, username string) (models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&teacher).Error; err != nil {
		return models.Teacher{}, err
	}

	return teacher, nil
}

func (r *teacherRepository) GetByID(ctx context.Context, id uint) (models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return models.Teacher{}, err
	}

	return teacher, nil
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepository) EnsureDefault(ctx context.Context, teacher *models.Teacher) error {
	var existing models.Teacher
	err := r.db.WithContext(ctx).Order("id").First(&existing).Error
	if err == nil {
		*teacher = existing
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.WithContext(ctx).Create(teacher).Error
}
