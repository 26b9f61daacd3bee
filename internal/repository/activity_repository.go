package repository

import (
	"context"
	"errors"
	"fmt"

	"go_lang_portal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(ctx context.Context, tx *gorm.DB, activity *model.StudyActivity) error
	FindByID(ctx context.Context, db *gorm.DB, activityID uuid.UUID) (*model.StudyActivity, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*model.StudyActivity, error)
	Exists(ctx context.Context, db *gorm.DB, activityID uuid.UUID) (bool, error)
	List(ctx context.Context, db *gorm.DB) ([]*model.StudyActivity, error)
}

type gormActivityRepository struct{}

func NewGormActivityRepository() ActivityRepository {
	return &gormActivityRepository{}
}

func (r *gormActivityRepository) Create(ctx context.Context, tx *gorm.DB, activity *model.StudyActivity) error {
	result := tx.WithContext(ctx).Create(activity)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return model.ErrConflict
		}
		return fmt.Errorf("gormActivityRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormActivityRepository) FindByID(ctx context.Context, db *gorm.DB, activityID uuid.UUID) (*model.StudyActivity, error) {
	var activity model.StudyActivity
	result := db.WithContext(ctx).Where("activity_id = ?", activityID).First(&activity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormActivityRepository.FindByID: %w", result.Error)
	}
	return &activity, nil
}

func (r *gormActivityRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.StudyActivity, error) {
	var activity model.StudyActivity
	result := db.WithContext(ctx).Where("name = ?", name).First(&activity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormActivityRepository.FindByName: %w", result.Error)
	}
	return &activity, nil
}

func (r *gormActivityRepository) Exists(ctx context.Context, db *gorm.DB, activityID uuid.UUID) (bool, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.StudyActivity{}).Where("activity_id = ?", activityID).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("gormActivityRepository.Exists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormActivityRepository) List(ctx context.Context, db *gorm.DB) ([]*model.StudyActivity, error) {
	var activities []*model.StudyActivity
	result := db.WithContext(ctx).Order("created_at ASC").Find(&activities)
	if result.Error != nil {
		return nil, fmt.Errorf("gormActivityRepository.List: %w", result.Error)
	}
	return activities, nil
}
