//go:generate mockery --name ActivityService --output ./mocks --outpkg mocks --case=underscore --structname MockActivityService
package service

import (
	"context"
	"errors"

	"go_lang_portal/internal/middleware"
	"go_lang_portal/internal/model"
	"go_lang_portal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityService interface {
	ListActivities(ctx context.Context) (*model.StudyActivityListResponse, error)
	GetActivity(ctx context.Context, activityID uuid.UUID) (*model.StudyActivity, error)
}

type activityService struct {
	db           *gorm.DB
	activityRepo repository.ActivityRepository
}

func NewActivityService(db *gorm.DB, activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{db: db, activityRepo: activityRepo}
}

func (s *activityService) ListActivities(ctx context.Context) (*model.StudyActivityListResponse, error) {
	logger := middleware.GetLogger(ctx)

	activities, err := s.activityRepo.List(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list study activities", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習アクティビティ一覧の取得に失敗しました。", "", err)
	}
	if activities == nil {
		activities = []*model.StudyActivity{}
	}

	return &model.StudyActivityListResponse{StudyActivities: activities}, nil
}

func (s *activityService) GetActivity(ctx context.Context, activityID uuid.UUID) (*model.StudyActivity, error) {
	logger := middleware.GetLogger(ctx).With("activity_id", activityID)

	activity, err := s.activityRepo.FindByID(ctx, s.db, activityID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "学習アクティビティが見つかりません。", "activity_id", model.ErrNotFound)
		}
		logger.Error("Failed to find study activity", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習アクティビティの取得に失敗しました。", "", err)
	}
	return activity, nil
}
