//go:generate mockery --name GroupService --output ./mocks --outpkg mocks --case=underscore --structname MockGroupService
package service

import (
	"context"
	"errors"

	"go_lang_portal/internal/config"
	"go_lang_portal/internal/middleware"
	"go_lang_portal/internal/model"
	"go_lang_portal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupService interface {
	ListGroups(ctx context.Context, sortBy, order string, page int) (*model.GroupListResponse, error)
	GetGroup(ctx context.Context, groupID uuid.UUID) (*model.Group, error)
	ListGroupWords(ctx context.Context, groupID uuid.UUID, sortBy, order string, page int) (*model.GroupWordsResponse, error)
	DeleteGroup(ctx context.Context, groupID uuid.UUID) error
}

type groupService struct {
	db        *gorm.DB
	groupRepo repository.GroupRepository
	wordRepo  repository.WordRepository
	cfg       *config.Config
}

func NewGroupService(db *gorm.DB, groupRepo repository.GroupRepository, wordRepo repository.WordRepository, cfg *config.Config) GroupService {
	return &groupService{db: db, groupRepo: groupRepo, wordRepo: wordRepo, cfg: cfg}
}

func (s *groupService) ListGroups(ctx context.Context, sortBy, order string, page int) (*model.GroupListResponse, error) {
	logger := middleware.GetLogger(ctx)

	perPage := s.cfg.App.GroupsPerPage
	groups, total, err := s.groupRepo.List(ctx, s.db, sortBy, order, page, perPage)
	if err != nil {
		logger.Error("Failed to list groups", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "グループ一覧の取得に失敗しました。", "", err)
	}
	if groups == nil {
		groups = []*model.Group{}
	}

	return &model.GroupListResponse{
		Groups:      groups,
		TotalPages:  totalPages(total, perPage),
		CurrentPage: page,
		TotalGroups: total,
	}, nil
}

func (s *groupService) GetGroup(ctx context.Context, groupID uuid.UUID) (*model.Group, error) {
	logger := middleware.GetLogger(ctx).With("group_id", groupID)

	group, err := s.groupRepo.FindByID(ctx, s.db, groupID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "グループが見つかりません。", "group_id", model.ErrNotFound)
		}
		logger.Error("Failed to find group", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "グループの取得に失敗しました。", "", err)
	}
	return group, nil
}

func (s *groupService) ListGroupWords(ctx context.Context, groupID uuid.UUID, sortBy, order string, page int) (*model.GroupWordsResponse, error) {
	logger := middleware.GetLogger(ctx).With("group_id", groupID)

	exists, err := s.groupRepo.Exists(ctx, s.db, groupID)
	if err != nil {
		logger.Error("Failed to check group existence", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "グループの確認に失敗しました。", "", err)
	}
	if !exists {
		return nil, model.NewAppError("NOT_FOUND", "グループが見つかりません。", "group_id", model.ErrNotFound)
	}

	perPage := s.cfg.App.WordsPerPage
	words, total, err := s.wordRepo.ListByGroupWithStats(ctx, s.db, groupID, sortBy, order, page, perPage)
	if err != nil {
		logger.Error("Failed to list group words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "グループ単語の取得に失敗しました。", "", err)
	}
	if words == nil {
		words = []*model.WordWithStats{}
	}

	return &model.GroupWordsResponse{
		Words:       words,
		TotalPages:  totalPages(total, perPage),
		CurrentPage: page,
		TotalWords:  total,
	}, nil
}

// DeleteGroup は所属・セッションから参照されていないグループのみ削除します
func (s *groupService) DeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("group_id", groupID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.groupRepo.Delete(ctx, tx, groupID)
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return model.NewAppError("NOT_FOUND", "グループが見つかりません。", "group_id", model.ErrNotFound)
		case errors.Is(err, model.ErrConflict):
			return model.NewAppError("CONFLICT", "単語または学習履歴から参照されているため削除できません。", "group_id", model.ErrConflict)
		default:
			logger.Error("Failed to delete group", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "グループの削除に失敗しました。", "", err)
		}
	}
	return nil
}
