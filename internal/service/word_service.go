//go:generate mockery --name WordService --output ./mocks --outpkg mocks --case=underscore --structname MockWordService
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

type WordService interface {
	ListWords(ctx context.Context, sortBy, order string, page int) (*model.WordListResponse, error)
	GetWord(ctx context.Context, wordID uuid.UUID) (*model.WordDetailResponse, error)
	DeleteWord(ctx context.Context, wordID uuid.UUID) error
}

type wordService struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
	cfg      *config.Config
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository, cfg *config.Config) WordService {
	return &wordService{db: db, wordRepo: wordRepo, cfg: cfg}
}

func (s *wordService) ListWords(ctx context.Context, sortBy, order string, page int) (*model.WordListResponse, error) {
	logger := middleware.GetLogger(ctx)

	perPage := s.cfg.App.WordsPerPage
	words, total, err := s.wordRepo.ListWithStats(ctx, s.db, sortBy, order, page, perPage)
	if err != nil {
		logger.Error("Failed to list words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語一覧の取得に失敗しました。", "", err)
	}
	if words == nil {
		words = []*model.WordWithStats{}
	}

	return &model.WordListResponse{
		Words:       words,
		TotalPages:  totalPages(total, perPage),
		CurrentPage: page,
		TotalWords:  total,
	}, nil
}

func (s *wordService) GetWord(ctx context.Context, wordID uuid.UUID) (*model.WordDetailResponse, error) {
	logger := middleware.GetLogger(ctx).With("word_id", wordID)

	word, err := s.wordRepo.FindWithStats(ctx, s.db, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "単語が見つかりません。", "word_id", model.ErrNotFound)
		}
		logger.Error("Failed to find word", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の取得に失敗しました。", "", err)
	}

	groups, err := s.wordRepo.GroupsOfWord(ctx, s.db, wordID)
	if err != nil {
		logger.Error("Failed to find word groups", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "所属グループの取得に失敗しました。", "", err)
	}
	if groups == nil {
		groups = []*model.GroupSummary{}
	}

	return &model.WordDetailResponse{WordWithStats: *word, Groups: groups}, nil
}

// DeleteWord は履歴から参照されていない単語のみ削除します (それ以外は409)
func (s *wordService) DeleteWord(ctx context.Context, wordID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("word_id", wordID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.wordRepo.Delete(ctx, tx, wordID)
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return model.NewAppError("NOT_FOUND", "単語が見つかりません。", "word_id", model.ErrNotFound)
		case errors.Is(err, model.ErrConflict):
			return model.NewAppError("CONFLICT", "学習履歴またはグループから参照されているため削除できません。", "word_id", model.ErrConflict)
		default:
			logger.Error("Failed to delete word", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の削除に失敗しました。", "", err)
		}
	}
	return nil
}
