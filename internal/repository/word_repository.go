//go:generate mockery --name WordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_lang_portal/internal/middleware"
	"go_lang_portal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// wordSortColumns は単語一覧で許可するソートキーのホワイトリストです。
// 未知のキーはエラーにせずデフォルト(german)に落とす。
var wordSortColumns = map[string]string{
	"german":        "words.german",
	"pronunciation": "words.pronunciation",
	"english":       "words.english",
	"gender":        "words.gender",
	"plural":        "words.plural",
	"correct_count": "correct_count",
	"wrong_count":   "wrong_count",
}

type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error
	FindByID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Word, error)
	FindWithStats(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.WordWithStats, error)
	FindMissingIDs(ctx context.Context, db *gorm.DB, wordIDs []uuid.UUID) ([]uuid.UUID, error)
	ListWithStats(ctx context.Context, db *gorm.DB, sortBy, order string, page, perPage int) ([]*model.WordWithStats, int64, error)
	ListByGroupWithStats(ctx context.Context, db *gorm.DB, groupID uuid.UUID, sortBy, order string, page, perPage int) ([]*model.WordWithStats, int64, error)
	GroupsOfWord(ctx context.Context, db *gorm.DB, wordID uuid.UUID) ([]*model.GroupSummary, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, wordID uuid.UUID) error
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return model.ErrConflict
		}
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.Word, error) {
	var word model.Word
	result := db.WithContext(ctx).Where("word_id = ?", wordID).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormWordRepository.FindByID: %w", result.Error)
	}
	return &word, nil
}

func (r *gormWordRepository) FindWithStats(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.WordWithStats, error) {
	var row model.WordWithStats
	result := db.WithContext(ctx).Table("words").
		Select(`words.word_id AS id, words.german, words.pronunciation, words.english, words.gender, words.plural,
			COALESCE(r.correct_count, 0) AS correct_count,
			COALESCE(r.wrong_count, 0) AS wrong_count`).
		Joins("LEFT JOIN word_reviews r ON r.word_id = words.word_id").
		Where("words.word_id = ?", wordID).
		Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormWordRepository.FindWithStats: %w", result.Error)
	}
	return &row, nil
}

// FindMissingIDs は渡されたIDのうちカタログに存在しないものを返します。
// RecordReviews が「全件検証してから適用」するために使う。
func (r *gormWordRepository) FindMissingIDs(ctx context.Context, db *gorm.DB, wordIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(wordIDs) == 0 {
		return nil, nil
	}
	var existing []uuid.UUID
	result := db.WithContext(ctx).Model(&model.Word{}).
		Where("word_id IN ?", wordIDs).
		Pluck("word_id", &existing)
	if result.Error != nil {
		return nil, fmt.Errorf("gormWordRepository.FindMissingIDs: %w", result.Error)
	}
	found := make(map[uuid.UUID]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}
	var missing []uuid.UUID
	seen := make(map[uuid.UUID]bool, len(wordIDs))
	for _, id := range wordIDs {
		if !found[id] && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	return missing, nil
}

func (r *gormWordRepository) ListWithStats(ctx context.Context, db *gorm.DB, sortBy, order string, page, perPage int) ([]*model.WordWithStats, int64, error) {
	logger := middleware.GetLogger(ctx)

	var total int64
	if err := db.WithContext(ctx).Model(&model.Word{}).Count(&total).Error; err != nil {
		logger.Error("Error counting words in DB", "error", err)
		return nil, 0, fmt.Errorf("gormWordRepository.ListWithStats: %w", err)
	}

	var rows []*model.WordWithStats
	result := db.WithContext(ctx).Table("words").
		Select(`words.word_id AS id, words.german, words.pronunciation, words.english, words.gender, words.plural,
			COALESCE(r.correct_count, 0) AS correct_count,
			COALESCE(r.wrong_count, 0) AS wrong_count`).
		Joins("LEFT JOIN word_reviews r ON r.word_id = words.word_id").
		Order(sortClause(wordSortColumns, sortBy, order, "words.german", "asc")).
		Limit(perPage).Offset((page - 1) * perPage).
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error listing words in DB", "error", result.Error)
		return nil, 0, fmt.Errorf("gormWordRepository.ListWithStats: %w", result.Error)
	}
	return rows, total, nil
}

func (r *gormWordRepository) ListByGroupWithStats(ctx context.Context, db *gorm.DB, groupID uuid.UUID, sortBy, order string, page, perPage int) ([]*model.WordWithStats, int64, error) {
	var total int64
	if e := db.WithContext(ctx).Model(&model.WordGroup{}).Where("group_id = ?", groupID).Count(&total).Error; e != nil {
		return nil, 0, fmt.Errorf("gormWordRepository.ListByGroupWithStats: %w", e)
	}

	var rows []*model.WordWithStats
	result := db.WithContext(ctx).Table("words").
		Select(`words.word_id AS id, words.german, words.pronunciation, words.english, words.gender, words.plural,
			COALESCE(r.correct_count, 0) AS correct_count,
			COALESCE(r.wrong_count, 0) AS wrong_count`).
		Joins("JOIN word_groups wg ON wg.word_id = words.word_id").
		Joins("LEFT JOIN word_reviews r ON r.word_id = words.word_id").
		Where("wg.group_id = ?", groupID).
		Order(sortClause(wordSortColumns, sortBy, order, "words.german", "asc")).
		Limit(perPage).Offset((page - 1) * perPage).
		Scan(&rows)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("gormWordRepository.ListByGroupWithStats: %w", result.Error)
	}
	return rows, total, nil
}

func (r *gormWordRepository) GroupsOfWord(ctx context.Context, db *gorm.DB, wordID uuid.UUID) ([]*model.GroupSummary, error) {
	var rows []*model.GroupSummary
	result := db.WithContext(ctx).Table("groups").
		Select("groups.group_id AS id, groups.name").
		Joins("JOIN word_groups wg ON wg.group_id = groups.group_id").
		Where("wg.word_id = ?", wordID).
		Order("groups.name ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("gormWordRepository.GroupsOfWord: %w", result.Error)
	}
	return rows, nil
}

func (r *gormWordRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	if e := db.WithContext(ctx).Model(&model.Word{}).Count(&total).Error; e != nil {
		return 0, fmt.Errorf("gormWordRepository.Count: %w", e)
	}
	return total, nil
}

// Delete は所属・レビュー履歴から参照されている単語の削除を拒否します
// (履歴を守る参照整合性、エラーは ErrConflict)。
func (r *gormWordRepository) Delete(ctx context.Context, tx *gorm.DB, wordID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	var refs int64
	if e := tx.WithContext(ctx).Model(&model.WordGroup{}).Where("word_id = ?", wordID).Count(&refs).Error; e != nil {
		return fmt.Errorf("gormWordRepository.Delete: %w", e)
	}
	if refs == 0 {
		if e := tx.WithContext(ctx).Model(&model.WordReviewItem{}).Where("word_id = ?", wordID).Count(&refs).Error; e != nil {
			return fmt.Errorf("gormWordRepository.Delete: %w", e)
		}
	}
	if refs > 0 {
		return model.ErrConflict
	}

	result := tx.WithContext(ctx).Where("word_id = ?", wordID).Delete(&model.Word{})
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error deleting word in DB", "error", result.Error, "word_id", wordID.String())
		return fmt.Errorf("gormWordRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
