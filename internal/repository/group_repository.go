//go:generate mockery --name GroupRepository --output ./mocks --outpkg mocks --case=underscore
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

var groupSortColumns = map[string]string{
	"name":        "groups.name",
	"words_count": "groups.words_count",
}

type GroupRepository interface {
	Create(ctx context.Context, tx *gorm.DB, group *model.Group) error
	FindByID(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*model.Group, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Group, error)
	Exists(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (bool, error)
	List(ctx context.Context, db *gorm.DB, sortBy, order string, page, perPage int) ([]*model.Group, int64, error)
	AddWord(ctx context.Context, tx *gorm.DB, wordID, groupID uuid.UUID) error
	RemoveWord(ctx context.Context, tx *gorm.DB, wordID, groupID uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error
}

type gormGroupRepository struct{}

func NewGormGroupRepository() GroupRepository {
	return &gormGroupRepository{}
}

func (r *gormGroupRepository) Create(ctx context.Context, tx *gorm.DB, group *model.Group) error {
	result := tx.WithContext(ctx).Create(group)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return model.ErrConflict
		}
		return fmt.Errorf("gormGroupRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormGroupRepository) FindByID(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*model.Group, error) {
	var group model.Group
	result := db.WithContext(ctx).Where("group_id = ?", groupID).First(&group)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormGroupRepository.FindByID: %w", result.Error)
	}
	return &group, nil
}

func (r *gormGroupRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Group, error) {
	var group model.Group
	result := db.WithContext(ctx).Where("name = ?", name).First(&group)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormGroupRepository.FindByName: %w", result.Error)
	}
	return &group, nil
}

func (r *gormGroupRepository) Exists(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (bool, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.Group{}).Where("group_id = ?", groupID).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("gormGroupRepository.Exists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormGroupRepository) List(ctx context.Context, db *gorm.DB, sortBy, order string, page, perPage int) ([]*model.Group, int64, error) {
	var total int64
	if e := db.WithContext(ctx).Model(&model.Group{}).Count(&total).Error; e != nil {
		return nil, 0, fmt.Errorf("gormGroupRepository.List: %w", e)
	}

	var groups []*model.Group
	result := db.WithContext(ctx).
		Order(sortClause(groupSortColumns, sortBy, order, "groups.name", "asc")).
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&groups)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("gormGroupRepository.List: %w", result.Error)
	}
	return groups, total, nil
}

// AddWord は所属行を追加し、同一トランザクションで words_count を再計算します。
// キャッシュ列は必ず所属行の実数から引き直す (増分更新でドリフトさせない)。
func (r *gormGroupRepository) AddWord(ctx context.Context, tx *gorm.DB, wordID, groupID uuid.UUID) error {
	membership := &model.WordGroup{WordID: wordID, GroupID: groupID}
	if e := tx.WithContext(ctx).Create(membership).Error; e != nil {
		if isUniqueViolation(e) {
			return model.ErrConflict
		}
		return fmt.Errorf("gormGroupRepository.AddWord: %w", e)
	}
	return r.refreshWordsCount(ctx, tx, groupID)
}

func (r *gormGroupRepository) RemoveWord(ctx context.Context, tx *gorm.DB, wordID, groupID uuid.UUID) error {
	result := tx.WithContext(ctx).
		Where("word_id = ? AND group_id = ?", wordID, groupID).
		Delete(&model.WordGroup{})
	if result.Error != nil {
		return fmt.Errorf("gormGroupRepository.RemoveWord: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return r.refreshWordsCount(ctx, tx, groupID)
}

func (r *gormGroupRepository) refreshWordsCount(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error {
	e := tx.WithContext(ctx).Model(&model.Group{}).
		Where("group_id = ?", groupID).
		Update("words_count", tx.Model(&model.WordGroup{}).Select("COUNT(*)").Where("group_id = ?", groupID)).
		Error
	if e != nil {
		return fmt.Errorf("gormGroupRepository.refreshWordsCount: %w", e)
	}
	return nil
}

// Delete は所属またはセッションから参照されているグループの削除を拒否します
func (r *gormGroupRepository) Delete(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	var refs int64
	if e := tx.WithContext(ctx).Model(&model.WordGroup{}).Where("group_id = ?", groupID).Count(&refs).Error; e != nil {
		return fmt.Errorf("gormGroupRepository.Delete: %w", e)
	}
	if refs == 0 {
		if e := tx.WithContext(ctx).Model(&model.StudySession{}).Where("group_id = ?", groupID).Count(&refs).Error; e != nil {
			return fmt.Errorf("gormGroupRepository.Delete: %w", e)
		}
	}
	if refs > 0 {
		return model.ErrConflict
	}

	result := tx.WithContext(ctx).Where("group_id = ?", groupID).Delete(&model.Group{})
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error deleting group in DB", "error", result.Error, "group_id", groupID.String())
		return fmt.Errorf("gormGroupRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
