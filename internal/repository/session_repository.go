//go:generate mockery --name SessionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_lang_portal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sessionSortColumns はセッション一覧のソートキーをSQL式にマッピングします。
// endTime と reviewItemsCount は計算式をORDER BYにだけ使い、値としては読まない。
// endTime の +30分フォールバックは定数オフセットなので順序に影響せず、
// 並べ替えは COALESCE(最終イベント時刻, 開始時刻) で足りる。
var sessionSortColumns = map[string]string{
	"startTime":        "s.created_at",
	"endTime":          "COALESCE((SELECT MAX(i.created_at) FROM word_review_items i WHERE i.study_session_id = s.session_id), s.created_at)",
	"activityName":     "a.name",
	"groupName":        "g.name",
	"reviewItemsCount": "(SELECT COUNT(*) FROM word_review_items i WHERE i.study_session_id = s.session_id)",
}

type SessionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, session *model.StudySession) error
	FindByID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (*model.StudySession, error)
	Exists(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (bool, error)
	List(ctx context.Context, db *gorm.DB, q model.ListSessionsQuery) ([]*model.SessionListRow, int64, error)
	FindMostRecent(ctx context.Context, db *gorm.DB) (*model.StudySession, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	CountActiveGroups(ctx context.Context, db *gorm.DB) (int64, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

func (r *gormSessionRepository) Create(ctx context.Context, tx *gorm.DB, session *model.StudySession) error {
	result := tx.WithContext(ctx).Create(session)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return model.ErrNotFound
		}
		return fmt.Errorf("gormSessionRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormSessionRepository) FindByID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (*model.StudySession, error) {
	var session model.StudySession
	result := db.WithContext(ctx).
		Preload("Group").
		Preload("Activity").
		Where("session_id = ?", sessionID).
		First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormSessionRepository.FindByID: %w", result.Error)
	}
	return &session, nil
}

func (r *gormSessionRepository) Exists(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (bool, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.StudySession{}).Where("session_id = ?", sessionID).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("gormSessionRepository.Exists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormSessionRepository) List(ctx context.Context, db *gorm.DB, q model.ListSessionsQuery) ([]*model.SessionListRow, int64, error) {
	base := func() *gorm.DB {
		query := db.WithContext(ctx).Table("study_sessions AS s").
			Joins("JOIN groups g ON g.group_id = s.group_id").
			Joins("JOIN study_activities a ON a.activity_id = s.study_activity_id")
		if q.GroupID != nil {
			query = query.Where("s.group_id = ?", *q.GroupID)
		}
		return query
	}

	var total int64
	if e := base().Count(&total).Error; e != nil {
		return nil, 0, fmt.Errorf("gormSessionRepository.List: %w", e)
	}

	var rows []*model.SessionListRow
	result := base().
		Select(`s.session_id AS id, s.group_id, g.name AS group_name,
			s.study_activity_id, a.name AS activity_name, s.created_at`).
		Order(sortClause(sessionSortColumns, q.SortBy, q.Order, "s.created_at", "desc")).
		Limit(q.PerPage).Offset((q.Page - 1) * q.PerPage).
		Scan(&rows)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("gormSessionRepository.List: %w", result.Error)
	}
	return rows, total, nil
}

// FindMostRecent は最新のセッションを返します。存在しない場合は ErrNotFound
// (呼び出し側でnil結果にマッピングする)。
func (r *gormSessionRepository) FindMostRecent(ctx context.Context, db *gorm.DB) (*model.StudySession, error) {
	var session model.StudySession
	result := db.WithContext(ctx).
		Preload("Group").
		Preload("Activity").
		Order("created_at DESC").
		First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormSessionRepository.FindMostRecent: %w", result.Error)
	}
	return &session, nil
}

func (r *gormSessionRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	if e := db.WithContext(ctx).Model(&model.StudySession{}).Count(&total).Error; e != nil {
		return 0, fmt.Errorf("gormSessionRepository.Count: %w", e)
	}
	return total, nil
}

func (r *gormSessionRepository) CountActiveGroups(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	e := db.WithContext(ctx).Model(&model.StudySession{}).
		Distinct("group_id").
		Count(&total).Error
	if e != nil {
		return 0, fmt.Errorf("gormSessionRepository.CountActiveGroups: %w", e)
	}
	return total, nil
}

func (r *gormSessionRepository) DeleteAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	result := tx.WithContext(ctx).Where("1 = 1").Delete(&model.StudySession{})
	if result.Error != nil {
		return 0, fmt.Errorf("gormSessionRepository.DeleteAll: %w", result.Error)
	}
	return result.RowsAffected, nil
}
