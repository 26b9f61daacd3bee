//go:generate mockery --name ReviewRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_lang_portal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	InsertItems(ctx context.Context, tx *gorm.DB, items []*model.WordReviewItem) error
	ApplyOutcome(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, correct bool, now time.Time) error
	FindAggregate(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.WordReview, error)
	SessionSummaries(ctx context.Context, db *gorm.DB, sessionIDs []uuid.UUID) (map[uuid.UUID]model.SessionReviewSummary, error)
	SessionWordStats(ctx context.Context, db *gorm.DB, sessionID uuid.UUID, page, perPage int) ([]*model.SessionWordRow, int64, error)
	DeleteAllItems(ctx context.Context, tx *gorm.DB) error
	DeleteAllAggregates(ctx context.Context, tx *gorm.DB) error
}

type gormReviewRepository struct{}

func NewGormReviewRepository() ReviewRepository {
	return &gormReviewRepository{}
}

// InsertItems はイベントを送信順のまま追記します (主キーの採番順 = 送信順)
func (r *gormReviewRepository) InsertItems(ctx context.Context, tx *gorm.DB, items []*model.WordReviewItem) error {
	if len(items) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Create(items)
	if result.Error != nil {
		return fmt.Errorf("gormReviewRepository.InsertItems: %w", result.Error)
	}
	return nil
}

// ApplyOutcome は集計行を「増分付きUPSERT」で更新します。
// 単一のアトミックなSQL文で行うこと (read-then-write にすると
// 同一単語への並行レビューで更新が失われる)。
func (r *gormReviewRepository) ApplyOutcome(ctx context.Context, tx *gorm.DB, wordID uuid.UUID, correct bool, now time.Time) error {
	correctDelta, wrongDelta := 0, 1
	if correct {
		correctDelta, wrongDelta = 1, 0
	}

	aggregate := &model.WordReview{
		WordID:       wordID,
		CorrectCount: correctDelta,
		WrongCount:   wrongDelta,
		LastReviewed: now,
	}
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "word_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"correct_count": gorm.Expr("word_reviews.correct_count + ?", correctDelta),
			"wrong_count":   gorm.Expr("word_reviews.wrong_count + ?", wrongDelta),
			"last_reviewed": now,
		}),
	}).Create(aggregate)
	if result.Error != nil {
		return fmt.Errorf("gormReviewRepository.ApplyOutcome: %w", result.Error)
	}
	return nil
}

func (r *gormReviewRepository) FindAggregate(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.WordReview, error) {
	var aggregate model.WordReview
	result := db.WithContext(ctx).Where("word_id = ?", wordID).First(&aggregate)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormReviewRepository.FindAggregate: %w", result.Error)
	}
	return &aggregate, nil
}

// SessionSummaries は一覧ページ分のセッションについて、イベント数と最終イベント
// 時刻をまとめて返します。時刻は実カラムとして読み、集計はGo側で行う。
func (r *gormReviewRepository) SessionSummaries(ctx context.Context, db *gorm.DB, sessionIDs []uuid.UUID) (map[uuid.UUID]model.SessionReviewSummary, error) {
	summaries := make(map[uuid.UUID]model.SessionReviewSummary, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return summaries, nil
	}

	var rows []struct {
		StudySessionID uuid.UUID
		CreatedAt      time.Time
	}
	result := db.WithContext(ctx).Model(&model.WordReviewItem{}).
		Select("study_session_id, created_at").
		Where("study_session_id IN ?", sessionIDs).
		Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("gormReviewRepository.SessionSummaries: %w", result.Error)
	}

	for _, row := range rows {
		summary := summaries[row.StudySessionID]
		summary.Count++
		if summary.LastReviewedAt == nil || row.CreatedAt.After(*summary.LastReviewedAt) {
			t := row.CreatedAt
			summary.LastReviewedAt = &t
		}
		summaries[row.StudySessionID] = summary
	}
	return summaries, nil
}

// SessionWordStats はセッション内でレビューされた単語と、そのセッション内での
// 正解/不正解数を返します
func (r *gormReviewRepository) SessionWordStats(ctx context.Context, db *gorm.DB, sessionID uuid.UUID, page, perPage int) ([]*model.SessionWordRow, int64, error) {
	var total int64
	e := db.WithContext(ctx).Model(&model.WordReviewItem{}).
		Where("study_session_id = ?", sessionID).
		Distinct("word_id").
		Count(&total).Error
	if e != nil {
		return nil, 0, fmt.Errorf("gormReviewRepository.SessionWordStats: %w", e)
	}

	var rows []*model.SessionWordRow
	result := db.WithContext(ctx).Table("words AS w").
		Select(`w.word_id AS id, w.german, w.pronunciation, w.english, w.gender, w.plural,
			SUM(CASE WHEN i.correct THEN 1 ELSE 0 END) AS correct_count,
			SUM(CASE WHEN i.correct THEN 0 ELSE 1 END) AS wrong_count`).
		Joins("JOIN word_review_items i ON i.word_id = w.word_id").
		Where("i.study_session_id = ?", sessionID).
		Group("w.word_id, w.german, w.pronunciation, w.english, w.gender, w.plural").
		Order("w.german ASC").
		Limit(perPage).Offset((page - 1) * perPage).
		Scan(&rows)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("gormReviewRepository.SessionWordStats: %w", result.Error)
	}
	return rows, total, nil
}

func (r *gormReviewRepository) DeleteAllItems(ctx context.Context, tx *gorm.DB) error {
	result := tx.WithContext(ctx).Where("1 = 1").Delete(&model.WordReviewItem{})
	if result.Error != nil {
		return fmt.Errorf("gormReviewRepository.DeleteAllItems: %w", result.Error)
	}
	return nil
}

func (r *gormReviewRepository) DeleteAllAggregates(ctx context.Context, tx *gorm.DB) error {
	result := tx.WithContext(ctx).Where("1 = 1").Delete(&model.WordReview{})
	if result.Error != nil {
		return fmt.Errorf("gormReviewRepository.DeleteAllAggregates: %w", result.Error)
	}
	return nil
}
