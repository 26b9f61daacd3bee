//go:generate mockery --name StatsRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"go_lang_portal/internal/model"

	"gorm.io/gorm"
)

// StatsRepository は統計エンジンが使う読み取り専用クエリ群です。
// 結果はクエリの寿命を超えてキャッシュしない。
type StatsRepository interface {
	CountWords(ctx context.Context, db *gorm.DB) (int64, error)
	CountDistinctWordsStudied(ctx context.Context, db *gorm.DB) (int64, error)
	SumReviewCounts(ctx context.Context, db *gorm.DB) (correct int64, wrong int64, err error)
	CountMastered(ctx context.Context, db *gorm.DB, minCorrect, maxWrong int) (int64, error)
	ListReviewTimes(ctx context.Context, db *gorm.DB) ([]time.Time, error)
}

type gormStatsRepository struct{}

func NewGormStatsRepository() StatsRepository {
	return &gormStatsRepository{}
}

func (r *gormStatsRepository) CountWords(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	if e := db.WithContext(ctx).Model(&model.Word{}).Count(&total).Error; e != nil {
		return 0, fmt.Errorf("gormStatsRepository.CountWords: %w", e)
	}
	return total, nil
}

func (r *gormStatsRepository) CountDistinctWordsStudied(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	e := db.WithContext(ctx).Model(&model.WordReviewItem{}).
		Distinct("word_id").
		Count(&total).Error
	if e != nil {
		return 0, fmt.Errorf("gormStatsRepository.CountDistinctWordsStudied: %w", e)
	}
	return total, nil
}

// SumReviewCounts は全集計行の正解数・不正解数の合計を返します。
// 集計行が1つも無いときは (0, 0)。
func (r *gormStatsRepository) SumReviewCounts(ctx context.Context, db *gorm.DB) (int64, int64, error) {
	var sums struct {
		Correct int64
		Wrong   int64
	}
	result := db.WithContext(ctx).Model(&model.WordReview{}).
		Select("COALESCE(SUM(correct_count), 0) AS correct, COALESCE(SUM(wrong_count), 0) AS wrong").
		Take(&sums)
	if result.Error != nil {
		return 0, 0, fmt.Errorf("gormStatsRepository.SumReviewCounts: %w", result.Error)
	}
	return sums.Correct, sums.Wrong, nil
}

func (r *gormStatsRepository) CountMastered(ctx context.Context, db *gorm.DB, minCorrect, maxWrong int) (int64, error) {
	var total int64
	e := db.WithContext(ctx).Model(&model.WordReview{}).
		Where("correct_count >= ? AND wrong_count <= ?", minCorrect, maxWrong).
		Count(&total).Error
	if e != nil {
		return 0, fmt.Errorf("gormStatsRepository.CountMastered: %w", e)
	}
	return total, nil
}

// ListReviewTimes は全イベントのタイムスタンプを新しい順に返します。
// 日付境界(タイムゾーン)の解釈はGo側で行うため、DBでは日付に丸めない。
func (r *gormStatsRepository) ListReviewTimes(ctx context.Context, db *gorm.DB) ([]time.Time, error) {
	var times []time.Time
	result := db.WithContext(ctx).Model(&model.WordReviewItem{}).
		Order("created_at DESC").
		Pluck("created_at", &times)
	if result.Error != nil {
		return nil, fmt.Errorf("gormStatsRepository.ListReviewTimes: %w", result.Error)
	}
	return times, nil
}
