// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// WordReviewItem は1回の解答イベントです。追記専用で、更新・個別削除はしない。
// 主キーは自動採番の整数とし、同一タイムスタンプ内の送信順をそのまま保存する
// (「最後にレビューした単語」のタイブレークに使う)。
type WordReviewItem struct {
	ReviewItemID   int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	WordID         uuid.UUID `gorm:"type:uuid;not null;index" json:"word_id"`
	StudySessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"study_session_id"`
	Correct        bool      `gorm:"not null" json:"correct"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (WordReviewItem) TableName() string {
	return "word_review_items"
}

// WordReview は単語ごとの集計(正解数/不正解数/最終レビュー時刻)です。
// 不変条件: correct_count + wrong_count == その単語の word_review_items 行数。
// 行が無い単語はカウント0とみなす。リセットまで単調増加。
type WordReview struct {
	WordID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"word_id"`
	CorrectCount int       `gorm:"not null;default:0" json:"correct_count"`
	WrongCount   int       `gorm:"not null;default:0" json:"wrong_count"`
	LastReviewed time.Time `gorm:"not null" json:"last_reviewed"`
}

func (WordReview) TableName() string {
	return "word_reviews"
}

// ReviewOutcome は1件の解答結果です
type ReviewOutcome struct {
	WordID    uuid.UUID `json:"word_id" validate:"required"`
	IsCorrect *bool     `json:"is_correct" validate:"required"`
}

// レビュー結果一括送信リクエストDTO
type SubmitReviewsRequest struct {
	Reviews []ReviewOutcome `json:"reviews" validate:"required,min=1,dive"`
}

type SubmitReviewsResponse struct {
	Message      string    `json:"message"`
	SessionID    uuid.UUID `json:"session_id"`
	ReviewsCount int       `json:"reviews_count"`
}

// SessionReviewSummary はセッション単位のイベント集計です (一覧の計算値用)
type SessionReviewSummary struct {
	Count          int64
	LastReviewedAt *time.Time
}
