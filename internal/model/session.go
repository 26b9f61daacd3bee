// internal/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// StudySession は「あるグループをあるアクティビティで学習した」1回の記録です。
// 作成後は不変で、削除は全リセット時のみ。
type StudySession struct {
	SessionID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID         uuid.UUID `gorm:"type:uuid;not null;index" json:"group_id"`
	StudyActivityID uuid.UUID `gorm:"type:uuid;not null;index" json:"study_activity_id"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`

	// 関連 (Preload用)
	Group    *Group         `gorm:"foreignKey:GroupID;references:GroupID" json:"-"`
	Activity *StudyActivity `gorm:"foreignKey:StudyActivityID;references:ActivityID" json:"-"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}

// セッション作成リクエストDTO
type CreateStudySessionRequest struct {
	GroupID         uuid.UUID `json:"group_id" validate:"required"`
	StudyActivityID uuid.UUID `json:"study_activity_id" validate:"required"`
}

type CreateStudySessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
}

// SessionListRow はセッション一覧クエリのスキャン先です (JOIN済みの実カラムのみ)
type SessionListRow struct {
	ID              uuid.UUID
	GroupID         uuid.UUID
	GroupName       string
	StudyActivityID uuid.UUID
	ActivityName    string
	CreatedAt       time.Time
}

// ListSessionsQuery はセッション一覧の検索条件です
type ListSessionsQuery struct {
	GroupID *uuid.UUID
	SortBy  string
	Order   string
	Page    int
	PerPage int
}

// StudySessionResponse はセッション一覧・詳細の1件分です。
// EndTime は最後のレビューイベント時刻、イベントが無い場合は
// 開始時刻+既定時間で補完する表示用の計算値 (保存しない)。
type StudySessionResponse struct {
	ID               uuid.UUID `json:"id"`
	GroupID          uuid.UUID `json:"group_id"`
	GroupName        string    `json:"group_name"`
	StudyActivityID  uuid.UUID `json:"study_activity_id"`
	ActivityName     string    `json:"activity_name"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	ReviewItemsCount int64     `json:"review_items_count"`
}

type StudySessionListResponse struct {
	Items      []*StudySessionResponse `json:"items"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	PerPage    int                     `json:"per_page"`
	TotalPages int                     `json:"total_pages"`
}

// SessionWordRow はセッション内でレビューされた単語とセッション内成績です
type SessionWordRow struct {
	ID            uuid.UUID `json:"id"`
	German        string    `json:"german"`
	Pronunciation string    `json:"pronunciation"`
	English       string    `json:"english"`
	Gender        *string   `json:"gender"`
	Plural        *string   `json:"plural"`
	CorrectCount  int       `json:"correct_count"`
	WrongCount    int       `json:"wrong_count"`
}

type SessionDetailResponse struct {
	Session    *StudySessionResponse `json:"session"`
	Words      []*SessionWordRow     `json:"words"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PerPage    int                   `json:"per_page"`
	TotalPages int                   `json:"total_pages"`
}

type ResetStudyHistoryResponse struct {
	Message         string `json:"message"`
	ClearedSessions int64  `json:"cleared_sessions"`
}
