// internal/model/group.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Group は単語のグループ(コレクション)を表します。
// WordsCount は word_groups の行数と常に一致させるキャッシュ列です
// (所属変更のたびに再計算し、ドリフトさせない)。
type Group struct {
	GroupID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null;uniqueIndex" json:"group_name"`
	WordsCount int       `gorm:"not null;default:0" json:"word_count"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupSummary は他リソースに埋め込むグループの最小表現です
type GroupSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// グループ一覧レスポンスDTO
type GroupListResponse struct {
	Groups      []*Group `json:"groups"`
	TotalPages  int      `json:"total_pages"`
	CurrentPage int      `json:"current_page"`
	TotalGroups int64    `json:"total_groups"`
}

// グループ所属単語一覧レスポンスDTO
type GroupWordsResponse struct {
	Words       []*WordWithStats `json:"words"`
	TotalPages  int              `json:"total_pages"`
	CurrentPage int              `json:"current_page"`
	TotalWords  int64            `json:"total_words"`
}
