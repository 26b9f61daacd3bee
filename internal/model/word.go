// internal/model/word.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Word は学習対象の単語を表します
type Word struct {
	WordID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	German        string    `gorm:"not null;index" json:"german"`
	Pronunciation string    `gorm:"not null" json:"pronunciation"`
	English       string    `gorm:"not null" json:"english"`
	Gender        *string   `json:"gender"` // 名詞のみ (der/die/das)
	Plural        *string   `json:"plural"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

func (Word) TableName() string {
	return "words"
}

// WordGroup は単語とグループの多対多の所属関係です (一意ペア)
type WordGroup struct {
	WordID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (WordGroup) TableName() string {
	return "word_groups"
}

// WordWithStats は単語に集計値(正解数/不正解数)を結合した読み取り用の行です。
// 集計行が無い単語は COALESCE で 0 になります。
type WordWithStats struct {
	ID            uuid.UUID `json:"id"`
	German        string    `json:"german"`
	Pronunciation string    `json:"pronunciation"`
	English       string    `json:"english"`
	Gender        *string   `json:"gender"`
	Plural        *string   `json:"plural"`
	CorrectCount  int       `json:"correct_count"`
	WrongCount    int       `json:"wrong_count"`
}

// 単語一覧レスポンスDTO
type WordListResponse struct {
	Words       []*WordWithStats `json:"words"`
	TotalPages  int              `json:"total_pages"`
	CurrentPage int              `json:"current_page"`
	TotalWords  int64            `json:"total_words"`
}

// 単語詳細レスポンスDTO (所属グループを含む)
type WordDetailResponse struct {
	WordWithStats
	Groups []*GroupSummary `json:"groups"`
}
