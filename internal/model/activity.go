// internal/model/activity.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// StudyActivity は学習モードの静的カタログです (起動URLとプレビューURLを持つ)
type StudyActivity struct {
	ActivityID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null;uniqueIndex" json:"name"`
	URL        string    `gorm:"not null" json:"url"`
	PreviewURL string    `gorm:"not null" json:"preview_url"`
	CreatedAt  time.Time `json:"-"`
}

func (StudyActivity) TableName() string {
	return "study_activities"
}

type StudyActivityListResponse struct {
	StudyActivities []*StudyActivity `json:"study_activities"`
}
