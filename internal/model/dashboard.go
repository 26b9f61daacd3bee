// internal/model/dashboard.go
package model

// DashboardStats はダッシュボード統計のレスポンスDTOです。
// 比率はデータが無いとき 0 を返す (ゼロ除算しない)。
type DashboardStats struct {
	TotalVocabulary   int64   `json:"total_vocabulary"`
	TotalWordsStudied int64   `json:"total_words_studied"`
	MasteredWords     int64   `json:"mastered_words"`
	SuccessRate       float64 `json:"success_rate"`
	TotalSessions     int64   `json:"total_sessions"`
	ActiveGroups      int64   `json:"active_groups"`
	CurrentStreak     int     `json:"current_streak"`
}
