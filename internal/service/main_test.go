// internal/service/main_test.go
package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go_lang_portal/internal/config"
	"go_lang_portal/internal/model"
	"go_lang_portal/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDB + 実リポジトリのセットアップ) ---
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to connect test database")
	require.NoError(t, repository.AutoMigrate(db), "failed to migrate test database")
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.WordsPerPage = 50
	cfg.App.GroupsPerPage = 10
	cfg.App.SessionsPerPage = 10
	cfg.App.MasteryMinCorrect = 5
	cfg.App.MasteryMaxWrong = 2
	cfg.App.StreakTimezone = "Local"
	cfg.App.SessionFallbackMinutes = 30
	return cfg
}

func newTestSessionService(db *gorm.DB, cfg *config.Config) SessionService {
	return NewSessionService(
		db,
		repository.NewGormSessionRepository(),
		repository.NewGormGroupRepository(),
		repository.NewGormActivityRepository(),
		repository.NewGormWordRepository(),
		repository.NewGormReviewRepository(),
		cfg,
	)
}

func newTestDashboardService(db *gorm.DB, cfg *config.Config) DashboardService {
	return NewDashboardService(
		db,
		repository.NewGormStatsRepository(),
		repository.NewGormSessionRepository(),
		repository.NewGormReviewRepository(),
		cfg,
	)
}

func createTestWord(t *testing.T, db *gorm.DB, german string) *model.Word {
	t.Helper()
	word := &model.Word{
		WordID:        uuid.New(),
		German:        german,
		Pronunciation: german + "-pron",
		English:       german + "-en",
	}
	require.NoError(t, db.Create(word).Error)
	return word
}

func createTestGroup(t *testing.T, db *gorm.DB, name string) *model.Group {
	t.Helper()
	group := &model.Group{GroupID: uuid.New(), Name: name}
	require.NoError(t, db.Create(group).Error)
	return group
}

func createTestActivity(t *testing.T, db *gorm.DB, name string) *model.StudyActivity {
	t.Helper()
	activity := &model.StudyActivity{
		ActivityID: uuid.New(),
		Name:       name,
		URL:        "http://localhost:9999",
		PreviewURL: "/assets/" + name + ".png",
	}
	require.NoError(t, db.Create(activity).Error)
	return activity
}

func createTestSession(t *testing.T, db *gorm.DB, groupID, activityID uuid.UUID, createdAt time.Time) *model.StudySession {
	t.Helper()
	session := &model.StudySession{
		SessionID:       uuid.New(),
		GroupID:         groupID,
		StudyActivityID: activityID,
		CreatedAt:       createdAt,
	}
	require.NoError(t, db.Create(session).Error)
	return session
}

func boolPtr(b bool) *bool { return &b }
