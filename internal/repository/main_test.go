// internal/repository/main_test.go
package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go_lang_portal/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
// テストごとに別名のインメモリDBを使う (cache=shared は同名DBを共有するため)
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent), // テスト中はログを抑制
		TranslateError: true,
	})
	require.NoError(t, err, "failed to connect test database")
	require.NoError(t, AutoMigrate(db), "failed to migrate test database")
	return db
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

func createTestReviewItem(t *testing.T, db *gorm.DB, wordID, sessionID uuid.UUID, correct bool, createdAt time.Time) {
	t.Helper()
	item := &model.WordReviewItem{
		WordID:         wordID,
		StudySessionID: sessionID,
		Correct:        correct,
		CreatedAt:      createdAt,
	}
	require.NoError(t, db.Create(item).Error)
}
