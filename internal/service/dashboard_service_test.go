// internal/service/dashboard_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"go_lang_portal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_dashboardService_GetStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 空のデータベースでは全てゼロ", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestDashboardService(db, testConfig())

		stats, err := svc.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, &model.DashboardStats{}, stats)
	})

	t.Run("正常系: 正解1件+不正解1件で成功率は0.5", func(t *testing.T) {
		db := setupTestDB(t)
		cfg := testConfig()
		sessionSvc := newTestSessionService(db, cfg)
		svc := newTestDashboardService(db, cfg)

		group := createTestGroup(t, db, "verbs")
		activity := createTestActivity(t, db, "quiz")
		word := createTestWord(t, db, "gehen")
		createTestWord(t, db, "kommen") // 未学習の単語
		session := createTestSession(t, db, group.GroupID, activity.ActivityID, time.Now())

		_, err := sessionSvc.RecordReviews(ctx, session.SessionID, &model.SubmitReviewsRequest{
			Reviews: []model.ReviewOutcome{
				{WordID: word.WordID, IsCorrect: boolPtr(true)},
				{WordID: word.WordID, IsCorrect: boolPtr(false)},
			},
		})
		require.NoError(t, err)

		stats, err := svc.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.TotalVocabulary)
		assert.Equal(t, int64(1), stats.TotalWordsStudied)
		assert.InDelta(t, 0.5, stats.SuccessRate, 1e-9)
		assert.Equal(t, int64(1), stats.TotalSessions)
		assert.Equal(t, int64(1), stats.ActiveGroups)
		assert.Equal(t, 1, stats.CurrentStreak) // 今日レビューした
	})

	t.Run("正常系: マスター済みは正解数・不正解数の両しきい値で判定する", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestDashboardService(db, testConfig()) // min_correct=5, max_wrong=2

		w1 := createTestWord(t, db, "w1")
		w2 := createTestWord(t, db, "w2")
		w3 := createTestWord(t, db, "w3")
		w4 := createTestWord(t, db, "w4")
		now := time.Now()
		aggregates := []*model.WordReview{
			{WordID: w1.WordID, CorrectCount: 5, WrongCount: 2, LastReviewed: now}, // ちょうど境界 → マスター
			{WordID: w2.WordID, CorrectCount: 7, WrongCount: 0, LastReviewed: now}, // マスター
			{WordID: w3.WordID, CorrectCount: 5, WrongCount: 3, LastReviewed: now}, // 誤答過多
			{WordID: w4.WordID, CorrectCount: 4, WrongCount: 0, LastReviewed: now}, // 正解不足
		}
		require.NoError(t, db.Create(&aggregates).Error)

		stats, err := svc.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.MasteredWords)
	})
}

func Test_dashboardService_CurrentStreak(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 今日・昨日・一昨日のイベントで3日", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestDashboardService(db, testConfig())

		group := createTestGroup(t, db, "verbs")
		activity := createTestActivity(t, db, "quiz")
		word := createTestWord(t, db, "lernen")
		session := createTestSession(t, db, group.GroupID, activity.ActivityID, time.Now())

		now := time.Now()
		for _, at := range []time.Time{now, now.AddDate(0, 0, -1), now.AddDate(0, 0, -2)} {
			item := &model.WordReviewItem{
				WordID:         word.WordID,
				StudySessionID: session.SessionID,
				Correct:        true,
				CreatedAt:      at,
			}
			require.NoError(t, db.Create(item).Error)
		}

		stats, err := svc.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.CurrentStreak)
	})

	t.Run("正常系: 空白日で途切れる", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestDashboardService(db, testConfig())

		group := createTestGroup(t, db, "verbs")
		activity := createTestActivity(t, db, "quiz")
		word := createTestWord(t, db, "lesen")
		session := createTestSession(t, db, group.GroupID, activity.ActivityID, time.Now())

		now := time.Now()
		// 昨日が空白: 今日と一昨日だけ
		for _, at := range []time.Time{now, now.AddDate(0, 0, -2)} {
			item := &model.WordReviewItem{
				WordID:         word.WordID,
				StudySessionID: session.SessionID,
				Correct:        true,
				CreatedAt:      at,
			}
			require.NoError(t, db.Create(item).Error)
		}

		stats, err := svc.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.CurrentStreak)
	})

	t.Run("正常系: 今日のイベントが無ければ0", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestDashboardService(db, testConfig())

		group := createTestGroup(t, db, "verbs")
		activity := createTestActivity(t, db, "quiz")
		word := createTestWord(t, db, "schlafen")
		session := createTestSession(t, db, group.GroupID, activity.ActivityID, time.Now())

		item := &model.WordReviewItem{
			WordID:         word.WordID,
			StudySessionID: session.SessionID,
			Correct:        true,
			CreatedAt:      time.Now().AddDate(0, 0, -1),
		}
		require.NoError(t, db.Create(item).Error)

		stats, err := svc.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.CurrentStreak)
	})
}

func Test_dashboardService_GetRecentSession(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: セッションが無ければ nil を返す (エラーではない)", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestDashboardService(db, testConfig())

		session, err := svc.GetRecentSession(ctx)
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("正常系: 最新セッションを件数・終了時刻つきで返す", func(t *testing.T) {
		db := setupTestDB(t)
		cfg := testConfig()
		sessionSvc := newTestSessionService(db, cfg)
		svc := newTestDashboardService(db, cfg)

		group := createTestGroup(t, db, "nouns")
		activity := createTestActivity(t, db, "flashcards")
		word := createTestWord(t, db, "Buch")

		base := time.Now().Truncate(time.Second)
		createTestSession(t, db, group.GroupID, activity.ActivityID, base.Add(-time.Hour))
		latest := createTestSession(t, db, group.GroupID, activity.ActivityID, base)

		_, err := sessionSvc.RecordReviews(ctx, latest.SessionID, &model.SubmitReviewsRequest{
			Reviews: []model.ReviewOutcome{
				{WordID: word.WordID, IsCorrect: boolPtr(true)},
			},
		})
		require.NoError(t, err)

		session, err := svc.GetRecentSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, latest.SessionID, session.ID)
		assert.Equal(t, "nouns", session.GroupName)
		assert.Equal(t, "flashcards", session.ActivityName)
		assert.Equal(t, int64(1), session.ReviewItemsCount)
		assert.WithinDuration(t, time.Now(), session.EndTime, 5*time.Second)
	})

	t.Run("正常系: イベントの無い最新セッションの終了時刻は開始+既定時間", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestDashboardService(db, testConfig())

		group := createTestGroup(t, db, "nouns")
		activity := createTestActivity(t, db, "flashcards")
		start := time.Now().Truncate(time.Second)
		createTestSession(t, db, group.GroupID, activity.ActivityID, start)

		session, err := svc.GetRecentSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, int64(0), session.ReviewItemsCount)
		assert.WithinDuration(t, start.Add(30*time.Minute), session.EndTime, time.Second)
	})
}
