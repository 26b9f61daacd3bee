// internal/repository/review_repository_test.go
package repository

import (
	"context"
	"testing"
	"time"

	"go_lang_portal/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_gormReviewRepository_ApplyOutcome(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 初回の解答で集計行が作成される", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormReviewRepository()
		word := createTestWord(t, db, "gehen")
		now := time.Now()

		err := repo.ApplyOutcome(ctx, db, word.WordID, true, now)
		require.NoError(t, err)

		aggregate, err := repo.FindAggregate(ctx, db, word.WordID)
		require.NoError(t, err)
		assert.Equal(t, 1, aggregate.CorrectCount)
		assert.Equal(t, 0, aggregate.WrongCount)
		assert.WithinDuration(t, now, aggregate.LastReviewed, time.Second)
	})

	t.Run("正常系: 既存の集計行は増分更新される", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormReviewRepository()
		word := createTestWord(t, db, "kommen")

		t1 := time.Now()
		t2 := t1.Add(time.Minute)
		require.NoError(t, repo.ApplyOutcome(ctx, db, word.WordID, true, t1))
		require.NoError(t, repo.ApplyOutcome(ctx, db, word.WordID, true, t1))
		require.NoError(t, repo.ApplyOutcome(ctx, db, word.WordID, false, t2))

		aggregate, err := repo.FindAggregate(ctx, db, word.WordID)
		require.NoError(t, err)
		assert.Equal(t, 2, aggregate.CorrectCount)
		assert.Equal(t, 1, aggregate.WrongCount)
		assert.WithinDuration(t, t2, aggregate.LastReviewed, time.Second)
	})

	t.Run("正常系: 集計の総和はイベント数と一致する", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormReviewRepository()
		word := createTestWord(t, db, "sehen")
		group := createTestGroup(t, db, "verbs")
		activity := createTestActivity(t, db, "quiz")
		session := createTestSession(t, db, group.GroupID, activity.ActivityID, time.Now())

		outcomes := []bool{true, false, true, true, false, true, false}
		now := time.Now()
		items := make([]*model.WordReviewItem, 0, len(outcomes))
		for _, correct := range outcomes {
			items = append(items, &model.WordReviewItem{
				WordID:         word.WordID,
				StudySessionID: session.SessionID,
				Correct:        correct,
				CreatedAt:      now,
			})
		}
		require.NoError(t, repo.InsertItems(ctx, db, items))
		for _, correct := range outcomes {
			require.NoError(t, repo.ApplyOutcome(ctx, db, word.WordID, correct, now))
		}

		var itemCount int64
		require.NoError(t, db.Model(&model.WordReviewItem{}).Where("word_id = ?", word.WordID).Count(&itemCount).Error)

		aggregate, err := repo.FindAggregate(ctx, db, word.WordID)
		require.NoError(t, err)
		assert.Equal(t, itemCount, int64(aggregate.CorrectCount+aggregate.WrongCount))
		assert.Equal(t, 4, aggregate.CorrectCount)
		assert.Equal(t, 3, aggregate.WrongCount)
	})
}

func Test_gormReviewRepository_FindAggregate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormReviewRepository()

	t.Run("異常系: 集計行が無い単語は ErrNotFound", func(t *testing.T) {
		_, err := repo.FindAggregate(ctx, db, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func Test_gormReviewRepository_SessionSummaries(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormReviewRepository()

	word := createTestWord(t, db, "essen")
	group := createTestGroup(t, db, "verbs")
	activity := createTestActivity(t, db, "quiz")
	base := time.Now().Truncate(time.Second)

	s1 := createTestSession(t, db, group.GroupID, activity.ActivityID, base)
	s2 := createTestSession(t, db, group.GroupID, activity.ActivityID, base.Add(time.Hour))
	s3 := createTestSession(t, db, group.GroupID, activity.ActivityID, base.Add(2*time.Hour))

	createTestReviewItem(t, db, word.WordID, s1.SessionID, true, base.Add(time.Minute))
	createTestReviewItem(t, db, word.WordID, s1.SessionID, false, base.Add(2*time.Minute))
	createTestReviewItem(t, db, word.WordID, s2.SessionID, true, base.Add(time.Hour+time.Minute))

	t.Run("正常系: セッションごとの件数と最終イベント時刻", func(t *testing.T) {
		summaries, err := repo.SessionSummaries(ctx, db, []uuid.UUID{s1.SessionID, s2.SessionID, s3.SessionID})
		require.NoError(t, err)

		assert.Equal(t, int64(2), summaries[s1.SessionID].Count)
		require.NotNil(t, summaries[s1.SessionID].LastReviewedAt)
		assert.WithinDuration(t, base.Add(2*time.Minute), *summaries[s1.SessionID].LastReviewedAt, time.Second)

		assert.Equal(t, int64(1), summaries[s2.SessionID].Count)

		// イベントの無いセッションはゼロ値 (LastReviewedAt=nil)
		assert.Equal(t, int64(0), summaries[s3.SessionID].Count)
		assert.Nil(t, summaries[s3.SessionID].LastReviewedAt)
	})

	t.Run("正常系: 空のID列は空のマップ", func(t *testing.T) {
		summaries, err := repo.SessionSummaries(ctx, db, nil)
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})
}

func Test_gormReviewRepository_SessionWordStats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormReviewRepository()

	wordA := createTestWord(t, db, "arbeiten")
	wordB := createTestWord(t, db, "brauchen")
	group := createTestGroup(t, db, "verbs")
	activity := createTestActivity(t, db, "quiz")
	now := time.Now()
	session := createTestSession(t, db, group.GroupID, activity.ActivityID, now)
	other := createTestSession(t, db, group.GroupID, activity.ActivityID, now)

	createTestReviewItem(t, db, wordB.WordID, session.SessionID, true, now)
	createTestReviewItem(t, db, wordB.WordID, session.SessionID, false, now)
	createTestReviewItem(t, db, wordB.WordID, session.SessionID, true, now)
	createTestReviewItem(t, db, wordA.WordID, session.SessionID, false, now)
	// 別セッションのイベントは混ざらない
	createTestReviewItem(t, db, wordA.WordID, other.SessionID, true, now)

	rows, total, err := repo.SessionWordStats(ctx, db, session.SessionID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)

	// german の昇順
	assert.Equal(t, wordA.WordID, rows[0].ID)
	assert.Equal(t, 0, rows[0].CorrectCount)
	assert.Equal(t, 1, rows[0].WrongCount)

	assert.Equal(t, wordB.WordID, rows[1].ID)
	assert.Equal(t, 2, rows[1].CorrectCount)
	assert.Equal(t, 1, rows[1].WrongCount)
}

func Test_gormReviewRepository_DeleteAll(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormReviewRepository()

	word := createTestWord(t, db, "trinken")
	group := createTestGroup(t, db, "verbs")
	activity := createTestActivity(t, db, "quiz")
	session := createTestSession(t, db, group.GroupID, activity.ActivityID, time.Now())

	createTestReviewItem(t, db, word.WordID, session.SessionID, true, time.Now())
	require.NoError(t, repo.ApplyOutcome(ctx, db, word.WordID, true, time.Now()))

	require.NoError(t, repo.DeleteAllItems(ctx, db))
	require.NoError(t, repo.DeleteAllAggregates(ctx, db))

	var items, aggregates int64
	require.NoError(t, db.Model(&model.WordReviewItem{}).Count(&items).Error)
	require.NoError(t, db.Model(&model.WordReview{}).Count(&aggregates).Error)
	assert.Zero(t, items)
	assert.Zero(t, aggregates)
}
