// internal/repository/word_repository_test.go
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

func Test_gormWordRepository_FindMissingIDs(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormWordRepository()

	w1 := createTestWord(t, db, "gehen")
	w2 := createTestWord(t, db, "kommen")
	unknown := uuid.New()

	t.Run("正常系: 存在しないIDだけを返す", func(t *testing.T) {
		missing, err := repo.FindMissingIDs(ctx, db, []uuid.UUID{w1.WordID, unknown, w2.WordID})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{unknown}, missing)
	})

	t.Run("正常系: 重複する未知IDは1回だけ返す", func(t *testing.T) {
		missing, err := repo.FindMissingIDs(ctx, db, []uuid.UUID{unknown, unknown})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{unknown}, missing)
	})

	t.Run("正常系: 全て存在すれば空", func(t *testing.T) {
		missing, err := repo.FindMissingIDs(ctx, db, []uuid.UUID{w1.WordID, w2.WordID})
		require.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func Test_gormWordRepository_ListWithStats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	wordRepo := NewGormWordRepository()
	reviewRepo := NewGormReviewRepository()

	w1 := createTestWord(t, db, "abend")
	w2 := createTestWord(t, db, "zug")
	require.NoError(t, reviewRepo.ApplyOutcome(ctx, db, w2.WordID, true, time.Now()))
	require.NoError(t, reviewRepo.ApplyOutcome(ctx, db, w2.WordID, false, time.Now()))

	t.Run("正常系: 集計行の無い単語は0で埋まる", func(t *testing.T) {
		rows, total, err := wordRepo.ListWithStats(ctx, db, "", "", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, rows, 2)
		// 既定は german の昇順
		assert.Equal(t, w1.WordID, rows[0].ID)
		assert.Zero(t, rows[0].CorrectCount)
		assert.Zero(t, rows[0].WrongCount)
		assert.Equal(t, w2.WordID, rows[1].ID)
		assert.Equal(t, 1, rows[1].CorrectCount)
		assert.Equal(t, 1, rows[1].WrongCount)
	})

	t.Run("正常系: correct_count降順でソートできる", func(t *testing.T) {
		rows, _, err := wordRepo.ListWithStats(ctx, db, "correct_count", "desc", 1, 10)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, w2.WordID, rows[0].ID)
	})
}

func Test_gormWordRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 参照の無い単語は削除できる", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormWordRepository()
		word := createTestWord(t, db, "frei")

		require.NoError(t, repo.Delete(ctx, db, word.WordID))
		_, err := repo.FindByID(ctx, db, word.WordID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("異常系: レビュー履歴から参照されている単語は Conflict", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormWordRepository()
		word := createTestWord(t, db, "belegt")
		group := createTestGroup(t, db, "verbs")
		activity := createTestActivity(t, db, "quiz")
		session := createTestSession(t, db, group.GroupID, activity.ActivityID, time.Now())
		createTestReviewItem(t, db, word.WordID, session.SessionID, true, time.Now())

		err := repo.Delete(ctx, db, word.WordID)
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("異常系: 存在しない単語は NotFound", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormWordRepository()
		assert.ErrorIs(t, repo.Delete(ctx, db, uuid.New()), model.ErrNotFound)
	})
}

func Test_gormGroupRepository_AddWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormGroupRepository()

	group := createTestGroup(t, db, "nouns")
	w1 := createTestWord(t, db, "Haus")
	w2 := createTestWord(t, db, "Auto")

	require.NoError(t, repo.AddWord(ctx, db, w1.WordID, group.GroupID))
	require.NoError(t, repo.AddWord(ctx, db, w2.WordID, group.GroupID))

	t.Run("正常系: words_count は所属行の実数と一致する", func(t *testing.T) {
		found, err := repo.FindByID(ctx, db, group.GroupID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.WordsCount)
	})

	t.Run("異常系: 二重登録は Conflict", func(t *testing.T) {
		err := repo.AddWord(ctx, db, w1.WordID, group.GroupID)
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("正常系: RemoveWord で words_count が戻る", func(t *testing.T) {
		require.NoError(t, repo.RemoveWord(ctx, db, w2.WordID, group.GroupID))
		found, err := repo.FindByID(ctx, db, group.GroupID)
		require.NoError(t, err)
		assert.Equal(t, 1, found.WordsCount)
	})
}

func Test_gormGroupRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("異常系: セッションから参照されているグループは Conflict", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormGroupRepository()
		group := createTestGroup(t, db, "verbs")
		activity := createTestActivity(t, db, "quiz")
		createTestSession(t, db, group.GroupID, activity.ActivityID, time.Now())

		assert.ErrorIs(t, repo.Delete(ctx, db, group.GroupID), model.ErrConflict)
	})

	t.Run("正常系: 参照の無いグループは削除できる", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormGroupRepository()
		group := createTestGroup(t, db, "empty")

		require.NoError(t, repo.Delete(ctx, db, group.GroupID))
		_, err := repo.FindByID(ctx, db, group.GroupID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
