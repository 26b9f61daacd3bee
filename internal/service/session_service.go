//go:generate mockery --name SessionService --output ./mocks --outpkg mocks --case=underscore --structname MockSessionService
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_lang_portal/internal/config"
	"go_lang_portal/internal/middleware"
	"go_lang_portal/internal/model"
	"go_lang_portal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionService interface {
	OpenSession(ctx context.Context, req *model.CreateStudySessionRequest) (*model.StudySession, error)
	RecordReviews(ctx context.Context, sessionID uuid.UUID, req *model.SubmitReviewsRequest) (int, error)
	GetSession(ctx context.Context, sessionID uuid.UUID, page, perPage int) (*model.SessionDetailResponse, error)
	ListSessions(ctx context.Context, q model.ListSessionsQuery) (*model.StudySessionListResponse, error)
	Reset(ctx context.Context) (int64, error)
}

type sessionService struct {
	db           *gorm.DB
	sessionRepo  repository.SessionRepository
	groupRepo    repository.GroupRepository
	activityRepo repository.ActivityRepository
	wordRepo     repository.WordRepository
	reviewRepo   repository.ReviewRepository
	cfg          *config.Config
}

func NewSessionService(
	db *gorm.DB,
	sessionRepo repository.SessionRepository,
	groupRepo repository.GroupRepository,
	activityRepo repository.ActivityRepository,
	wordRepo repository.WordRepository,
	reviewRepo repository.ReviewRepository,
	cfg *config.Config,
) SessionService {
	return &sessionService{
		db:           db,
		sessionRepo:  sessionRepo,
		groupRepo:    groupRepo,
		activityRepo: activityRepo,
		wordRepo:     wordRepo,
		reviewRepo:   reviewRepo,
		cfg:          cfg,
	}
}

// OpenSession はセッションを作成します。グループ・アクティビティの存在を
// 確認してから現在時刻で記録する。セッション同士は独立なので排他は不要。
func (s *sessionService) OpenSession(ctx context.Context, req *model.CreateStudySessionRequest) (*model.StudySession, error) {
	logger := middleware.GetLogger(ctx).With("group_id", req.GroupID, "study_activity_id", req.StudyActivityID)

	exists, err := s.groupRepo.Exists(ctx, s.db, req.GroupID)
	if err != nil {
		logger.Error("Failed to check group existence", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "グループの確認に失敗しました。", "", err)
	}
	if !exists {
		return nil, model.NewAppError("NOT_FOUND", "グループが見つかりません。", "group_id", model.ErrNotFound)
	}

	exists, err = s.activityRepo.Exists(ctx, s.db, req.StudyActivityID)
	if err != nil {
		logger.Error("Failed to check study activity existence", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習アクティビティの確認に失敗しました。", "", err)
	}
	if !exists {
		return nil, model.NewAppError("NOT_FOUND", "学習アクティビティが見つかりません。", "study_activity_id", model.ErrNotFound)
	}

	session := &model.StudySession{
		SessionID:       uuid.New(),
		GroupID:         req.GroupID,
		StudyActivityID: req.StudyActivityID,
		CreatedAt:       time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, s.db, session); err != nil {
		logger.Error("Failed to create study session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの作成に失敗しました。", "", err)
	}

	logger.Info("Study session opened", "session_id", session.SessionID)
	return session, nil
}

// RecordReviews は解答結果のバッチを記録します。バッチ全体が1トランザクションで、
// 先に全件を検証してから適用する (一部適用は集計の総和不変条件を壊す)。
func (s *sessionService) RecordReviews(ctx context.Context, sessionID uuid.UUID, req *model.SubmitReviewsRequest) (int, error) {
	logger := middleware.GetLogger(ctx).With("session_id", sessionID)

	if len(req.Reviews) == 0 {
		return 0, model.NewAppError("VALIDATION_ERROR", "レビュー結果は1件以上指定してください。", "reviews", model.ErrInvalidInput)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.sessionRepo.Exists(ctx, tx, sessionID)
		if err != nil {
			logger.Error("Failed to check session existence in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの確認に失敗しました。", "", err)
		}
		if !exists {
			return model.NewAppError("NOT_FOUND", "学習セッションが見つかりません。", "session_id", model.ErrNotFound)
		}

		wordIDs := make([]uuid.UUID, 0, len(req.Reviews))
		for _, outcome := range req.Reviews {
			wordIDs = append(wordIDs, outcome.WordID)
		}
		missing, err := s.wordRepo.FindMissingIDs(ctx, tx, wordIDs)
		if err != nil {
			logger.Error("Failed to validate word ids in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の確認に失敗しました。", "", err)
		}
		if len(missing) > 0 {
			return model.NewAppError("VALIDATION_ERROR",
				fmt.Sprintf("単語が見つかりません: %s", missing[0]),
				"word_id", model.ErrInvalidInput)
		}

		now := time.Now()
		items := make([]*model.WordReviewItem, 0, len(req.Reviews))
		for _, outcome := range req.Reviews {
			items = append(items, &model.WordReviewItem{
				WordID:         outcome.WordID,
				StudySessionID: sessionID,
				Correct:        *outcome.IsCorrect,
				CreatedAt:      now,
			})
		}
		if err := s.reviewRepo.InsertItems(ctx, tx, items); err != nil {
			logger.Error("Failed to insert review items", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "レビュー結果の記録に失敗しました。", "", err)
		}

		for _, outcome := range req.Reviews {
			if err := s.reviewRepo.ApplyOutcome(ctx, tx, outcome.WordID, *outcome.IsCorrect, now); err != nil {
				logger.Error("Failed to apply outcome to aggregate", "error", err, "word_id", outcome.WordID)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "集計の更新に失敗しました。", "", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Recorded review batch", "count", len(req.Reviews))
	return len(req.Reviews), nil
}

func (s *sessionService) GetSession(ctx context.Context, sessionID uuid.UUID, page, perPage int) (*model.SessionDetailResponse, error) {
	logger := middleware.GetLogger(ctx).With("session_id", sessionID)

	session, err := s.sessionRepo.FindByID(ctx, s.db, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "学習セッションが見つかりません。", "session_id", model.ErrNotFound)
		}
		logger.Error("Failed to find session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの取得に失敗しました。", "", err)
	}

	summaries, err := s.reviewRepo.SessionSummaries(ctx, s.db, []uuid.UUID{sessionID})
	if err != nil {
		logger.Error("Failed to summarize session reviews", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "レビュー集計の取得に失敗しました。", "", err)
	}

	words, total, err := s.reviewRepo.SessionWordStats(ctx, s.db, sessionID, page, perPage)
	if err != nil {
		logger.Error("Failed to fetch session word stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッション単語の取得に失敗しました。", "", err)
	}
	if words == nil {
		words = []*model.SessionWordRow{}
	}

	groupName, activityName := "", ""
	if session.Group != nil {
		groupName = session.Group.Name
	}
	if session.Activity != nil {
		activityName = session.Activity.Name
	}
	summary := summaries[sessionID]

	return &model.SessionDetailResponse{
		Session: &model.StudySessionResponse{
			ID:               session.SessionID,
			GroupID:          session.GroupID,
			GroupName:        groupName,
			StudyActivityID:  session.StudyActivityID,
			ActivityName:     activityName,
			StartTime:        session.CreatedAt,
			EndTime:          s.sessionEndTime(session.CreatedAt, summary.LastReviewedAt),
			ReviewItemsCount: summary.Count,
		},
		Words:      words,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

func (s *sessionService) ListSessions(ctx context.Context, q model.ListSessionsQuery) (*model.StudySessionListResponse, error) {
	logger := middleware.GetLogger(ctx)

	if q.GroupID != nil {
		exists, err := s.groupRepo.Exists(ctx, s.db, *q.GroupID)
		if err != nil {
			logger.Error("Failed to check group existence", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "グループの確認に失敗しました。", "", err)
		}
		if !exists {
			return nil, model.NewAppError("NOT_FOUND", "グループが見つかりません。", "group_id", model.ErrNotFound)
		}
	}

	rows, total, err := s.sessionRepo.List(ctx, s.db, q)
	if err != nil {
		logger.Error("Failed to list sessions", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッション一覧の取得に失敗しました。", "", err)
	}

	sessionIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		sessionIDs = append(sessionIDs, row.ID)
	}
	summaries, err := s.reviewRepo.SessionSummaries(ctx, s.db, sessionIDs)
	if err != nil {
		logger.Error("Failed to summarize session reviews", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "レビュー集計の取得に失敗しました。", "", err)
	}

	items := make([]*model.StudySessionResponse, 0, len(rows))
	for _, row := range rows {
		summary := summaries[row.ID]
		items = append(items, &model.StudySessionResponse{
			ID:               row.ID,
			GroupID:          row.GroupID,
			GroupName:        row.GroupName,
			StudyActivityID:  row.StudyActivityID,
			ActivityName:     row.ActivityName,
			StartTime:        row.CreatedAt,
			EndTime:          s.sessionEndTime(row.CreatedAt, summary.LastReviewedAt),
			ReviewItemsCount: summary.Count,
		})
	}

	return &model.StudySessionListResponse{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalPages: totalPages(total, q.PerPage),
	}, nil
}

// Reset は学習履歴(イベント→セッション→集計)を1トランザクションで全削除します。
// イベントの削除をセッションより先に行い、参照整合性の順序を守る。
// カタログ(単語・グループ・アクティビティ)には触れない。
func (s *sessionService) Reset(ctx context.Context) (int64, error) {
	logger := middleware.GetLogger(ctx)

	var cleared int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.DeleteAllItems(ctx, tx); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "レビュー履歴の削除に失敗しました。", "", err)
		}
		deleted, err := s.sessionRepo.DeleteAll(ctx, tx)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの削除に失敗しました。", "", err)
		}
		cleared = deleted
		if err := s.reviewRepo.DeleteAllAggregates(ctx, tx); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "集計の削除に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to reset study history", "error", err)
		return 0, err
	}

	logger.Info("Study history cleared", "cleared_sessions", cleared)
	return cleared, nil
}

// sessionEndTime は表示用の終了時刻を計算します。最後のイベント時刻、
// イベントが無ければ開始時刻+設定された既定時間 (保存はしない)。
func (s *sessionService) sessionEndTime(startTime time.Time, lastReviewedAt *time.Time) time.Time {
	if lastReviewedAt != nil {
		return *lastReviewedAt
	}
	return startTime.Add(time.Duration(s.cfg.App.SessionFallbackMinutes) * time.Minute)
}

func totalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
