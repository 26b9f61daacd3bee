//go:generate mockery --name DashboardService --output ./mocks --outpkg mocks --case=underscore --structname MockDashboardService
package service

import (
	"context"
	"errors"
	"time"

	"go_lang_portal/internal/config"
	"go_lang_portal/internal/middleware"
	"go_lang_portal/internal/model"
	"go_lang_portal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DashboardService interface {
	GetStatistics(ctx context.Context) (*model.DashboardStats, error)
	// GetRecentSession は最新セッションを返します。存在しない場合は (nil, nil)
	// — エラーではなく明示的な「なし」。
	GetRecentSession(ctx context.Context) (*model.StudySessionResponse, error)
}

type dashboardService struct {
	db          *gorm.DB
	statsRepo   repository.StatsRepository
	sessionRepo repository.SessionRepository
	reviewRepo  repository.ReviewRepository
	cfg         *config.Config
	streakLoc   *time.Location
}

func NewDashboardService(
	db *gorm.DB,
	statsRepo repository.StatsRepository,
	sessionRepo repository.SessionRepository,
	reviewRepo repository.ReviewRepository,
	cfg *config.Config,
) DashboardService {
	loc, err := time.LoadLocation(cfg.App.StreakTimezone)
	if err != nil {
		loc = time.Local
	}
	return &dashboardService{
		db:          db,
		statsRepo:   statsRepo,
		sessionRepo: sessionRepo,
		reviewRepo:  reviewRepo,
		cfg:         cfg,
		streakLoc:   loc,
	}
}

// GetStatistics は台帳と集計ストアから横断統計を都度計算します。
// 空データでも失敗しない: 比率はゼロ除算せず 0 を返す。
func (s *dashboardService) GetStatistics(ctx context.Context) (*model.DashboardStats, error) {
	logger := middleware.GetLogger(ctx)

	totalVocabulary, err := s.statsRepo.CountWords(ctx, s.db)
	if err != nil {
		logger.Error("Failed to count vocabulary", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}

	wordsStudied, err := s.statsRepo.CountDistinctWordsStudied(ctx, s.db)
	if err != nil {
		logger.Error("Failed to count studied words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}

	correct, wrong, err := s.statsRepo.SumReviewCounts(ctx, s.db)
	if err != nil {
		logger.Error("Failed to sum review counts", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}
	successRate := 0.0
	if correct+wrong > 0 {
		successRate = float64(correct) / float64(correct+wrong)
	}

	mastered, err := s.statsRepo.CountMastered(ctx, s.db, s.cfg.App.MasteryMinCorrect, s.cfg.App.MasteryMaxWrong)
	if err != nil {
		logger.Error("Failed to count mastered words", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}

	totalSessions, err := s.sessionRepo.Count(ctx, s.db)
	if err != nil {
		logger.Error("Failed to count sessions", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}

	activeGroups, err := s.sessionRepo.CountActiveGroups(ctx, s.db)
	if err != nil {
		logger.Error("Failed to count active groups", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}

	streak, err := s.currentStreak(ctx)
	if err != nil {
		logger.Error("Failed to compute study streak", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}

	return &model.DashboardStats{
		TotalVocabulary:   totalVocabulary,
		TotalWordsStudied: wordsStudied,
		MasteredWords:     mastered,
		SuccessRate:       successRate,
		TotalSessions:     totalSessions,
		ActiveGroups:      activeGroups,
		CurrentStreak:     streak,
	}, nil
}

// currentStreak は今日から過去へ、レビューイベントのある連続日数を数えます。
// 日付境界は設定されたタイムゾーンで解釈し、最初の空白日で打ち切る。
func (s *dashboardService) currentStreak(ctx context.Context) (int, error) {
	times, err := s.statsRepo.ListReviewTimes(ctx, s.db)
	if err != nil {
		return 0, err
	}
	if len(times) == 0 {
		return 0, nil
	}

	days := make(map[string]bool, len(times))
	for _, t := range times {
		days[t.In(s.streakLoc).Format("2006-01-02")] = true
	}

	streak := 0
	day := time.Now().In(s.streakLoc)
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

func (s *dashboardService) GetRecentSession(ctx context.Context) (*model.StudySessionResponse, error) {
	logger := middleware.GetLogger(ctx)

	session, err := s.sessionRepo.FindMostRecent(ctx, s.db)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		logger.Error("Failed to find most recent session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "最新セッションの取得に失敗しました。", "", err)
	}

	summaries, err := s.reviewRepo.SessionSummaries(ctx, s.db, []uuid.UUID{session.SessionID})
	if err != nil {
		logger.Error("Failed to summarize recent session reviews", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "レビュー集計の取得に失敗しました。", "", err)
	}
	summary := summaries[session.SessionID]

	groupName, activityName := "", ""
	if session.Group != nil {
		groupName = session.Group.Name
	}
	if session.Activity != nil {
		activityName = session.Activity.Name
	}

	endTime := session.CreatedAt.Add(time.Duration(s.cfg.App.SessionFallbackMinutes) * time.Minute)
	if summary.LastReviewedAt != nil {
		endTime = *summary.LastReviewedAt
	}

	return &model.StudySessionResponse{
		ID:               session.SessionID,
		GroupID:          session.GroupID,
		GroupName:        groupName,
		StudyActivityID:  session.StudyActivityID,
		ActivityName:     activityName,
		StartTime:        session.CreatedAt,
		EndTime:          endTime,
		ReviewItemsCount: summary.Count,
	}, nil
}
