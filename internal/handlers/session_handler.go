// internal/handlers/session_handler.go
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"go_lang_portal/internal/config"
	"go_lang_portal/internal/middleware"
	"go_lang_portal/internal/model"
	"go_lang_portal/internal/service"
	"go_lang_portal/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SessionHandler struct {
	service service.SessionService
	cfg     *config.Config
}

func NewSessionHandler(s service.SessionService, cfg *config.Config) *SessionHandler {
	return &SessionHandler{service: s, cfg: cfg}
}

// CreateStudySession は新しい学習セッションを開始するためのハンドラ
func (h *SessionHandler) CreateStudySession(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "CreateStudySession"))

	var req model.CreateStudySessionRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, r, err)
		return
	}

	session, err := h.service.OpenSession(r.Context(), &req)
	if err != nil {
		logger.Error("Error opening study session in service", slog.Any("error", err))
		webutil.HandleError(w, r, err)
		return
	}

	logger.Info("Study session created", slog.String("session_id", session.SessionID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, model.CreateStudySessionResponse{SessionID: session.SessionID})
}

// GetStudySessions は学習セッションの一覧を取得するためのハンドラ
func (h *SessionHandler) GetStudySessions(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetStudySessions"))

	sortBy, order := webutil.ParseSort(r)
	q := model.ListSessionsQuery{
		SortBy:  sortBy,
		Order:   order,
		Page:    webutil.ParsePage(r),
		PerPage: webutil.ParsePerPage(r, h.cfg.App.SessionsPerPage, 100),
	}

	if raw := r.URL.Query().Get("group_id"); raw != "" {
		groupID, err := uuid.Parse(raw)
		if err != nil {
			logger.Warn("Invalid group ID format in query", slog.String("group_id_str", raw))
			appErr := model.NewAppError("INVALID_URL_PARAM", "group_idの形式が正しくありません。", "group_id", model.ErrInvalidInput)
			webutil.HandleError(w, r, appErr)
			return
		}
		q.GroupID = &groupID
	}

	resp, err := h.service.ListSessions(r.Context(), q)
	if err != nil {
		logger.Error("Error listing study sessions in service", slog.Any("error", err))
		webutil.HandleError(w, r, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// GetStudySession はセッション詳細(レビュー済み単語の内訳つき)を取得するためのハンドラ
func (h *SessionHandler) GetStudySession(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetStudySession"))

	sessionID, err := parseUUIDParam(r, "session_id")
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	page := webutil.ParsePage(r)
	perPage := webutil.ParsePerPage(r, h.cfg.App.WordsPerPage, 100)

	resp, err := h.service.GetSession(r.Context(), sessionID, page, perPage)
	if err != nil {
		logger.Error("Error getting study session in service", slog.Any("error", err), slog.String("session_id", sessionID.String()))
		webutil.HandleError(w, r, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// SubmitReviews は解答結果のバッチをセッションに記録するためのハンドラ
func (h *SessionHandler) SubmitReviews(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "SubmitReviews"))

	sessionID, err := parseUUIDParam(r, "session_id")
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}
	logger = logger.With(slog.String("session_id", sessionID.String()))

	var req model.SubmitReviewsRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, r, err)
		return
	}

	count, err := h.service.RecordReviews(r.Context(), sessionID, &req)
	if err != nil {
		logger.Error("Error recording reviews in service", slog.Any("error", err))
		webutil.HandleError(w, r, err)
		return
	}

	logger.Info("Reviews submitted", slog.Int("count", count))
	webutil.RespondWithJSON(w, http.StatusOK, model.SubmitReviewsResponse{
		Message:      fmt.Sprintf("%d件のレビュー結果を記録しました。", count),
		SessionID:    sessionID,
		ReviewsCount: count,
	})
}

// ResetStudyHistory は学習履歴を全削除するためのハンドラ (カタログは残る)
func (h *SessionHandler) ResetStudyHistory(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "ResetStudyHistory"))

	cleared, err := h.service.Reset(r.Context())
	if err != nil {
		logger.Error("Error resetting study history in service", slog.Any("error", err))
		webutil.HandleError(w, r, err)
		return
	}

	logger.Info("Study history reset", slog.Int64("cleared_sessions", cleared))
	webutil.RespondWithJSON(w, http.StatusOK, model.ResetStudyHistoryResponse{
		Message:         "学習履歴をリセットしました。",
		ClearedSessions: cleared,
	})
}

// parseUUIDParam はURLパスパラメータをUUIDとして解釈します
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_URL_PARAM",
			fmt.Sprintf("%sの形式が正しくありません。", name), name, model.ErrInvalidInput)
	}
	return id, nil
}
