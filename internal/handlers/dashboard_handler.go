// internal/handlers/dashboard_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_lang_portal/internal/middleware"
	"go_lang_portal/internal/service"
	"go_lang_portal/internal/webutil"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats はダッシュボード用の横断統計を取得するためのハンドラ
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetStats"))

	stats, err := h.service.GetStatistics(r.Context())
	if err != nil {
		logger.Error("Error getting dashboard stats in service", slog.Any("error", err))
		webutil.HandleError(w, r, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats)
}

// GetRecentSession は最新の学習セッションを取得するためのハンドラ。
// セッションが1件も無い場合は 200 で JSON null を返す。
func (h *DashboardHandler) GetRecentSession(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetRecentSession"))

	session, err := h.service.GetRecentSession(r.Context())
	if err != nil {
		logger.Error("Error getting recent session in service", slog.Any("error", err))
		webutil.HandleError(w, r, err)
		return
	}
	if session == nil {
		webutil.RespondWithJSON(w, http.StatusOK, nil)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, session)
}
