// internal/handlers/group_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_lang_portal/internal/config"
	"go_lang_portal/internal/middleware"
	"go_lang_portal/internal/model"
	"go_lang_portal/internal/service"
	"go_lang_portal/internal/webutil"
)

type GroupHandler struct {
	service        service.GroupService
	sessionService service.SessionService
	cfg            *config.Config
}

func NewGroupHandler(s service.GroupService, sessions service.SessionService, cfg *config.Config) *GroupHandler {
	return &GroupHandler{service: s, sessionService: sessions, cfg: cfg}
}

// GetGroups はグループ一覧を取得するためのハンドラ
func (h *GroupHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetGroups"))

	sortBy, order := webutil.ParseSort(r)
	page := webutil.ParsePage(r)

	resp, err := h.service.ListGroups(r.Context(), sortBy, order, page)
	if err != nil {
		logger.Error("Error listing groups in service", slog.Any("error", err))
		webutil.HandleError(w, r, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// GetGroup は特定のグループを取得するためのハンドラ
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetGroup"))

	groupID, err := parseUUIDParam(r, "group_id")
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	group, err := h.service.GetGroup(r.Context(), groupID)
	if err != nil {
		logger.Error("Error getting group from service", slog.Any("error", err), slog.String("group_id", groupID.String()))
		webutil.HandleError(w, r, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, group)
}

// GetGroupWords はグループ所属の単語一覧(集計つき)を取得するためのハンドラ
func (h *GroupHandler) GetGroupWords(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetGroupWords"))

	groupID, err := parseUUIDParam(r, "group_id")
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	sortBy, order := webutil.ParseSort(r)
	page := webutil.ParsePage(r)

	resp, err := h.service.ListGroupWords(r.Context(), groupID, sortBy, order, page)
	if err != nil {
		logger.Error("Error listing group words in service", slog.Any("error", err), slog.String("group_id", groupID.String()))
		webutil.HandleError(w, r, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// GetGroupSessions はグループに紐づく学習セッションの一覧を取得するためのハンドラ
func (h *GroupHandler) GetGroupSessions(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetGroupSessions"))

	groupID, err := parseUUIDParam(r, "group_id")
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	sortBy, order := webutil.ParseSort(r)
	q := model.ListSessionsQuery{
		GroupID: &groupID,
		SortBy:  sortBy,
		Order:   order,
		Page:    webutil.ParsePage(r),
		PerPage: webutil.ParsePerPage(r, h.cfg.App.SessionsPerPage, 100),
	}

	resp, err := h.sessionService.ListSessions(r.Context(), q)
	if err != nil {
		logger.Error("Error listing group sessions in service", slog.Any("error", err), slog.String("group_id", groupID.String()))
		webutil.HandleError(w, r, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// DeleteGroup は履歴から参照されていないグループを削除するためのハンドラ
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "DeleteGroup"))

	groupID, err := parseUUIDParam(r, "group_id")
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	if err := h.service.DeleteGroup(r.Context(), groupID); err != nil {
		logger.Error("Error deleting group in service", slog.Any("error", err), slog.String("group_id", groupID.String()))
		webutil.HandleError(w, r, err)
		return
	}

	logger.Info("Group deleted", slog.String("group_id", groupID.String()))
	w.WriteHeader(http.StatusNoContent)
}
