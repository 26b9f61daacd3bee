// internal/handlers/activity_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_lang_portal/internal/middleware"
	"go_lang_portal/internal/service"
	"go_lang_portal/internal/webutil"
)

type ActivityHandler struct {
	service service.ActivityService
}

func NewActivityHandler(s service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: s}
}

// GetStudyActivities は学習アクティビティの一覧を取得するためのハンドラ
func (h *ActivityHandler) GetStudyActivities(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetStudyActivities"))

	resp, err := h.service.ListActivities(r.Context())
	if err != nil {
		logger.Error("Error listing study activities in service", slog.Any("error", err))
		webutil.HandleError(w, r, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// GetStudyActivity は特定の学習アクティビティを取得するためのハンドラ
func (h *ActivityHandler) GetStudyActivity(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetStudyActivity"))

	activityID, err := parseUUIDParam(r, "activity_id")
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	activity, err := h.service.GetActivity(r.Context(), activityID)
	if err != nil {
		logger.Error("Error getting study activity from service", slog.Any("error", err), slog.String("activity_id", activityID.String()))
		webutil.HandleError(w, r, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, activity)
}
