// internal/handlers/word_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_lang_portal/internal/middleware"
	"go_lang_portal/internal/model"
	"go_lang_portal/internal/service"
	"go_lang_portal/internal/webutil"
)

type WordHandler struct {
	service service.WordService
}

func NewWordHandler(s service.WordService) *WordHandler {
	return &WordHandler{service: s}
}

// GetWords は単語一覧(正答・誤答の集計つき)を取得するためのハンドラ
func (h *WordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetWords"))

	sortBy, order := webutil.ParseSort(r)
	page := webutil.ParsePage(r)

	resp, err := h.service.ListWords(r.Context(), sortBy, order, page)
	if err != nil {
		logger.Error("Error listing words in service", slog.Any("error", err))
		webutil.HandleError(w, r, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// GetWord は特定の単語(所属グループつき)を取得するためのハンドラ
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetWord"))

	wordID, err := parseUUIDParam(r, "word_id")
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	word, err := h.service.GetWord(r.Context(), wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Word not found", slog.String("word_id", wordID.String()))
		} else {
			logger.Error("Error getting word from service", slog.Any("error", err))
		}
		webutil.HandleError(w, r, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, word)
}

// DeleteWord は学習履歴から参照されていない単語を削除するためのハンドラ
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "DeleteWord"))

	wordID, err := parseUUIDParam(r, "word_id")
	if err != nil {
		webutil.HandleError(w, r, err)
		return
	}

	if err := h.service.DeleteWord(r.Context(), wordID); err != nil {
		logger.Error("Error deleting word in service", slog.Any("error", err), slog.String("word_id", wordID.String()))
		webutil.HandleError(w, r, err)
		return
	}

	logger.Info("Word deleted", slog.String("word_id", wordID.String()))
	w.WriteHeader(http.StatusNoContent)
}
