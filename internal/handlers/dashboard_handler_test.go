// internal/handlers/dashboard_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_lang_portal/internal/handlers"
	"go_lang_portal/internal/model"
	"go_lang_portal/internal/service/mocks"
)

func newDashboardRouter(mockService *mocks.MockDashboardService) *chi.Mux {
	handler := handlers.NewDashboardHandler(mockService)
	router := chi.NewRouter()
	router.Get("/api/v1/dashboard/stats", handler.GetStats)
	router.Get("/api/v1/dashboard/recent-session", handler.GetRecentSession)
	return router
}

func TestDashboardHandler_GetStats(t *testing.T) {
	mockService := mocks.NewMockDashboardService(t)
	expected := &model.DashboardStats{
		TotalVocabulary:   120,
		TotalWordsStudied: 30,
		MasteredWords:     8,
		SuccessRate:       0.75,
		TotalSessions:     12,
		ActiveGroups:      3,
		CurrentStreak:     4,
	}
	mockService.On("GetStatistics", mock.Anything).Return(expected, nil).Once()
	router := newDashboardRouter(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp model.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, *expected, resp)
}

func TestDashboardHandler_GetRecentSession(t *testing.T) {
	t.Run("正常系: セッションが無ければ JSON null を返す", func(t *testing.T) {
		mockService := mocks.NewMockDashboardService(t)
		mockService.On("GetRecentSession", mock.Anything).Return(nil, nil).Once()
		router := newDashboardRouter(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/recent-session", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "null", rec.Body.String())
	})

	t.Run("正常系: 最新セッションを返す", func(t *testing.T) {
		mockService := mocks.NewMockDashboardService(t)
		expected := &model.StudySessionResponse{
			ID:               uuid.New(),
			GroupID:          uuid.New(),
			GroupName:        "verbs",
			StudyActivityID:  uuid.New(),
			ActivityName:     "quiz",
			StartTime:        time.Now().Truncate(time.Second),
			EndTime:          time.Now().Truncate(time.Second).Add(10 * time.Minute),
			ReviewItemsCount: 7,
		}
		mockService.On("GetRecentSession", mock.Anything).Return(expected, nil).Once()
		router := newDashboardRouter(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/recent-session", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp model.StudySessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, expected.ID, resp.ID)
		assert.Equal(t, expected.GroupName, resp.GroupName)
		assert.Equal(t, expected.ReviewItemsCount, resp.ReviewItemsCount)
	})
}
