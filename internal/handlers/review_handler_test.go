// internal/handlers/review_handler_test.go
package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"quizkeep/internal/handlers"
	"quizkeep/internal/model"
	"quizkeep/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewRouter(mockService *mocks.ReviewService) *chi.Mux {
	handler := handlers.NewReviewHandler(mockService, testLogger())
	return newProtectedRouter(func(r chi.Router) {
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", handler.GetDueCards)
			r.Put("/{card_id}/grade", handler.GradeCard)
		})
	})
}

func TestReviewHandler_GetDueCards(t *testing.T) {
	tenantID := uuid.New()
	deckID := uuid.New()

	t.Run("正常系: 復習対象カードが返る", func(t *testing.T) {
		mockService := mocks.NewReviewService(t)
		cards := []*model.ReviewCardResponse{
			{CardID: uuid.New(), DeckID: deckID, Front: "SYN", Back: "接続要求", ReviewCount: 0},
			{CardID: uuid.New(), DeckID: deckID, Front: "ACK", Back: "確認応答", ReviewCount: 2},
		}
		mockService.On("GetDueCards", mock.Anything, tenantID, deckID, false).
			Return(cards, nil).Once()
		router := newReviewRouter(mockService)

		req := createRequest(t, http.MethodGet, fmt.Sprintf("/reviews?deck_id=%s", deckID), nil, &tenantID)
		rr := executeRequest(router, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got []*model.ReviewCardResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "SYN", got[0].Front)
	})

	t.Run("正常系: 対象が無ければ空配列が返る", func(t *testing.T) {
		mockService := mocks.NewReviewService(t)
		mockService.On("GetDueCards", mock.Anything, tenantID, deckID, false).
			Return(nil, nil).Once()
		router := newReviewRouter(mockService)

		req := createRequest(t, http.MethodGet, fmt.Sprintf("/reviews?deck_id=%s", deckID), nil, &tenantID)
		rr := executeRequest(router, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("正常系: shuffle=true がサービスに渡る", func(t *testing.T) {
		mockService := mocks.NewReviewService(t)
		mockService.On("GetDueCards", mock.Anything, tenantID, deckID, true).
			Return([]*model.ReviewCardResponse{}, nil).Once()
		router := newReviewRouter(mockService)

		req := createRequest(t, http.MethodGet, fmt.Sprintf("/reviews?deck_id=%s&shuffle=true", deckID), nil, &tenantID)
		rr := executeRequest(router, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("異常系: deck_idが指定されていない", func(t *testing.T) {
		mockService := mocks.NewReviewService(t)
		router := newReviewRouter(mockService)

		req := createRequest(t, http.MethodGet, "/reviews", nil, &tenantID)
		rr := executeRequest(router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		verifyErrorCode(t, rr.Body.Bytes(), "INVALID_URL_PARAM")
	})

	t.Run("異常系: 認証ヘッダーなし", func(t *testing.T) {
		mockService := mocks.NewReviewService(t)
		router := newReviewRouter(mockService)

		req := createRequest(t, http.MethodGet, fmt.Sprintf("/reviews?deck_id=%s", deckID), nil, nil)
		rr := executeRequest(router, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		verifyErrorCode(t, rr.Body.Bytes(), "UNAUTHORIZED")
	})
}

func TestReviewHandler_GradeCard(t *testing.T) {
	tenantID := uuid.New()
	cardID := uuid.New()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("正常系: 採点結果が返る", func(t *testing.T) {
		mockService := mocks.NewReviewService(t)
		next := now.Add(15 * time.Minute)
		resp := &model.GradeCardResponse{
			CardID:         cardID,
			Grade:          "good",
			ReviewCount:    1,
			NextReviewAt:   next,
			LastReviewedAt: now,
		}
		mockService.On("GradeCard", mock.Anything, tenantID, cardID, "good").
			Return(resp, nil).Once()
		router := newReviewRouter(mockService)

		req := createRequest(t, http.MethodPut, fmt.Sprintf("/reviews/%s/grade", cardID),
			model.GradeCardRequest{Grade: "good"}, &tenantID)
		rr := executeRequest(router, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got model.GradeCardResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, cardID, got.CardID)
		assert.Equal(t, 1, got.ReviewCount)
		assert.True(t, got.NextReviewAt.Equal(next))
	})

	t.Run("異常系: card_idの形式が不正", func(t *testing.T) {
		mockService := mocks.NewReviewService(t)
		router := newReviewRouter(mockService)

		req := createRequest(t, http.MethodPut, "/reviews/not-a-uuid/grade",
			model.GradeCardRequest{Grade: "good"}, &tenantID)
		rr := executeRequest(router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		verifyErrorCode(t, rr.Body.Bytes(), "INVALID_URL_PARAM")
	})

	t.Run("異常系: gradeが空", func(t *testing.T) {
		mockService := mocks.NewReviewService(t)
		router := newReviewRouter(mockService)

		req := createRequest(t, http.MethodPut, fmt.Sprintf("/reviews/%s/grade", cardID),
			model.GradeCardRequest{}, &tenantID)
		rr := executeRequest(router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		verifyErrorCode(t, rr.Body.Bytes(), "VALIDATION_ERROR")
	})

	t.Run("異常系: カードが存在しない", func(t *testing.T) {
		mockService := mocks.NewReviewService(t)
		mockService.On("GradeCard", mock.Anything, tenantID, cardID, "good").
			Return(nil, model.NewAppError("NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)).Once()
		router := newReviewRouter(mockService)

		req := createRequest(t, http.MethodPut, fmt.Sprintf("/reviews/%s/grade", cardID),
			model.GradeCardRequest{Grade: "good"}, &tenantID)
		rr := executeRequest(router, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		verifyErrorCode(t, rr.Body.Bytes(), "NOT_FOUND")
	})
}
