// internal/handlers/review_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"quizkeep/internal/middleware"
	"quizkeep/internal/model"
	"quizkeep/internal/service"
	"quizkeep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		service: s,
		logger:  logger,
	}
}

// GetDueCards は復習期限を迎えたカードを返すハンドラ。
// ?deck_id= は必須、?shuffle=true で出題順を無作為化します。
func (h *ReviewHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDueCards"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	deckIDStr := r.URL.Query().Get("deck_id")
	deckID, err := uuid.Parse(deckIDStr)
	if err != nil {
		logger.Warn("Invalid deck ID in query", slog.String("deck_id_str", deckIDStr))
		webutil.HandleError(w, model.NewAppError("INVALID_URL_PARAM", "deck_idの形式が正しくありません。", "deck_id", model.ErrInvalidInput))
		return
	}

	shuffle := r.URL.Query().Get("shuffle") == "true"

	cards, err := h.service.GetDueCards(r.Context(), tenantID, deckID, shuffle)
	if err != nil {
		logger.Error("Error getting due cards from service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	if cards == nil {
		cards = []*model.ReviewCardResponse{}
	}
	logger.Info("Due cards retrieved successfully", slog.Int("count", len(cards)))
	webutil.RespondWithJSON(w, http.StatusOK, cards)
}

// GradeCard は自己評価を受け付けて次回復習時刻を更新するハンドラ
func (h *ReviewHandler) GradeCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GradeCard"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	cardIDStr := chi.URLParam(r, "card_id")
	cardID, err := uuid.Parse(cardIDStr)
	if err != nil {
		logger.Warn("Invalid card ID format in URL", slog.String("card_id_str", cardIDStr))
		webutil.HandleError(w, model.NewAppError("INVALID_URL_PARAM", "card_idの形式が正しくありません。", "card_id", model.ErrInvalidInput))
		return
	}
	logger = logger.With(slog.String("card_id", cardID.String()))

	var req model.GradeCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			webutil.HandleError(w, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, err)
		}
		return
	}

	resp, err := h.service.GradeCard(r.Context(), tenantID, cardID, req.Grade)
	if err != nil {
		logger.Error("Error grading card in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Card graded successfully", slog.String("grade", resp.Grade), slog.Int("review_count", resp.ReviewCount))
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}
