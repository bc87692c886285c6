// internal/handlers/deck_handler.go
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

type DeckHandler struct {
	service service.DeckService
	logger  *slog.Logger
}

func NewDeckHandler(s service.DeckService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckHandler{
		service: s,
		logger:  logger,
	}
}

// CreateDeck は新しいデッキを作成するハンドラ
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateDeck"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	var req model.CreateDeckRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	if !h.validate(w, req, logger) {
		return
	}

	deck, err := h.service.CreateDeck(r.Context(), tenantID, &req)
	if err != nil {
		logger.Warn("Error creating deck in service", slog.Any("error", err), slog.String("name", req.Name))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Deck created successfully", slog.String("deck_id", deck.DeckID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, deck)
}

// ListDecks はデッキ一覧を返すハンドラ
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListDecks"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}

	decks, err := h.service.ListDecks(r.Context(), tenantID)
	if err != nil {
		logger.Error("Error listing decks in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	if decks == nil {
		decks = []*model.Deck{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, decks)
}

// GetDeck は特定のデッキを返すハンドラ
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDeck"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}
	deckID, ok := h.deckID(w, r, logger)
	if !ok {
		return
	}

	deck, err := h.service.GetDeck(r.Context(), tenantID, deckID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Deck not found in service", slog.String("deck_id", deckID.String()))
		} else {
			logger.Error("Error getting deck from service", slog.Any("error", err))
		}
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, deck)
}

// DeleteDeck はデッキと所属カードを削除するハンドラ
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteDeck"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}
	deckID, ok := h.deckID(w, r, logger)
	if !ok {
		return
	}

	if err := h.service.DeleteDeck(r.Context(), tenantID, deckID); err != nil {
		logger.Error("Error deleting deck in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Deck deleted successfully", slog.String("deck_id", deckID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// CreateCard はデッキにカードを追加するハンドラ
func (h *DeckHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateCard"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}
	deckID, ok := h.deckID(w, r, logger)
	if !ok {
		return
	}

	var req model.CreateCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	if !h.validate(w, req, logger) {
		return
	}

	card, err := h.service.CreateCard(r.Context(), tenantID, deckID, &req)
	if err != nil {
		logger.Warn("Error creating card in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Card created successfully", slog.String("card_id", card.CardID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, card)
}

// ListCards はデッキ内のカード一覧を返すハンドラ
func (h *DeckHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCards"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}
	deckID, ok := h.deckID(w, r, logger)
	if !ok {
		return
	}

	cards, err := h.service.ListCards(r.Context(), tenantID, deckID)
	if err != nil {
		logger.Error("Error listing cards in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	if cards == nil {
		cards = []*model.Card{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, cards)
}

// DeleteCard はカードを削除するハンドラ
func (h *DeckHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCard"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}

	cardIDStr := chi.URLParam(r, "card_id")
	cardID, err := uuid.Parse(cardIDStr)
	if err != nil {
		logger.Warn("Invalid card ID format in URL", slog.String("card_id_str", cardIDStr))
		webutil.HandleError(w, model.NewAppError("INVALID_URL_PARAM", "card_idの形式が正しくありません。", "card_id", model.ErrInvalidInput))
		return
	}

	if err := h.service.DeleteCard(r.Context(), tenantID, cardID); err != nil {
		logger.Error("Error deleting card in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Card deleted successfully", slog.String("card_id", cardID.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *DeckHandler) tenantID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return uuid.Nil, false
	}
	return tenantID, true
}

func (h *DeckHandler) deckID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	deckIDStr := chi.URLParam(r, "deck_id")
	deckID, err := uuid.Parse(deckIDStr)
	if err != nil {
		logger.Warn("Invalid deck ID format in URL", slog.String("deck_id_str", deckIDStr))
		webutil.HandleError(w, model.NewAppError("INVALID_URL_PARAM", "deck_idの形式が正しくありません。", "deck_id", model.ErrInvalidInput))
		return uuid.Nil, false
	}
	return deckID, true
}

func (h *DeckHandler) validate(w http.ResponseWriter, req interface{}, logger *slog.Logger) bool {
	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			webutil.HandleError(w, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, err)
		}
		return false
	}
	return true
}
