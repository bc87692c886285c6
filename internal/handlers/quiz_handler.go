// internal/handlers/quiz_handler.go
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

type QuizHandler struct {
	service service.QuizService
	logger  *slog.Logger
}

func NewQuizHandler(s service.QuizService, logger *slog.Logger) *QuizHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizHandler{
		service: s,
		logger:  logger,
	}
}

// ImportQuiz はCSVからクイズを作成するハンドラ
func (h *QuizHandler) ImportQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ImportQuiz"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	var req model.ImportQuizRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	if !h.validate(w, req, logger) {
		return
	}

	quiz, err := h.service.ImportQuiz(r.Context(), tenantID, &req)
	if err != nil {
		logger.Warn("Error importing quiz in service", slog.Any("error", err), slog.String("name", req.Name))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Quiz imported successfully", slog.String("quiz_id", quiz.QuizID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, quiz)
}

// ListQuizzes はクイズ一覧を返すハンドラ
func (h *QuizHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListQuizzes"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}

	quizzes, err := h.service.ListQuizzes(r.Context(), tenantID)
	if err != nil {
		logger.Error("Error listing quizzes in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	if quizzes == nil {
		quizzes = []*model.QuizSummaryResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, quizzes)
}

// GetQuiz はクイズの概要を返すハンドラ
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuiz"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}
	quizID, ok := h.quizID(w, r, logger)
	if !ok {
		return
	}

	quiz, err := h.service.GetQuiz(r.Context(), tenantID, quizID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Quiz not found in service", slog.String("quiz_id", quizID.String()))
		} else {
			logger.Error("Error getting quiz from service", slog.Any("error", err))
		}
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, quiz)
}

// DeleteQuiz はクイズを削除するハンドラ
func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteQuiz"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}
	quizID, ok := h.quizID(w, r, logger)
	if !ok {
		return
	}

	if err := h.service.DeleteQuiz(r.Context(), tenantID, quizID); err != nil {
		logger.Error("Error deleting quiz in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Quiz deleted successfully", slog.String("quiz_id", quizID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// GetQuestions は配信用の設問一覧を返すハンドラ。?shuffle=true で出題順を無作為化します。
func (h *QuizHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuestions"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}
	quizID, ok := h.quizID(w, r, logger)
	if !ok {
		return
	}

	shuffle := r.URL.Query().Get("shuffle") == "true"

	questions, err := h.service.GetQuestions(r.Context(), tenantID, quizID, shuffle)
	if err != nil {
		logger.Error("Error getting questions from service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	if questions == nil {
		questions = []model.QuestionResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, questions)
}

// SubmitAttempt は回答を採点して受験履歴を保存するハンドラ
func (h *QuizHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitAttempt"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}
	quizID, ok := h.quizID(w, r, logger)
	if !ok {
		return
	}

	var req model.SubmitAttemptRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, appErr)
		return
	}

	if !h.validate(w, req, logger) {
		return
	}

	result, err := h.service.SubmitAttempt(r.Context(), tenantID, quizID, &req)
	if err != nil {
		logger.Warn("Error submitting attempt in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Attempt submitted successfully",
		slog.String("attempt_id", result.AttemptID.String()),
		slog.Int("correct", result.CorrectCount),
	)
	webutil.RespondWithJSON(w, http.StatusCreated, result)
}

// ListAttempts は受験履歴の一覧を返すハンドラ
func (h *QuizHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListAttempts"))

	tenantID, ok := h.tenantID(w, r, logger)
	if !ok {
		return
	}
	quizID, ok := h.quizID(w, r, logger)
	if !ok {
		return
	}

	attempts, err := h.service.ListAttempts(r.Context(), tenantID, quizID)
	if err != nil {
		logger.Error("Error listing attempts in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	if attempts == nil {
		attempts = []*model.QuizAttempt{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, attempts)
}

func (h *QuizHandler) tenantID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return uuid.Nil, false
	}
	return tenantID, true
}

func (h *QuizHandler) quizID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	quizIDStr := chi.URLParam(r, "quiz_id")
	quizID, err := uuid.Parse(quizIDStr)
	if err != nil {
		logger.Warn("Invalid quiz ID format in URL", slog.String("quiz_id_str", quizIDStr))
		webutil.HandleError(w, model.NewAppError("INVALID_URL_PARAM", "quiz_idの形式が正しくありません。", "quiz_id", model.ErrInvalidInput))
		return uuid.Nil, false
	}
	return quizID, true
}

func (h *QuizHandler) validate(w http.ResponseWriter, req interface{}, logger *slog.Logger) bool {
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
