// internal/handlers/tenant_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"quizkeep/internal/model"
	"quizkeep/internal/service"
	"quizkeep/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type TenantHandler struct {
	service service.TenantService
	logger  *slog.Logger
}

func NewTenantHandler(s service.TenantService, logger *slog.Logger) *TenantHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TenantHandler{
		service: s,
		logger:  logger,
	}
}

// CreateTenant は新しいテナントを作成し、アクセストークンを返すハンドラ (認証不要)
func (h *TenantHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateTenant"))

	var req model.CreateTenantRequest
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

	resp, err := h.service.CreateTenant(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating tenant in service", slog.Any("error", err), slog.String("name", req.Name))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Tenant created successfully", slog.String("tenant_id", resp.TenantID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, resp)
}
