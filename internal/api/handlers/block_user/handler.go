package block_user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avtomart/AVM-TestDriveService/internal/api/handlers"
	"github.com/avtomart/AVM-TestDriveService/internal/api/middleware"
	"github.com/avtomart/AVM-TestDriveService/internal/service/users"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgUserNotFound       = "пользователь не найден"
	msgCannotBlockSelf    = "нельзя заблокировать собственный аккаунт"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/users/{userId}/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetIDStr := vars["userId"]

	targetID, err := strconv.ParseInt(targetIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /users/{id}/block - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	requestorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /users/{id}/block - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetBlockedRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /users/{id}/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetBlocked(r.Context(), targetID, req.ToServiceRequest(requestorID))
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PATCH /users/{id}/block - User not found: target_id=%d", targetID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, users.ErrAccessDenied):
			h.logger.Warn("PATCH /users/{id}/block - Access denied: target_id=%d, requestor_id=%d",
				targetID, requestorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PATCH /users/{id}/block - Self-block attempt: requestor_id=%d", requestorID)
			handlers.RespondBadRequest(w, msgCannotBlockSelf)

		default:
			h.logger.Error("PATCH /users/{id}/block - Failed to set blocked: target_id=%d, error=%v",
				targetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /users/{id}/block - Blocked flag updated: target_id=%d, blocked=%t, requestor_id=%d",
		targetID, req.Blocked, requestorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
