package update_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avtomart/AVM-TestDriveService/internal/api/handlers"
	"github.com/avtomart/AVM-TestDriveService/internal/api/middleware"
	"github.com/avtomart/AVM-TestDriveService/internal/service/schedule"
)

const (
	msgInvalidDealershipID = "некорректный ID дилерского центра"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
	msgInvalidSchedule     = "некорректное расписание"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/dealerships/{dealershipId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dealershipIDStr := vars["dealershipId"]

	dealershipID, err := strconv.ParseInt(dealershipIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /dealerships/{id}/working-hours - Invalid dealership ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /dealerships/{id}/working-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /dealerships/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateWeek(r.Context(), dealershipID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /dealerships/{id}/working-hours - Access denied: dealership_id=%d, user_id=%d",
				dealershipID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /dealerships/{id}/working-hours - Invalid schedule: dealership_id=%d, error=%v",
				dealershipID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /dealerships/{id}/working-hours - Failed to update schedule: dealership_id=%d, error=%v",
				dealershipID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /dealerships/{id}/working-hours - Schedule updated successfully: dealership_id=%d, user_id=%d",
		dealershipID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
