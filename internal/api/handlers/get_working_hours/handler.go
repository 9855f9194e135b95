package get_working_hours

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avtomart/AVM-TestDriveService/internal/api/handlers"
)

const (
	msgInvalidDealershipID = "некорректный ID дилерского центра"
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

// Handle GET /api/v1/dealerships/{dealershipId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dealershipIDStr := vars["dealershipId"]

	dealershipID, err := strconv.ParseInt(dealershipIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /dealerships/{id}/working-hours - Invalid dealership ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	result, err := h.service.GetWeek(r.Context(), dealershipID)
	if err != nil {
		h.logger.Error("GET /dealerships/{id}/working-hours - Failed to get schedule: dealership_id=%d, error=%v",
			dealershipID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /dealerships/{id}/working-hours - Schedule retrieved successfully: dealership_id=%d",
		dealershipID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
