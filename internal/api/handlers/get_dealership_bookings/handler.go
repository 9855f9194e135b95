package get_dealership_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avtomart/AVM-TestDriveService/internal/api/handlers"
	"github.com/avtomart/AVM-TestDriveService/internal/api/middleware"
	"github.com/avtomart/AVM-TestDriveService/internal/service/bookings"
)

const (
	msgInvalidDealershipID = "некорректный ID дилерского центра"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidParams       = "некорректные параметры запроса"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dealerships/{dealershipId}/bookings
// Query params: carId, startDate, endDate, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dealershipIDStr := vars["dealershipId"]

	dealershipID, err := strconv.ParseInt(dealershipIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /dealerships/{id}/bookings - Invalid dealership ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /dealerships/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	params := QueryParamsFromRequest(r.URL.Query())

	serviceReq, err := ToServiceRequest(dealershipID, userID, params)
	if err != nil {
		h.logger.Warn("GET /dealerships/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит права сотрудника
	result, err := h.service.GetDealershipBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /dealerships/{id}/bookings - Access denied: dealership_id=%d, user_id=%d",
				dealershipID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /dealerships/{id}/bookings - Invalid parameters: dealership_id=%d, error=%v",
				dealershipID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /dealerships/{id}/bookings - Failed to get bookings: dealership_id=%d, error=%v",
				dealershipID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /dealerships/{id}/bookings - Bookings retrieved successfully: dealership_id=%d, count=%d",
		dealershipID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
