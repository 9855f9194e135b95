package export_bookings

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avtomart/AVM-TestDriveService/internal/api/handlers"
	"github.com/avtomart/AVM-TestDriveService/internal/api/handlers/get_dealership_bookings"
	"github.com/avtomart/AVM-TestDriveService/internal/api/middleware"
	"github.com/avtomart/AVM-TestDriveService/internal/service/bookings"
)

const (
	msgInvalidDealershipID = "некорректный ID дилерского центра"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidParams       = "некорректные параметры запроса"
	msgForbidden           = "доступ запрещен"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
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

// Handle GET /api/v1/dealerships/{dealershipId}/bookings/export
// Принимает те же query параметры, что и список бронирований
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dealershipIDStr := vars["dealershipId"]

	dealershipID, err := strconv.ParseInt(dealershipIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /dealerships/{id}/bookings/export - Invalid dealership ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealershipID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /dealerships/{id}/bookings/export - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	params := get_dealership_bookings.QueryParamsFromRequest(r.URL.Query())

	serviceReq, err := get_dealership_bookings.ToServiceRequest(dealershipID, userID, params)
	if err != nil {
		h.logger.Warn("GET /dealerships/{id}/bookings/export - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Заголовки выставляем до записи тела: сервис пишет xlsx прямо в ResponseWriter
	filename := fmt.Sprintf("bookings_%d_%s.xlsx", dealershipID, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.ExportDealershipBookings(r.Context(), serviceReq, w); err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /dealerships/{id}/bookings/export - Access denied: dealership_id=%d, user_id=%d",
				dealershipID, userID)
			w.Header().Del("Content-Disposition")
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /dealerships/{id}/bookings/export - Invalid parameters: dealership_id=%d, error=%v",
				dealershipID, err)
			w.Header().Del("Content-Disposition")
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /dealerships/{id}/bookings/export - Export failed: dealership_id=%d, error=%v",
				dealershipID, err)
			w.Header().Del("Content-Disposition")
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /dealerships/{id}/bookings/export - Export completed: dealership_id=%d, user_id=%d",
		dealershipID, userID)
}
