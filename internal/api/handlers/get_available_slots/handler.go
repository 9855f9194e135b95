package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avtomart/AVM-TestDriveService/internal/api/handlers"
	getAvailableSlots "github.com/avtomart/AVM-TestDriveService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCarID = "некорректный ID автомобиля"
	msgMissingDate  = "дата обязательна"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCarNotFound  = "автомобиль не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/cars/{carId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	carIDStr := vars["carId"]
	carID, err := strconv.ParseInt(carIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /cars/{id}/available-slots - Invalid car ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /cars/{id}/available-slots - Missing date: car_id=%d", carID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(carID, dateStr)
	if err != nil {
		h.logger.Warn("GET /cars/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCarNotFound):
			h.logger.Warn("GET /cars/{id}/available-slots - Car not found: car_id=%d", carID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate),
			errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /cars/{id}/available-slots - Invalid request: car_id=%d, error=%v", carID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /cars/{id}/available-slots - Failed to get slots: car_id=%d, date=%s, error=%v",
				carID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /cars/{id}/available-slots - Slots retrieved successfully: car_id=%d, date=%s, slots_count=%d",
		carID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
