package create_booking

import (
	"errors"
	"net/http"

	"github.com/avtomart/AVM-TestDriveService/internal/api/handlers"
	"github.com/avtomart/AVM-TestDriveService/internal/api/middleware"
	"github.com/avtomart/AVM-TestDriveService/internal/availability"
	createBooking "github.com/avtomart/AVM-TestDriveService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgCarNotFound          = "автомобиль не найден"
	msgUserBlocked          = "бронирование недоступно для вашего аккаунта"
	msgCarNotAvailable      = "автомобиль недоступен для тест-драйва"
	msgDuplicateBooking     = "у вас уже есть активная запись на этот автомобиль"
	msgInvalidTimeFormat    = "некорректный формат времени, ожидается HH:MM"
	msgEndBeforeStart       = "время окончания должно быть позже времени начала"
	msgDurationOutOfRange   = "длительность тест-драйва должна быть от 30 до 60 минут"
	msgPastDate             = "дата бронирования уже прошла"
	msgDealershipClosed     = "дилерский центр закрыт в выбранный день"
	msgOutsideBusinessHours = "выбранное время вне рабочих часов дилерского центра"
	msgSlotConflict         = "выбранное время пересекается с другой записью"
	msgHourCapacity         = "на этот час уже записано максимальное число тест-драйвов"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrCarNotFound):
			h.logger.Warn("POST /bookings - Car not found: car_id=%d", req.CarID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUserBlocked)

		case errors.Is(err, createBooking.ErrUserBlocked):
			h.logger.Warn("POST /bookings - User is blocked: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUserBlocked)

		case errors.Is(err, createBooking.ErrCarNotAvailable):
			h.logger.Warn("POST /bookings - Car not available: car_id=%d", req.CarID)
			handlers.RespondError(w, http.StatusConflict, msgCarNotAvailable)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: user_id=%d, car_id=%d", userID, req.CarID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateBooking)

		case errors.Is(err, availability.ErrInvalidTimeFormat):
			h.logger.Warn("POST /bookings - Invalid time format: user_id=%d, car_id=%d", userID, req.CarID)
			handlers.RespondBadRequest(w, msgInvalidTimeFormat)

		case errors.Is(err, availability.ErrEndBeforeStart):
			h.logger.Warn("POST /bookings - End before start: user_id=%d, car_id=%d", userID, req.CarID)
			handlers.RespondBadRequest(w, msgEndBeforeStart)

		case errors.Is(err, availability.ErrDurationOutOfRange):
			h.logger.Warn("POST /bookings - Duration out of range: user_id=%d, car_id=%d", userID, req.CarID)
			handlers.RespondBadRequest(w, msgDurationOutOfRange)

		case errors.Is(err, availability.ErrPastDate):
			h.logger.Warn("POST /bookings - Past date: user_id=%d, car_id=%d", userID, req.CarID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, availability.ErrDealershipClosed):
			h.logger.Warn("POST /bookings - Dealership closed: user_id=%d, car_id=%d", userID, req.CarID)
			handlers.RespondBadRequest(w, msgDealershipClosed)

		case errors.Is(err, availability.ErrOutsideBusinessHours):
			h.logger.Warn("POST /bookings - Outside business hours: user_id=%d, car_id=%d", userID, req.CarID)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, availability.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, car_id=%d", userID, req.CarID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, availability.ErrHourCapacityExceeded):
			h.logger.Warn("POST /bookings - Hour capacity exceeded: user_id=%d, car_id=%d", userID, req.CarID)
			handlers.RespondError(w, http.StatusConflict, msgHourCapacity)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, car_id=%d: %v", userID, req.CarID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, car_id=%d, error=%v",
				userID, req.CarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, car_id=%d",
		result.ID, userID, req.CarID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
