package create_booking

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = errors.New("create_booking: car not found")

	// ErrCarNotAvailable возвращается, когда автомобиль продан и тест-драйвы по нему закрыты
	ErrCarNotAvailable = errors.New("create_booking: car is not available for test drive")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrUserBlocked возвращается, когда пользователь заблокирован
	ErrUserBlocked = errors.New("create_booking: user is blocked")

	// ErrDuplicateBooking возвращается, когда у пользователя уже есть
	// активное бронирование на этот автомобиль
	ErrDuplicateBooking = errors.New("create_booking: user already has an active booking for this car")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
