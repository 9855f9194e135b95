package create_booking

import (
	"time"

	"github.com/avtomart/AVM-TestDriveService/pkg/types"
)

// Request модель запроса на создание бронирования тест-драйва
type Request struct {
	UserID    int64            // ID пользователя
	CarID     int64            // ID автомобиля
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")
	EndTime   types.TimeString // Время окончания (например, "10:30")
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64            // ID созданного бронирования
	UserID       int64            // ID пользователя
	CarID        int64            // ID автомобиля
	DealershipID int64            // ID дилерского центра
	BookingDate  time.Time        // Дата бронирования
	StartTime    types.TimeString // Время начала
	EndTime      types.TimeString // Время окончания
	Status       string           // Статус бронирования
	Notes        *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
