package get_available_slots

import (
	"time"

	"github.com/avtomart/AVM-TestDriveService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	CarID int64     // ID автомобиля
	Date  time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	CarID int64     // ID автомобиля
	Date  time.Time // Дата, на которую запрашивались слоты
	Slots []Slot    // Сетка слотов на день, пустая для выходного дня
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время окончания слота (например, "10:30")
	Available bool             // Доступен ли слот для бронирования
}
