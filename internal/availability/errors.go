package availability

import "errors"

// Каждое нарушение правила доступности - отдельная sentinel ошибка.
// Проверки выполняются в фиксированном порядке, возвращается первое
// нарушенное правило. Вызывающий код различает причины через errors.Is.
var (
	// ErrInvalidTimeFormat возвращается при времени не в формате HH:MM (24 часа)
	ErrInvalidTimeFormat = errors.New("availability: invalid time format")

	// ErrEndBeforeStart возвращается при неположительной длительности слота
	ErrEndBeforeStart = errors.New("availability: end time is not after start time")

	// ErrDurationOutOfRange возвращается при длительности вне допустимых границ
	ErrDurationOutOfRange = errors.New("availability: duration is out of range")

	// ErrPastDate возвращается при дате раньше сегодняшнего дня
	ErrPastDate = errors.New("availability: date is in the past")

	// ErrDealershipClosed возвращается, когда дилерский центр не работает в этот день
	ErrDealershipClosed = errors.New("availability: dealership is closed on this day")

	// ErrOutsideBusinessHours возвращается, когда слот выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("availability: slot is outside business hours")

	// ErrSlotConflict возвращается при пересечении с существующим активным бронированием
	ErrSlotConflict = errors.New("availability: slot conflicts with an existing booking")

	// ErrHourCapacityExceeded возвращается, когда в часовом интервале
	// уже достигнут лимит стартующих бронирований
	ErrHourCapacityExceeded = errors.New("availability: hourly booking capacity exceeded")
)
