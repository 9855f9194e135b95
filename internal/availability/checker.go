package availability

import (
	"fmt"
	"time"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	"github.com/avtomart/AVM-TestDriveService/pkg/types"
)

// Candidate предлагаемый слот тест-драйва, проверяемый перед созданием бронирования
type Candidate struct {
	CarID     int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Check решает, может ли кандидат стать бронированием.
// Чистая функция без побочных эффектов: читает только свои аргументы,
// безопасна для конкурентных вызовов.
//
// Правила применяются строго по порядку, возвращается первое нарушенное:
//  1. формат времени HH:MM
//  2. длительность: конец позже начала, 30-60 минут
//  3. дата не в прошлом (сравниваются только календарные дни)
//  4. рабочий день и рабочие часы дилерского центра
//  5. пересечение с активными бронированиями (pending/confirmed)
//  6. лимит бронирований, стартующих в одном часовом интервале
//
// hours может быть nil - это эквивалентно закрытому дню.
// nil результат означает, что слот свободен.
func Check(c Candidate, existing []*domain.Booking, hours *domain.WorkingHours, now time.Time) error {
	// 1. Формат времени
	startMin, err := c.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: start time %q", ErrInvalidTimeFormat, c.StartTime)
	}
	endMin, err := c.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: end time %q", ErrInvalidTimeFormat, c.EndTime)
	}

	// 2. Длительность: сначала проверяем на неположительную,
	// чтобы сообщение было конкретным
	duration := endMin - startMin
	if duration <= 0 {
		return fmt.Errorf("%w: %s-%s", ErrEndBeforeStart, c.StartTime, c.EndTime)
	}
	if duration < domain.MinTestDriveMinutes || duration > domain.MaxTestDriveMinutes {
		return fmt.Errorf("%w: %d minutes, allowed %d-%d",
			ErrDurationOutOfRange, duration, domain.MinTestDriveMinutes, domain.MaxTestDriveMinutes)
	}

	// 3. Дата не в прошлом (время обнуляется, сравниваются календарные дни)
	if isDateInPast(c.Date, now) {
		return fmt.Errorf("%w: %s", ErrPastDate, c.Date.Format(domain.DateFormat))
	}

	// 4. Рабочие часы
	if hours == nil || !hours.IsOpen {
		return fmt.Errorf("%w: %s", ErrDealershipClosed, c.Date.Weekday())
	}

	openMin, err := hours.OpenTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: open time %q", ErrInvalidTimeFormat, hours.OpenTime)
	}
	closeMin, err := hours.CloseTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: close time %q", ErrInvalidTimeFormat, hours.CloseTime)
	}

	if startMin < openMin || endMin > closeMin {
		return fmt.Errorf("%w: working hours %s-%s", ErrOutsideBusinessHours, hours.OpenTime, hours.CloseTime)
	}

	// 5. Пересечение с существующими активными бронированиями
	for _, booking := range existing {
		if !booking.IsActive() {
			continue
		}

		bkStart, err := booking.StartTime.Minutes()
		if err != nil {
			continue
		}
		bkEnd, err := booking.EndTime.Minutes()
		if err != nil {
			continue
		}

		if overlaps(startMin, endMin, bkStart, bkEnd) {
			return fmt.Errorf("%w: %s-%s", ErrSlotConflict, booking.StartTime, booking.EndTime)
		}
	}

	// 6. Лимит стартов в часовом интервале.
	// Учитывается только час ВРЕМЕНИ НАЧАЛА бронирования: бронирование
	// 09:50-10:20 не попадает в интервал 10:00 (политика исходной системы,
	// сохранена как есть).
	hourBucket := startMin / 60
	startsInBucket := 0
	for _, booking := range existing {
		if !booking.IsActive() {
			continue
		}
		bkStart, err := booking.StartTime.Minutes()
		if err != nil {
			continue
		}
		if bkStart/60 == hourBucket {
			startsInBucket++
		}
	}
	if startsInBucket >= domain.HourlyStartCapacity {
		return fmt.Errorf("%w: %d bookings already start within hour %02d:00",
			ErrHourCapacityExceeded, startsInBucket, hourBucket)
	}

	return nil
}

// overlaps проверяет пересечение полуоткрытых интервалов [reqStart, reqEnd)
// и [bkStart, bkEnd) в минутах. Пересечение есть, если выполнено любое из:
//   - начало запроса попадает в [bkStart, bkEnd)
//   - конец запроса попадает в (bkStart, bkEnd]
//   - запрос полностью накрывает существующее бронирование
//
// Слоты "встык" (конец одного равен началу другого) пересечением не считаются.
func overlaps(reqStart, reqEnd, bkStart, bkEnd int) bool {
	if reqStart >= bkStart && reqStart < bkEnd {
		return true
	}
	if reqEnd > bkStart && reqEnd <= bkEnd {
		return true
	}
	if reqStart <= bkStart && reqEnd >= bkEnd {
		return true
	}
	return false
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
