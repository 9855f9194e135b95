package get_available_slots

import (
	"time"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	"github.com/avtomart/AVM-TestDriveService/pkg/types"
)

// generateSlotGrid генерирует сетку слотов на день с шагом domain.DefaultSlotStepMinutes
// Слот занимает один шаг сетки и должен целиком помещаться в рабочие часы
// Для сегодняшней даты слоты, начинающиеся раньше текущего времени, отбрасываются
func generateSlotGrid(
	hours *domain.WorkingHours,
	requestDate time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	// Прошедшие даты и выходные дни - пустая сетка
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}
	if hours == nil || !hours.IsOpen {
		return []types.TimeString{}, nil
	}

	allSlots := make([]types.TimeString, 0)
	currentSlot := hours.OpenTime

	for currentSlot.IsBefore(hours.CloseTime) {
		slotEnd, err := currentSlot.AddMinutes(domain.DefaultSlotStepMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(hours.CloseTime) {
			break
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot = slotEnd
	}

	// Для будущих дат возвращаем всю сетку
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Для сегодняшней даты отбрасываем слоты, которые уже начались
	currentTime := types.NewTimeString(now)
	availableSlots := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if !slot.IsBefore(currentTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// markAvailability вычисляет доступность каждого слота сетки.
// Слот доступен, если он не пересекается ни с одним активным бронированием
// и в его часовом интервале стартует меньше domain.HourlyStartCapacity бронирований
func markAvailability(grid []types.TimeString, bookings []*domain.Booking) ([]Slot, error) {
	// Подсчитываем старты активных бронирований по часовым интервалам
	startsPerHour := make(map[int]int)
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		startMin, err := booking.StartTime.Minutes()
		if err != nil {
			continue
		}
		startsPerHour[startMin/60]++
	}

	result := make([]Slot, 0, len(grid))

	for _, slotStart := range grid {
		slotEnd, err := slotStart.AddMinutes(domain.DefaultSlotStepMinutes)
		if err != nil {
			return nil, err
		}

		available := true

		// Проверка пересечения с активными бронированиями
		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			if booking.StartTime.IsBefore(slotEnd) && booking.EndTime.IsAfter(slotStart) {
				available = false
				break
			}
		}

		// Проверка лимита стартов в часовом интервале
		if available {
			startMin, err := slotStart.Minutes()
			if err != nil {
				return nil, err
			}
			if startsPerHour[startMin/60] >= domain.HourlyStartCapacity {
				available = false
			}
		}

		result = append(result, Slot{
			StartTime: slotStart,
			EndTime:   slotEnd,
			Available: available,
		})
	}

	return result, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
