package models

import (
	"errors"
	"time"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	"github.com/avtomart/AVM-TestDriveService/pkg/types"
)

var (
	// ErrInvalidDay возвращается при некорректном дне недели
	ErrInvalidDay = errors.New("invalid day of week")

	// ErrInvalidTimeRange возвращается, когда открытие не раньше закрытия
	ErrInvalidTimeRange = errors.New("open time must be before close time")
)

// DayHours рабочие часы на один день недели
type DayHours struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
	IsOpen    bool   `json:"isOpen"`
}

// UpdateWeekRequest запрос на обновление расписания дилерского центра
type UpdateWeekRequest struct {
	UserID int64      `json:"userId"`
	Days   []DayHours `json:"days"`
}

// WeekResponse расписание дилерского центра на неделю
type WeekResponse struct {
	DealershipID int64      `json:"dealershipId"`
	Days         []DayHours `json:"days"`
}

// ToDomainWorkingHours конвертирует и валидирует день расписания
func (d DayHours) ToDomainWorkingHours(dealershipID int64) (*domain.WorkingHours, error) {
	if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
		return nil, ErrInvalidDay
	}

	wh := &domain.WorkingHours{
		DealershipID: dealershipID,
		DayOfWeek:    time.Weekday(d.DayOfWeek),
		IsOpen:       d.IsOpen,
	}

	if !d.IsOpen {
		return wh, nil
	}

	open, err := types.NewTimeStringFromString(d.OpenTime)
	if err != nil {
		return nil, err
	}
	close, err := types.NewTimeStringFromString(d.CloseTime)
	if err != nil {
		return nil, err
	}

	if !open.IsBefore(close) {
		return nil, ErrInvalidTimeRange
	}

	wh.OpenTime = open
	wh.CloseTime = close

	return wh, nil
}

// FromDomainWeek конвертирует расписание в DTO
// Дни без записи в хранилище считаются выходными
func FromDomainWeek(dealershipID int64, hours []*domain.WorkingHours) *WeekResponse {
	byDay := make(map[time.Weekday]*domain.WorkingHours, len(hours))
	for _, wh := range hours {
		byDay[wh.DayOfWeek] = wh
	}

	resp := &WeekResponse{
		DealershipID: dealershipID,
		Days:         make([]DayHours, 7),
	}

	for day := time.Sunday; day <= time.Saturday; day++ {
		dh := DayHours{DayOfWeek: int(day)}
		if wh, ok := byDay[day]; ok && wh.IsOpen {
			dh.IsOpen = true
			dh.OpenTime = wh.OpenTime.String()
			dh.CloseTime = wh.CloseTime.String()
		}
		resp.Days[int(day)] = dh
	}

	return resp
}
