package domain

import "time"

// CarStatus represents the sale status of a car in the inventory
type CarStatus string

const (
	CarStatusAvailable CarStatus = "available"
	CarStatusReserved  CarStatus = "reserved"
	CarStatusSold      CarStatus = "sold"
)

// Car represents a car listed in the marketplace inventory
type Car struct {
	ID           int64
	DealershipID int64
	Brand        string
	Model        string
	Year         int
	PriceRub     int64
	Mileage      int
	Color        string
	BodyType     string
	Transmission string
	VIN          string
	Status       CarStatus
	Description  *string
	PhotoURL     *string
	AISummary    *string // Сводка состояния от сервиса анализа фотографий (опционально)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if test drives can be booked for the car
func (c *Car) IsBookable() bool {
	return c.Status == CarStatusAvailable || c.Status == CarStatusReserved
}

// CarFilter фильтр каталога автомобилей для публичного поиска
type CarFilter struct {
	DealershipID *int64
	Brand        *string
	Model        *string
	YearFrom     *int
	YearTo       *int
	PriceFrom    *int64
	PriceTo      *int64
	Status       *CarStatus
	Query        *string // Поиск подстроки по марке/модели/описанию

	Limit  int
	Offset int
}
