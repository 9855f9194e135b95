package models

import (
	"errors"
	"time"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе автомобиля
	ErrInvalidStatus = errors.New("invalid car status")
)

// Request модели

// CreateCarRequest запрос на добавление автомобиля в каталог
type CreateCarRequest struct {
	UserID       int64   `json:"userId"`
	DealershipID int64   `json:"dealershipId"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	PriceRub     int64   `json:"priceRub"`
	Mileage      int     `json:"mileage"`
	Color        string  `json:"color"`
	BodyType     string  `json:"bodyType"`
	Transmission string  `json:"transmission"`
	VIN          string  `json:"vin"`
	Description  *string `json:"description,omitempty"`
	PhotoURL     *string `json:"photoUrl,omitempty"`
}

// UpdateCarRequest запрос на обновление автомобиля
// Поля-указатели: nil означает "не менять"
type UpdateCarRequest struct {
	UserID       int64   `json:"userId"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	Year         *int    `json:"year,omitempty"`
	PriceRub     *int64  `json:"priceRub,omitempty"`
	Mileage      *int    `json:"mileage,omitempty"`
	Color        *string `json:"color,omitempty"`
	BodyType     *string `json:"bodyType,omitempty"`
	Transmission *string `json:"transmission,omitempty"`
	Status       *string `json:"status,omitempty"`
	Description  *string `json:"description,omitempty"`
	PhotoURL     *string `json:"photoUrl,omitempty"`
}

// ListCarsRequest запрос на получение каталога автомобилей
type ListCarsRequest struct {
	DealershipID *int64  `json:"dealershipId,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	YearFrom     *int    `json:"yearFrom,omitempty"`
	YearTo       *int    `json:"yearTo,omitempty"`
	PriceFrom    *int64  `json:"priceFrom,omitempty"`
	PriceTo      *int64  `json:"priceTo,omitempty"`
	Status       *string `json:"status,omitempty"`
	Query        *string `json:"query,omitempty"`

	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListCarsRequest) ToDomainFilter() (domain.CarFilter, error) {
	filter := domain.CarFilter{
		DealershipID: r.DealershipID,
		Brand:        r.Brand,
		Model:        r.Model,
		YearFrom:     r.YearFrom,
		YearTo:       r.YearTo,
		PriceFrom:    r.PriceFrom,
		PriceTo:      r.PriceTo,
		Query:        r.Query,
		Limit:        r.Limit,
		Offset:       r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainCarStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// CarResponse ответ с данными автомобиля
type CarResponse struct {
	ID           int64   `json:"id"`
	DealershipID int64   `json:"dealershipId"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	PriceRub     int64   `json:"priceRub"`
	Mileage      int     `json:"mileage"`
	Color        string  `json:"color"`
	BodyType     string  `json:"bodyType"`
	Transmission string  `json:"transmission"`
	VIN          string  `json:"vin"`
	Status       string  `json:"status"`
	Description  *string `json:"description,omitempty"`
	PhotoURL     *string `json:"photoUrl,omitempty"`
	AISummary    *string `json:"aiSummary,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CarListResponse ответ со списком автомобилей
type CarListResponse struct {
	Cars []CarResponse `json:"cars"`
}

// Методы конвертации

// FromDomainCar конвертирует domain модель в DTO
func FromDomainCar(c *domain.Car) *CarResponse {
	if c == nil {
		return nil
	}

	return &CarResponse{
		ID:           c.ID,
		DealershipID: c.DealershipID,
		Brand:        c.Brand,
		Model:        c.Model,
		Year:         c.Year,
		PriceRub:     c.PriceRub,
		Mileage:      c.Mileage,
		Color:        c.Color,
		BodyType:     c.BodyType,
		Transmission: c.Transmission,
		VIN:          c.VIN,
		Status:       string(c.Status),
		Description:  c.Description,
		PhotoURL:     c.PhotoURL,
		AISummary:    c.AISummary,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// FromDomainCarList конвертирует список domain моделей в DTO
func FromDomainCarList(cars []*domain.Car) *CarListResponse {
	if cars == nil {
		return &CarListResponse{Cars: []CarResponse{}}
	}

	resp := &CarListResponse{
		Cars: make([]CarResponse, len(cars)),
	}

	for i, car := range cars {
		if carResp := FromDomainCar(car); carResp != nil {
			resp.Cars[i] = *carResp
		}
	}

	return resp
}

// ToDomainCarStatus конвертирует строку в domain.CarStatus с валидацией
func ToDomainCarStatus(status string) (domain.CarStatus, error) {
	s := domain.CarStatus(status)

	validStatuses := []domain.CarStatus{
		domain.CarStatusAvailable,
		domain.CarStatusReserved,
		domain.CarStatusSold,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
