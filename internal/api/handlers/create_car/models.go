package create_car

import (
	"fmt"
	"time"

	"github.com/avtomart/AVM-TestDriveService/internal/service/cars/models"
)

const minCarYear = 1970

// CreateCarRequest HTTP request model
type CreateCarRequest struct {
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

// Validate проверяет обязательные поля запроса
func (r *CreateCarRequest) Validate() error {
	if r.DealershipID <= 0 {
		return fmt.Errorf("dealershipId is required")
	}
	if r.Brand == "" {
		return fmt.Errorf("brand is required")
	}
	if r.Model == "" {
		return fmt.Errorf("model is required")
	}
	if r.VIN == "" {
		return fmt.Errorf("vin is required")
	}
	if r.Year < minCarYear || r.Year > time.Now().Year()+1 {
		return fmt.Errorf("year is out of range")
	}
	if r.PriceRub <= 0 {
		return fmt.Errorf("priceRub must be positive")
	}
	if r.Mileage < 0 {
		return fmt.Errorf("mileage must not be negative")
	}
	return nil
}

// ToServiceRequest конвертирует HTTP запрос в сервисный
func (r *CreateCarRequest) ToServiceRequest(userID int64) *models.CreateCarRequest {
	return &models.CreateCarRequest{
		UserID:       userID,
		DealershipID: r.DealershipID,
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		PriceRub:     r.PriceRub,
		Mileage:      r.Mileage,
		Color:        r.Color,
		BodyType:     r.BodyType,
		Transmission: r.Transmission,
		VIN:          r.VIN,
		Description:  r.Description,
		PhotoURL:     r.PhotoURL,
	}
}
