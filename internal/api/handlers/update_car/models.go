package update_car

import (
	"github.com/avtomart/AVM-TestDriveService/internal/service/cars/models"
)

// UpdateCarRequest HTTP request model
// Поля-указатели: отсутствующее поле не меняется
type UpdateCarRequest struct {
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

// ToServiceRequest конвертирует HTTP запрос в сервисный
func (r *UpdateCarRequest) ToServiceRequest(userID int64) *models.UpdateCarRequest {
	return &models.UpdateCarRequest{
		UserID:       userID,
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		PriceRub:     r.PriceRub,
		Mileage:      r.Mileage,
		Color:        r.Color,
		BodyType:     r.BodyType,
		Transmission: r.Transmission,
		Status:       r.Status,
		Description:  r.Description,
		PhotoURL:     r.PhotoURL,
	}
}
