package get_dealership_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	"github.com/avtomart/AVM-TestDriveService/internal/service/bookings/models"
)

// QueryParams опциональные query параметры запроса
type QueryParams struct {
	CarID           string
	StartDate       string
	EndDate         string
	Status          string
	IncludeInactive string
}

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(dealershipID, userID int64, params QueryParams) (*models.GetDealershipBookingsRequest, error) {
	req := &models.GetDealershipBookingsRequest{
		UserID:          userID,
		DealershipID:    dealershipID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим carId если указан
	if params.CarID != "" {
		carID, err := strconv.ParseInt(params.CarID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid carId value: %w", err)
		}
		req.CarID = &carID
	}

	// Парсим startDate если указана
	if params.StartDate != "" {
		startDate, err := time.Parse(domain.DateFormat, params.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate value: %w", err)
		}
		req.StartDate = &startDate
	}

	// Парсим endDate если указана
	if params.EndDate != "" {
		endDate, err := time.Parse(domain.DateFormat, params.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate value: %w", err)
		}
		req.EndDate = &endDate
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("endDate is before startDate")
	}

	if params.Status != "" {
		req.Status = &params.Status
	}

	// Парсим includeInactive если указан
	if params.IncludeInactive != "" {
		includeInactive, err := strconv.ParseBool(params.IncludeInactive)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

// QueryParamsFromRequest извлекает query параметры из HTTP-запроса
func QueryParamsFromRequest(query map[string][]string) QueryParams {
	get := func(key string) string {
		if values, ok := query[key]; ok && len(values) > 0 {
			return values[0]
		}
		return ""
	}

	return QueryParams{
		CarID:           get("carId"),
		StartDate:       get("startDate"),
		EndDate:         get("endDate"),
		Status:          get("status"),
		IncludeInactive: get("includeInactive"),
	}
}
