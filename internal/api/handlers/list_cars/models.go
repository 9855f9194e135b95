package list_cars

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/avtomart/AVM-TestDriveService/internal/service/cars/models"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(query url.Values) (*models.ListCarsRequest, error) {
	req := &models.ListCarsRequest{
		Limit: defaultLimit,
	}

	if v := query.Get("dealershipId"); v != "" {
		dealershipID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid dealershipId value: %w", err)
		}
		req.DealershipID = &dealershipID
	}

	if v := query.Get("brand"); v != "" {
		req.Brand = &v
	}

	if v := query.Get("model"); v != "" {
		req.Model = &v
	}

	if v := query.Get("yearFrom"); v != "" {
		yearFrom, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid yearFrom value: %w", err)
		}
		req.YearFrom = &yearFrom
	}

	if v := query.Get("yearTo"); v != "" {
		yearTo, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid yearTo value: %w", err)
		}
		req.YearTo = &yearTo
	}

	if v := query.Get("priceFrom"); v != "" {
		priceFrom, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid priceFrom value: %w", err)
		}
		req.PriceFrom = &priceFrom
	}

	if v := query.Get("priceTo"); v != "" {
		priceTo, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid priceTo value: %w", err)
		}
		req.PriceTo = &priceTo
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("q"); v != "" {
		req.Query = &v
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return nil, fmt.Errorf("invalid limit value")
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		req.Limit = limit
	}

	if v := query.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("invalid offset value")
		}
		req.Offset = offset
	}

	return req, nil
}
