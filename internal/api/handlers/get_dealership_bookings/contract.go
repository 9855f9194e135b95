package get_dealership_bookings

import (
	"context"

	"github.com/avtomart/AVM-TestDriveService/internal/service/bookings/models"
)

type BookingService interface {
	GetDealershipBookings(ctx context.Context, req *models.GetDealershipBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
