package export_bookings

import (
	"context"
	"io"

	"github.com/avtomart/AVM-TestDriveService/internal/service/bookings/models"
)

type BookingService interface {
	ExportDealershipBookings(ctx context.Context, req *models.GetDealershipBookingsRequest, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
