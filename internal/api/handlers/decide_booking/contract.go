package decide_booking

import (
	"context"

	"github.com/vgtours/VGT-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Decide(ctx context.Context, req *models.DecideBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
