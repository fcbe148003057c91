package restore_booking

import (
	"context"

	"github.com/vgtours/VGT-BookingService/internal/domain"
)

type BookingsService interface {
	Restore(ctx context.Context, id int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
