package bookings

import (
	"context"

	"github.com/vgtours/VGT-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// AuditRecorder интерфейс сервиса аудита
type AuditRecorder interface {
	Record(ctx context.Context, entityName string, entityID int64, action domain.AuditAction,
		actor domain.Actor, before interface{}, after interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
