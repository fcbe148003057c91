package create_booking

import (
	"context"
	"time"

	"github.com/vgtours/VGT-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByDate(ctx context.Context, date time.Time) ([]domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetPackage(ctx context.Context, id int64) (*domain.TourPackage, error)
	GetInclusionsByIDs(ctx context.Context, ids []int64) ([]*domain.PackageInclusion, error)
}

// AuditRecorder интерфейс сервиса аудита
type AuditRecorder interface {
	Record(ctx context.Context, entityName string, entityID int64, action domain.AuditAction,
		actor domain.Actor, before interface{}, after interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
