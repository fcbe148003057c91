package audit

import (
	"context"

	"github.com/vgtours/VGT-BookingService/internal/domain"
)

// AuditRepository интерфейс append-only хранилища аудита
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditLog) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
