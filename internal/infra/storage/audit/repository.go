package audit

import (
	"context"
	"fmt"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	"github.com/vgtours/VGT-BookingService/pkg/dbmetrics"
	"github.com/vgtours/VGT-BookingService/pkg/psqlbuilder"
)

// Repository append-only репозиторий аудита
// Записи никогда не обновляются и не удаляются; created_at
// проставляется базой в момент вставки
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудита
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert добавляет запись аудита
func (r *Repository) Insert(ctx context.Context, entry *domain.AuditLog) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("audit_logs").
		Columns(
			"entity_name",
			"entity_id",
			"action",
			"actor_email",
			"actor_role",
			"before_snapshot",
			"after_snapshot",
		).
		Values(
			entry.EntityName,
			entry.EntityID,
			entry.Action,
			entry.ActorEmail,
			entry.ActorRole,
			entry.Before,
			entry.After,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
