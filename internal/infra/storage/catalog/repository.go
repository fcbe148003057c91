package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	"github.com/vgtours/VGT-BookingService/pkg/dbmetrics"
	"github.com/vgtours/VGT-BookingService/pkg/psqlbuilder"
)

// Repository read-mostly репозиторий каталога: тур-пакеты и их inclusions
// Движок бронирований только читает каталог, управление им вне этого сервиса
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPackage получает тур-пакет по ID
func (r *Repository) GetPackage(ctx context.Context, id int64) (*domain.TourPackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"base_price",
		"duration_minutes",
		"active",
		"created_at",
		"updated_at",
	).
		From("tour_packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackage - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.TourPackage
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.BasePrice,
		&p.DurationMinutes,
		&p.Active,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackage - scan package: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// GetInclusionsByIDs получает inclusions каталога по списку ID
// Требует ровно одну запись на каждый запрошенный ID: недостача
// означает висячую ссылку и возвращается как ErrInclusionNotFound
func (r *Repository) GetInclusionsByIDs(ctx context.Context, ids []int64) ([]*domain.PackageInclusion, error) {
	if len(ids) == 0 {
		return []*domain.PackageInclusion{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price",
		"active",
		"created_at",
		"updated_at",
	).
		From("package_inclusions").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetInclusionsByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetInclusionsByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	found := make(map[int64]*domain.PackageInclusion, len(ids))
	for rows.Next() {
		var inc domain.PackageInclusion
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&inc.ID, &inc.Name, &inc.Price, &inc.Active, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetInclusionsByIDs - scan row: %v", ErrScanRow, err)
		}
		inc.CreatedAt = createdAt.Time
		inc.UpdatedAt = updatedAt.Time
		found[inc.ID] = &inc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetInclusionsByIDs - rows error: %v", ErrScanRow, err)
	}

	// Сохраняем порядок запрошенных ID и проверяем полноту
	result := make([]*domain.PackageInclusion, 0, len(ids))
	for _, id := range ids {
		inc, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrInclusionNotFound, id)
		}
		result = append(result, inc)
	}

	return result, nil
}
