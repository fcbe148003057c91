package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/samber/lo"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	"github.com/vgtours/VGT-BookingService/pkg/dbmetrics"
	"github.com/vgtours/VGT-BookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"account_id",
	"package_id",
	"visit_date",
	"visit_time",
	"duration_minutes",
	"group_size",
	"total_price",
	"status",
	"payment_status",
	"staff_reply",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
// Бронирование и его inclusions сохраняются вместе: inclusions
// полностью принадлежат бронированию и живут в дочерней таблице
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с его inclusions
// Вызывается внутри сериализуемой транзакции usecase-а создания,
// чтобы проверка занятости слота и запись были атомарны
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"account_id",
			"package_id",
			"visit_date",
			"visit_time",
			"duration_minutes",
			"group_size",
			"total_price",
			"status",
			"payment_status",
			"staff_reply",
			"active",
		).
		Values(
			b.AccountID,
			b.PackageID,
			b.VisitDate,
			b.VisitTime,
			b.DurationMinutes,
			b.GroupSize,
			b.TotalPrice,
			b.Status,
			b.PaymentStatus,
			b.StaffReply,
			b.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	if err := r.insertInclusions(ctx, executor, b.ID, b.Inclusions); err != nil {
		return nil, err
	}

	return b, nil
}

// GetByID получает бронирование по ID вместе с inclusions
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	inclusions, err := r.loadInclusions(ctx, executor, []int64{b.ID})
	if err != nil {
		return nil, err
	}
	b.Inclusions = inclusions[b.ID]

	return b, nil
}

// GetActiveByDate получает активные бронирования на дату, отсортированные
// по времени начала (ASC), чтобы валидатор сообщал о самом раннем конфликте
//
// Внутри транзакции добавляет FOR UPDATE: строки блокируются до конца
// транзакции, и два конкурентных создания не могут пройти проверку
// занятости по одному и тому же устаревшему снимку
func (r *Repository) GetActiveByDate(ctx context.Context, date time.Time) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"visit_date": date, "active": true}).
		OrderBy("visit_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	// Валидатору расписания inclusions не нужны
	result := make([]domain.Booking, len(bookings))
	for i, b := range bookings {
		result[i] = *b
	}
	return result, nil
}

// Update перезаписывает изменяемые поля бронирования и заменяет его inclusions
func (r *Repository) Update(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("visit_date", b.VisitDate).
		Set("visit_time", b.VisitTime).
		Set("duration_minutes", b.DurationMinutes).
		Set("group_size", b.GroupSize).
		Set("total_price", b.TotalPrice).
		Set("status", b.Status).
		Set("payment_status", b.PaymentStatus).
		Set("staff_reply", b.StaffReply).
		Set("active", b.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	// Полная замена inclusions: старый набор удаляем, новый вставляем
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("booking_inclusions").
		Where(squirrel.Eq{"booking_id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build delete inclusions query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: Update - delete inclusions: %v", ErrExecQuery, err)
	}

	return r.insertInclusions(ctx, executor, b.ID, b.Inclusions)
}

// SetActive переключает флаг active (soft delete / restore)
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// List получает бронирования с фильтрацией по аккаунту, периоду и активности
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("visit_date DESC, visit_time DESC")

	if filter.AccountID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"account_id": *filter.AccountID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"visit_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"visit_date": *filter.EndDate})
	}
	if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return bookings, nil
	}

	ids := lo.Map(bookings, func(b *domain.Booking, _ int) int64 { return b.ID })

	inclusions, err := r.loadInclusions(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		b.Inclusions = inclusions[b.ID]
	}

	return bookings, nil
}

// insertInclusions вставляет inclusions бронирования одним запросом
func (r *Repository) insertInclusions(ctx context.Context, executor DBExecutor, bookingID int64, inclusions []domain.BookingInclusion) error {
	if len(inclusions) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("booking_inclusions").
		Columns("booking_id", "inclusion_id", "name", "quantity", "price_at_booking")

	for _, inc := range inclusions {
		insertBuilder = insertBuilder.Values(bookingID, inc.InclusionID, inc.Name, inc.Quantity, inc.PriceAtBooking)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertInclusions - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertInclusions - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// loadInclusions загружает inclusions для набора бронирований одним запросом
func (r *Repository) loadInclusions(ctx context.Context, executor DBExecutor, bookingIDs []int64) (map[int64][]domain.BookingInclusion, error) {
	query, args, err := psqlbuilder.Select(
		"booking_id",
		"inclusion_id",
		"name",
		"quantity",
		"price_at_booking",
	).
		From("booking_inclusions").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadInclusions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadInclusions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.BookingInclusion)
	for rows.Next() {
		var bookingID int64
		var inc domain.BookingInclusion
		if err := rows.Scan(&bookingID, &inc.InclusionID, &inc.Name, &inc.Quantity, &inc.PriceAtBooking); err != nil {
			return nil, fmt.Errorf("%w: loadInclusions - scan row: %v", ErrScanRow, err)
		}
		result[bookingID] = append(result[bookingID], inc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadInclusions - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.AccountID,
		&b.PackageID,
		&b.VisitDate,
		&b.VisitTime,
		&b.DurationMinutes,
		&b.GroupSize,
		&b.TotalPrice,
		&b.Status,
		&b.PaymentStatus,
		&b.StaffReply,
		&b.Active,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
