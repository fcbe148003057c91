package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	catalogRepo "github.com/vgtours/VGT-BookingService/internal/infra/storage/catalog"
)

const entityName = "booking"

// UseCase use case создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	auditSvc     AuditRecorder
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	auditSvc AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		auditSvc:     auditSvc,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверка занятости слота и запись выполняются в сериализуемой
// транзакции с блокировкой строк на дату (FOR UPDATE): два конкурентных
// создания не могут пройти валидацию по одному устаревшему снимку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: account=%d, package=%d, date=%s, time=%s, group=%d",
		req.AccountID, req.PackageID, req.VisitDate.Format(domain.DateFormat), req.VisitTime, req.GroupSize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Разрешаем тур-пакет
	pkg, err := uc.catalogRepo.GetPackage(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPackageNotFound) {
			uc.logger.Warn("CreateBooking: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CreateBooking: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}
	if !pkg.Active {
		uc.logger.Warn("CreateBooking: package id=%d is disabled", req.PackageID)
		return nil, ErrPackageNotFound
	}

	// 4. Разрешаем inclusions каталога (ровно один на каждый запрошенный ID)
	catalogInclusions, err := uc.catalogRepo.GetInclusionsByIDs(ctx, selectionIDs(req.Inclusions))
	if err != nil {
		if errors.Is(err, catalogRepo.ErrInclusionNotFound) {
			uc.logger.Warn("CreateBooking: dangling inclusion reference: %v", err)
			return nil, ErrInclusionNotFound
		}
		uc.logger.Error("CreateBooking: failed to get inclusions: %v", err)
		return nil, fmt.Errorf("%w: failed to get inclusions: %v", ErrInternal, err)
	}
	for _, inc := range catalogInclusions {
		if !inc.Active {
			uc.logger.Warn("CreateBooking: inclusion id=%d is disabled", inc.ID)
			return nil, ErrInclusionNotFound
		}
	}

	inclusions := resolveInclusions(req.Inclusions, catalogInclusions)

	// 5. Считаем итоговую цену (чистая функция, до транзакции)
	totalPrice, err := domain.ComputeTotal(pkg.BasePrice, req.GroupSize, inclusions)
	if err != nil {
		uc.logger.Warn("CreateBooking: price computation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 6. Проверка расписания и запись - атомарно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Активные бронирования на дату, с блокировкой
		existing, err := uc.bookingRepo.GetActiveByDate(txCtx, req.VisitDate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for date: %v", err)
			return fmt.Errorf("%w: failed to get bookings for date: %v", ErrInternal, err)
		}

		// 6.2. Lead time, рабочие часы, пересечения
		if err := domain.ValidateSchedule(req.VisitDate, req.VisitTime, pkg.DurationMinutes, now, existing); err != nil {
			uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
			return err
		}

		// 6.3. Создаем бронирование
		booking := &domain.Booking{
			AccountID:       req.AccountID,
			PackageID:       req.PackageID,
			VisitDate:       req.VisitDate,
			VisitTime:       req.VisitTime,
			DurationMinutes: pkg.DurationMinutes,
			GroupSize:       req.GroupSize,
			Inclusions:      inclusions,
			TotalPrice:      totalPrice,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentUnpaid,
			Active:          true,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%d", result.ID, result.TotalPrice)

	// 7. Аудит после коммита: его сбой не откатывает бронирование
	uc.auditSvc.Record(ctx, entityName, result.ID, domain.AuditActionCreate, req.Actor, nil, result)

	return toResponse(result, pkg), nil
}
