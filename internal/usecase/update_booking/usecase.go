package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	bookingRepo "github.com/vgtours/VGT-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/vgtours/VGT-BookingService/internal/infra/storage/catalog"
)

const entityName = "booking"

// UseCase use case изменения бронирования его владельцем
// Владелец может менять дату, время, размер группы и inclusions,
// пока бронирование не рассмотрено персоналом (статус PENDING)
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

// Execute выполняет use case изменения бронирования
//
// Слияние, валидация и запись выполняются в одной сериализуемой
// транзакции: перенос на занятый слот невозможен даже при
// конкурентных изменениях той же даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, account=%d", req.BookingID, req.Actor.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var before, after *domain.Booking

	// 3. Загрузка, слияние, проверки и запись - атомарно
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to load booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
		}

		// 3.1. Только владелец может менять свое бронирование
		if current.AccountID != req.Actor.ID {
			uc.logger.Warn("UpdateBooking: account=%d is not the owner of booking id=%d",
				req.Actor.ID, req.BookingID)
			return ErrAccessDenied
		}

		// 3.2. Рассмотренные бронирования владельцу менять нельзя
		if !current.CanBeEditedByOwner() {
			uc.logger.Warn("UpdateBooking: booking id=%d already decided, status=%s",
				req.BookingID, current.Status)
			return fmt.Errorf("%w: a %s booking can no longer be edited",
				domain.ErrIllegalStatusTransition, current.Status)
		}

		// 3.3. Разрешаем тур-пакет: он несет базовую цену и длительность
		pkg, err := uc.catalogRepo.GetPackage(txCtx, current.PackageID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrPackageNotFound) {
				uc.logger.Warn("UpdateBooking: package id=%d not found for booking id=%d",
					current.PackageID, req.BookingID)
				return ErrPackageNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get package id=%d: %v", current.PackageID, err)
			return fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
		}

		// 3.4. Строим проспективное бронирование
		prospective := *current
		prospective.Inclusions = current.Inclusions

		dateChanged := req.VisitDate != nil && !req.VisitDate.Equal(current.VisitDate)
		timeChanged := req.VisitTime != nil && *req.VisitTime != current.VisitTime

		if req.VisitDate != nil {
			prospective.VisitDate = *req.VisitDate
		}
		if req.VisitTime != nil {
			prospective.VisitTime = *req.VisitTime
		}
		if req.GroupSize != nil {
			prospective.GroupSize = *req.GroupSize
		}

		if req.Inclusions != nil {
			catalogInclusions, err := uc.catalogRepo.GetInclusionsByIDs(txCtx, selectionIDs(*req.Inclusions))
			if err != nil {
				if errors.Is(err, catalogRepo.ErrInclusionNotFound) {
					uc.logger.Warn("UpdateBooking: dangling inclusion reference: %v", err)
					return ErrInclusionNotFound
				}
				uc.logger.Error("UpdateBooking: failed to get inclusions: %v", err)
				return fmt.Errorf("%w: failed to get inclusions: %v", ErrInternal, err)
			}
			for _, inc := range catalogInclusions {
				if !inc.Active {
					uc.logger.Warn("UpdateBooking: inclusion id=%d is disabled", inc.ID)
					return ErrInclusionNotFound
				}
			}
			prospective.Inclusions = resolveInclusions(*req.Inclusions, catalogInclusions)
		}

		// 3.5. Lead time действует только при переносе даты
		if dateChanged {
			if err := domain.ValidateLeadTime(prospective.VisitDate, now); err != nil {
				uc.logger.Warn("UpdateBooking: lead time validation failed: %v", err)
				return err
			}
		}

		// 3.6. Перенос даты или времени - проверяем окно и пересечения
		if dateChanged || timeChanged {
			existing, err := uc.bookingRepo.GetActiveByDate(txCtx, prospective.VisitDate)
			if err != nil {
				uc.logger.Error("UpdateBooking: failed to get bookings for date: %v", err)
				return fmt.Errorf("%w: failed to get bookings for date: %v", ErrInternal, err)
			}

			others := excludeBooking(existing, current.ID)
			if err := domain.ValidateSlot(prospective.VisitTime, prospective.DurationMinutes, others); err != nil {
				uc.logger.Warn("UpdateBooking: slot validation failed: %v", err)
				return err
			}
		}

		// 3.7. Пересчет цены: инвариант totalPrice держится после любого изменения
		totalPrice, err := domain.ComputeTotal(pkg.BasePrice, prospective.GroupSize, prospective.Inclusions)
		if err != nil {
			uc.logger.Warn("UpdateBooking: price computation failed: %v", err)
			return err
		}
		prospective.TotalPrice = totalPrice

		// 3.8. Сохраняем
		if err := uc.bookingRepo.Update(txCtx, &prospective); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		before = current
		after = &prospective
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d, total=%d", after.ID, after.TotalPrice)

	// 4. Аудит после коммита с before/after снимками
	uc.auditSvc.Record(ctx, entityName, after.ID, domain.AuditActionUpdate, req.Actor, before, after)

	return toResponse(after), nil
}
