package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	bookingRepo "github.com/vgtours/VGT-BookingService/internal/infra/storage/booking"
	"github.com/vgtours/VGT-BookingService/internal/service/bookings/models"
)

const entityName = "booking"

// Service сервис персонала для работы с бронированиями
// Решения по статусу и оплате, мягкое удаление и выборки
type Service struct {
	bookingRepo BookingRepository
	auditSvc    AuditRecorder
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	auditSvc AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		auditSvc:    auditSvc,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Владелец видит только свои бронирования, персонал - любые
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d", id, actor.ID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.Role.IsStaff() && booking.AccountID != actor.ID {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией по аккаунту, периоду и активности
// Не-персонал всегда видит только собственные бронирования
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for actor=%d, role=%s", req.Actor.ID, req.Actor.Role)

	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		s.logger.Warn("List: invalid date range for actor=%d", req.Actor.ID)
		return nil, ErrInvalidRange
	}

	filter := req.ToDomainFilter()
	if !req.Actor.Role.IsStaff() {
		accountID := req.Actor.ID
		filter.AccountID = &accountID
	}

	var bookings []*domain.Booking
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.List(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Decide применяет решение персонала: статус, статус оплаты, ответ персонала
// Переходы статуса проверяются по графу жизненного цикла
func (s *Service) Decide(ctx context.Context, req *models.DecideBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Decide: booking=%d, actor=%d, role=%s", req.BookingID, req.Actor.ID, req.Actor.Role)

	if !req.Actor.Role.IsStaff() {
		s.logger.Warn("Decide: actor=%d with role=%s is not staff", req.Actor.ID, req.Actor.Role)
		return nil, domain.ErrStaffOnly
	}

	if req.StaffReply != nil && len(*req.StaffReply) > domain.MaxStaffReplyLength {
		s.logger.Warn("Decide: staff reply of %d chars exceeds limit", len(*req.StaffReply))
		return nil, ErrStaffReplyTooLong
	}

	decision, err := req.ToDomainDecision()
	if err != nil {
		s.logger.Warn("Decide: invalid decision for booking=%d: %v", req.BookingID, err)
		return nil, err
	}
	if decision.IsEmpty() {
		return nil, ErrEmptyDecision
	}

	var before, after *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Decide - repository error: %v", ErrInternal, err)
		}

		updated, err := domain.ApplyStaffDecision(*current, decision, req.Actor.Role)
		if err != nil {
			return err
		}

		if err := s.bookingRepo.Update(txCtx, &updated); err != nil {
			return fmt.Errorf("%w: Decide - update error: %v", ErrInternal, err)
		}

		before, after = current, &updated
		return nil
	})
	if err != nil {
		s.logger.Warn("Decide: booking=%d failed: %v", req.BookingID, err)
		return nil, err
	}

	s.auditSvc.Record(ctx, entityName, after.ID, domain.AuditActionUpdate, req.Actor, before, after)

	s.logger.Info("Decide: booking=%d updated, status=%s, payment=%s",
		after.ID, after.Status, after.PaymentStatus)
	return models.FromDomainBooking(after), nil
}

// SoftDelete логически удаляет бронирование
// Ось active независима от графа статусов
func (s *Service) SoftDelete(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("SoftDelete: booking=%d, actor=%d", id, actor.ID)
	return s.setActive(ctx, id, actor, false)
}

// Restore восстанавливает логически удаленное бронирование
func (s *Service) Restore(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("Restore: booking=%d, actor=%d", id, actor.ID)
	return s.setActive(ctx, id, actor, true)
}

func (s *Service) setActive(ctx context.Context, id int64, actor domain.Actor, active bool) error {
	if !actor.Role.IsStaff() {
		s.logger.Warn("setActive: actor=%d with role=%s is not staff", actor.ID, actor.Role)
		return domain.ErrStaffOnly
	}

	var before, after *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: setActive - repository error: %v", ErrInternal, err)
		}

		var updated domain.Booking
		if active {
			updated, err = domain.Activate(*current)
		} else {
			updated, err = domain.Deactivate(*current)
		}
		if err != nil {
			return err
		}

		if err := s.bookingRepo.SetActive(txCtx, id, active); err != nil {
			return fmt.Errorf("%w: setActive - update error: %v", ErrInternal, err)
		}

		before, after = current, &updated
		return nil
	})
	if err != nil {
		s.logger.Warn("setActive: booking=%d failed: %v", id, err)
		return err
	}

	action := domain.AuditActionDisable
	if active {
		action = domain.AuditActionRestore
	}
	s.auditSvc.Record(ctx, entityName, id, action, actor, before, after)

	s.logger.Info("setActive: booking=%d active=%t", id, active)
	return nil
}
