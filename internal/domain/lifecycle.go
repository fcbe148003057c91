package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalStatusTransition запрошенный переход отсутствует в графе статусов
	ErrIllegalStatusTransition = errors.New("the requested booking status change is not allowed")

	// ErrStaffOnly изменение статуса или оплаты доступно только персоналу
	ErrStaffOnly = errors.New("only staff may change booking or payment status")

	// ErrAlreadyInactive бронирование уже деактивировано
	ErrAlreadyInactive = errors.New("booking is already inactive")

	// ErrAlreadyActive бронирование уже активно
	ErrAlreadyActive = errors.New("booking is already active")

	// ErrInvalidStatus неизвестный статус бронирования
	ErrInvalidStatus = errors.New("unknown booking status")

	// ErrInvalidPaymentStatus неизвестный статус оплаты
	ErrInvalidPaymentStatus = errors.New("unknown payment status")
)

// statusTransitions is the booking status graph. REJECTED, CANCELLED and
// COMPLETED are terminal; only the independent active flag may change
// after a booking reaches them.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted:  {StatusCompleted, StatusCancelled},
	StatusRejected:  {},
	StatusCancelled: {},
	StatusCompleted: {},
}

// CanTransition reports whether the status graph permits current -> next
func CanTransition(current, next BookingStatus) bool {
	for _, allowed := range statusTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StaffDecision is a staff/admin update applied to a booking.
// Nil fields are left untouched.
type StaffDecision struct {
	Status        *BookingStatus
	PaymentStatus *PaymentStatus
	StaffReply    *string
}

// IsEmpty returns true when the decision changes nothing
func (d StaffDecision) IsEmpty() bool {
	return d.Status == nil && d.PaymentStatus == nil && d.StaffReply == nil
}

// ApplyStaffDecision validates and applies a staff decision to a booking.
// Status and payment changes require a staff or admin actor; the status
// change must be reachable in the transition graph. Returns the updated
// booking value; the input is never mutated.
func ApplyStaffDecision(b Booking, decision StaffDecision, actorRole Role) (Booking, error) {
	if !actorRole.IsStaff() {
		return b, ErrStaffOnly
	}

	if decision.Status != nil {
		next := *decision.Status
		if _, known := statusTransitions[next]; !known {
			return b, fmt.Errorf("%w: %q", ErrInvalidStatus, next)
		}
		if !CanTransition(b.Status, next) {
			return b, fmt.Errorf("%w: %s -> %s", ErrIllegalStatusTransition, b.Status, next)
		}
		b.Status = next
	}

	if decision.PaymentStatus != nil {
		next := *decision.PaymentStatus
		if next != PaymentUnpaid && next != PaymentPaid {
			return b, fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, next)
		}
		b.PaymentStatus = next
	}

	if decision.StaffReply != nil {
		b.StaffReply = decision.StaffReply
	}

	return b, nil
}

// Deactivate marks a booking logically deleted.
// Independent from the status graph: any booking may be disabled.
func Deactivate(b Booking) (Booking, error) {
	if !b.Active {
		return b, ErrAlreadyInactive
	}
	b.Active = false
	return b, nil
}

// Activate restores a logically deleted booking
func Activate(b Booking) (Booking, error) {
	if b.Active {
		return b, ErrAlreadyActive
	}
	b.Active = true
	return b, nil
}

// ParseBookingStatus converts a wire string into a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if _, ok := statusTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// ParsePaymentStatus converts a wire string into a PaymentStatus
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if status != PaymentUnpaid && status != PaymentPaid {
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, s)
	}
	return status, nil
}
