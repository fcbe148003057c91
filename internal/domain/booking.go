package domain

import (
	"time"

	"github.com/vgtours/VGT-BookingService/pkg/types"
)

// BookingStatus represents the approval status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAccepted  BookingStatus = "accepted"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// PaymentStatus represents the payment axis of a booking,
// independent from the approval status
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Booking represents a guided-tour reservation at the venue
type Booking struct {
	ID              int64
	AccountID       int64
	PackageID       int64
	VisitDate       time.Time
	VisitTime       types.TimeString
	DurationMinutes int
	GroupSize       int
	Inclusions      []BookingInclusion
	TotalPrice      int64
	Status          BookingStatus
	PaymentStatus   PaymentStatus
	StaffReply      *string
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingInclusion is a priced add-on selected for one booking.
// PriceAtBooking is a frozen copy of the catalog price at the moment
// the selection was made; later catalog changes never affect it.
type BookingInclusion struct {
	InclusionID    int64
	Name           string
	Quantity       int
	PriceAtBooking int64
}

// EndTime returns the time the tour finishes
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.VisitTime.AddMinutes(b.DurationMinutes)
}

// IsDecided returns true once staff accepted or rejected the booking,
// or it reached a terminal state
func (b *Booking) IsDecided() bool {
	return b.Status != StatusPending
}

// CanBeEditedByOwner returns true while the account owner may still
// change date, time, group size or inclusions
func (b *Booking) CanBeEditedByOwner() bool {
	return b.Status == StatusPending
}

// BookingFilter filters booking queries.
// Optional fields are nil when not applied.
type BookingFilter struct {
	AccountID  *int64
	StartDate  *time.Time
	EndDate    *time.Time
	ActiveOnly bool
}
