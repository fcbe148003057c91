package models

import (
	"time"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	"github.com/vgtours/VGT-BookingService/pkg/types"
)

// Request модели

// DecideBookingRequest решение персонала по бронированию
// Nil поля не меняются
type DecideBookingRequest struct {
	Actor     domain.Actor
	BookingID int64

	Status        *string
	PaymentStatus *string
	StaffReply    *string
}

// ToDomainDecision конвертирует запрос в domain решение,
// проверяя статусы по словарям состояний
func (r *DecideBookingRequest) ToDomainDecision() (domain.StaffDecision, error) {
	var decision domain.StaffDecision

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return decision, err
		}
		decision.Status = &status
	}

	if r.PaymentStatus != nil {
		payment, err := domain.ParsePaymentStatus(*r.PaymentStatus)
		if err != nil {
			return decision, err
		}
		decision.PaymentStatus = &payment
	}

	decision.StaffReply = r.StaffReply

	return decision, nil
}

// ListBookingsRequest запрос на выборку бронирований с фильтрацией
type ListBookingsRequest struct {
	Actor domain.Actor

	AccountID       *int64
	StartDate       *time.Time
	EndDate         *time.Time
	IncludeInactive bool
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() domain.BookingFilter {
	return domain.BookingFilter{
		AccountID:  r.AccountID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		ActiveOnly: !r.IncludeInactive,
	}
}

// Response модели

// InclusionResponse зафиксированный inclusion бронирования
type InclusionResponse struct {
	InclusionID    int64  `json:"inclusionId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	PriceAtBooking int64  `json:"priceAtBooking"`
}

// BookingResponse бронирование в ответе сервиса
type BookingResponse struct {
	ID              int64               `json:"id"`
	AccountID       int64               `json:"accountId"`
	PackageID       int64               `json:"packageId"`
	VisitDate       string              `json:"visitDate"`
	VisitTime       types.TimeString    `json:"visitTime"`
	DurationMinutes int                 `json:"durationMinutes"`
	GroupSize       int                 `json:"groupSize"`
	Inclusions      []InclusionResponse `json:"inclusions"`
	TotalPrice      int64               `json:"totalPrice"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"paymentStatus"`
	StaffReply      *string             `json:"staffReply,omitempty"`
	Active          bool                `json:"active"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain бронирование в response модель
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	inclusions := make([]InclusionResponse, 0, len(b.Inclusions))
	for _, inc := range b.Inclusions {
		inclusions = append(inclusions, InclusionResponse{
			InclusionID:    inc.InclusionID,
			Name:           inc.Name,
			Quantity:       inc.Quantity,
			PriceAtBooking: inc.PriceAtBooking,
		})
	}

	return &BookingResponse{
		ID:              b.ID,
		AccountID:       b.AccountID,
		PackageID:       b.PackageID,
		VisitDate:       b.VisitDate.Format(domain.DateFormat),
		VisitTime:       b.VisitTime,
		DurationMinutes: b.DurationMinutes,
		GroupSize:       b.GroupSize,
		Inclusions:      inclusions,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		StaffReply:      b.StaffReply,
		Active:          b.Active,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result}
}
