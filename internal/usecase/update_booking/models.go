package update_booking

import (
	"time"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	"github.com/vgtours/VGT-BookingService/pkg/types"
)

// InclusionSelection выбор inclusion-а каталога с количеством
type InclusionSelection struct {
	InclusionID int64
	Quantity    int
}

// Request модель запроса владельца на изменение бронирования
// Nil поля не меняются; Inclusions = пустой slice очищает выбор
type Request struct {
	Actor     domain.Actor
	BookingID int64

	VisitDate  *time.Time
	VisitTime  *types.TimeString
	GroupSize  *int
	Inclusions *[]InclusionSelection
}

// hasChanges возвращает true, если запрос меняет хотя бы одно поле
func (r *Request) hasChanges() bool {
	return r.VisitDate != nil || r.VisitTime != nil || r.GroupSize != nil || r.Inclusions != nil
}

// Response модель обновленного бронирования
type Response struct {
	ID              int64
	AccountID       int64
	PackageID       int64
	VisitDate       time.Time
	VisitTime       types.TimeString
	DurationMinutes int
	GroupSize       int
	Inclusions      []domain.BookingInclusion
	TotalPrice      int64
	Status          string
	PaymentStatus   string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		AccountID:       b.AccountID,
		PackageID:       b.PackageID,
		VisitDate:       b.VisitDate,
		VisitTime:       b.VisitTime,
		DurationMinutes: b.DurationMinutes,
		GroupSize:       b.GroupSize,
		Inclusions:      b.Inclusions,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		Active:          b.Active,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
