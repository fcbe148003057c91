package create_booking

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

// Request модель запроса на создание бронирования
type Request struct {
	Actor      domain.Actor
	AccountID  int64
	PackageID  int64
	VisitDate  time.Time
	VisitTime  types.TimeString
	GroupSize  int
	Inclusions []InclusionSelection
}

// Response модель созданного бронирования
type Response struct {
	ID              int64
	AccountID       int64
	PackageID       int64
	PackageName     string
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

func toResponse(b *domain.Booking, pkg *domain.TourPackage) *Response {
	return &Response{
		ID:              b.ID,
		AccountID:       b.AccountID,
		PackageID:       b.PackageID,
		PackageName:     pkg.Name,
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
