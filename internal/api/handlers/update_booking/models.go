package update_booking

import (
	"time"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	updateBooking "github.com/vgtours/VGT-BookingService/internal/usecase/update_booking"
	"github.com/vgtours/VGT-BookingService/pkg/ptr"
	"github.com/vgtours/VGT-BookingService/pkg/types"
)

// UpdateBookingRequest HTTP request model
// Отсутствующие поля не меняются
type UpdateBookingRequest struct {
	VisitDate  *string             `json:"visitDate,omitempty"` // "2025-06-10"
	VisitTime  *string             `json:"visitTime,omitempty"` // "10:00"
	GroupSize  *int                `json:"groupSize,omitempty"`
	Inclusions *[]InclusionRequest `json:"inclusions,omitempty"`
}

// InclusionRequest выбранный inclusion каталога
type InclusionRequest struct {
	InclusionID int64 `json:"inclusionId"`
	Quantity    int   `json:"quantity"`
}

// InclusionResponse зафиксированный inclusion бронирования
type InclusionResponse struct {
	InclusionID    int64  `json:"inclusionId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	PriceAtBooking int64  `json:"priceAtBooking"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64               `json:"id"`
	AccountID       int64               `json:"accountId"`
	PackageID       int64               `json:"packageId"`
	VisitDate       string              `json:"visitDate"`
	VisitTime       string              `json:"visitTime"`
	DurationMinutes int                 `json:"durationMinutes"`
	GroupSize       int                 `json:"groupSize"`
	Inclusions      []InclusionResponse `json:"inclusions"`
	TotalPrice      int64               `json:"totalPrice"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"paymentStatus"`
	Active          bool                `json:"active"`
	CreatedAt       string              `json:"createdAt"`
	UpdatedAt       string              `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		GroupSize: r.GroupSize,
	}

	if r.VisitDate != nil {
		visitDate, err := time.Parse(domain.DateFormat, *r.VisitDate)
		if err != nil {
			return nil, err
		}
		req.VisitDate = &visitDate
	}

	if r.VisitTime != nil {
		visitTime, err := types.NewTimeStringFromString(*r.VisitTime)
		if err != nil {
			return nil, err
		}
		req.VisitTime = &visitTime
	}

	if r.Inclusions != nil {
		inclusions := make([]updateBooking.InclusionSelection, 0, len(*r.Inclusions))
		for _, inc := range *r.Inclusions {
			inclusions = append(inclusions, updateBooking.InclusionSelection{
				InclusionID: inc.InclusionID,
				Quantity:    inc.Quantity,
			})
		}
		req.Inclusions = ptr.Ptr(inclusions)
	}

	return req, nil
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	inclusions := make([]InclusionResponse, 0, len(resp.Inclusions))
	for _, inc := range resp.Inclusions {
		inclusions = append(inclusions, InclusionResponse{
			InclusionID:    inc.InclusionID,
			Name:           inc.Name,
			Quantity:       inc.Quantity,
			PriceAtBooking: inc.PriceAtBooking,
		})
	}

	return &BookingResponse{
		ID:              resp.ID,
		AccountID:       resp.AccountID,
		PackageID:       resp.PackageID,
		VisitDate:       resp.VisitDate.Format(domain.DateFormat),
		VisitTime:       resp.VisitTime.String(),
		DurationMinutes: resp.DurationMinutes,
		GroupSize:       resp.GroupSize,
		Inclusions:      inclusions,
		TotalPrice:      resp.TotalPrice,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		Active:          resp.Active,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
