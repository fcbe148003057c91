package decide_booking

import (
	"github.com/vgtours/VGT-BookingService/internal/domain"
	"github.com/vgtours/VGT-BookingService/internal/service/bookings/models"
)

// DecideBookingRequest HTTP request model
// Nil поля не меняются
type DecideBookingRequest struct {
	Status        *string `json:"status,omitempty"`        // "accepted", "rejected", ...
	PaymentStatus *string `json:"paymentStatus,omitempty"` // "unpaid", "paid"
	StaffReply    *string `json:"staffReply,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *DecideBookingRequest) ToServiceRequest(actor domain.Actor, bookingID int64) *models.DecideBookingRequest {
	return &models.DecideBookingRequest{
		Actor:         actor,
		BookingID:     bookingID,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		StaffReply:    r.StaffReply,
	}
}
