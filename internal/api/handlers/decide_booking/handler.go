package decide_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vgtours/VGT-BookingService/internal/api/handlers"
	"github.com/vgtours/VGT-BookingService/internal/api/middleware"
	"github.com/vgtours/VGT-BookingService/internal/domain"
	"github.com/vgtours/VGT-BookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgBookingNotFound    = "booking not found"
	msgStaffOnly          = "only staff may decide bookings"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{id}/decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/decision - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req DecideBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/decision - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.GetActor(r.Context())

	result, err := h.service.Decide(r.Context(), req.ToServiceRequest(actor, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrStaffOnly):
			h.logger.Warn("PATCH /bookings/{id}/decision - Non-staff actor=%d", actor.ID)
			handlers.RespondError(w, http.StatusForbidden, msgStaffOnly)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/decision - Booking not found: booking=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, domain.ErrIllegalStatusTransition):
			h.logger.Warn("PATCH /bookings/{id}/decision - Illegal transition: booking=%d: %v", bookingID, err)
			handlers.RespondError(w, http.StatusConflict, err.Error())

		case errors.Is(err, domain.ErrInvalidStatus),
			errors.Is(err, domain.ErrInvalidPaymentStatus),
			errors.Is(err, bookings.ErrEmptyDecision),
			errors.Is(err, bookings.ErrStaffReplyTooLong):
			h.logger.Warn("PATCH /bookings/{id}/decision - Invalid decision: booking=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /bookings/{id}/decision - Failed: booking=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/decision - Decision applied: booking=%d, staff=%d", bookingID, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
