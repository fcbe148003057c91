package delete_booking

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
	msgInvalidBookingID = "invalid booking id"
	msgBookingNotFound  = "booking not found"
	msgStaffOnly        = "only staff may delete bookings"
	msgAlreadyInactive  = "booking is already inactive"
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

// Handle DELETE /api/v1/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor := middleware.GetActor(r.Context())

	if err := h.service.SoftDelete(r.Context(), bookingID, actor); err != nil {
		switch {
		case errors.Is(err, domain.ErrStaffOnly):
			h.logger.Warn("DELETE /bookings/{id} - Non-staff actor=%d", actor.ID)
			handlers.RespondError(w, http.StatusForbidden, msgStaffOnly)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, domain.ErrAlreadyInactive):
			h.logger.Warn("DELETE /bookings/{id} - Already inactive: booking=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyInactive)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed: booking=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking disabled: booking=%d, staff=%d", bookingID, actor.ID)
	handlers.RespondNoContent(w)
}
