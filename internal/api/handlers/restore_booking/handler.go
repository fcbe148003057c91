package restore_booking

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
	msgStaffOnly        = "only staff may restore bookings"
	msgAlreadyActive    = "booking is already active"
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

// Handle POST /api/v1/bookings/{id}/restore
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/restore - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor := middleware.GetActor(r.Context())

	if err := h.service.Restore(r.Context(), bookingID, actor); err != nil {
		switch {
		case errors.Is(err, domain.ErrStaffOnly):
			h.logger.Warn("POST /bookings/{id}/restore - Non-staff actor=%d", actor.ID)
			handlers.RespondError(w, http.StatusForbidden, msgStaffOnly)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/restore - Booking not found: booking=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, domain.ErrAlreadyActive):
			h.logger.Warn("POST /bookings/{id}/restore - Already active: booking=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyActive)

		default:
			h.logger.Error("POST /bookings/{id}/restore - Failed: booking=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/restore - Booking restored: booking=%d, staff=%d", bookingID, actor.ID)
	handlers.RespondNoContent(w)
}
