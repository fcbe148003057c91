package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vgtours/VGT-BookingService/internal/api/handlers"
	"github.com/vgtours/VGT-BookingService/internal/api/middleware"
	"github.com/vgtours/VGT-BookingService/internal/domain"
	updateBooking "github.com/vgtours/VGT-BookingService/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidDateOrTime  = "invalid visit date or time format"
	msgBookingNotFound    = "booking not found"
	msgAccessDenied       = "access denied"
	msgPackageNotFound    = "tour package not found"
	msgInclusionNotFound  = "package inclusion not found"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.GetActor(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(actor, bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id} - Access denied: booking=%d, account=%d", bookingID, actor.ID)
			handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)

		case errors.Is(err, updateBooking.ErrNoFieldsProvided),
			errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: booking=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, domain.ErrInvalidGroupSize),
			errors.Is(err, domain.ErrInvalidInclusionQuantity),
			errors.Is(err, domain.ErrInvalidInclusionPrice),
			errors.Is(err, domain.ErrInvalidBasePrice):
			h.logger.Warn("PATCH /bookings/{id} - Price validation failed: booking=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, domain.ErrIllegalStatusTransition):
			h.logger.Warn("PATCH /bookings/{id} - Booking already decided: booking=%d: %v", bookingID, err)
			handlers.RespondError(w, http.StatusConflict, err.Error())

		case errors.Is(err, domain.ErrLeadTimeViolation),
			errors.Is(err, domain.ErrOutsideOperatingHours):
			h.logger.Warn("PATCH /bookings/{id} - Schedule validation failed: booking=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, domain.ErrScheduleConflict):
			h.logger.Warn("PATCH /bookings/{id} - Slot conflict: booking=%d: %v", bookingID, err)
			handlers.RespondError(w, http.StatusConflict, err.Error())

		case errors.Is(err, updateBooking.ErrPackageNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Package not found: booking=%d", bookingID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, updateBooking.ErrInclusionNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Inclusion not found: booking=%d: %v", bookingID, err)
			handlers.RespondNotFound(w, msgInclusionNotFound)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated: booking=%d, account=%d", bookingID, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
