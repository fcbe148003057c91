package create_booking

import (
	"errors"
	"net/http"

	"github.com/vgtours/VGT-BookingService/internal/api/handlers"
	"github.com/vgtours/VGT-BookingService/internal/api/middleware"
	"github.com/vgtours/VGT-BookingService/internal/domain"
	createBooking "github.com/vgtours/VGT-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid visit date format, expected YYYY-MM-DD"
	msgPackageNotFound    = "tour package not found"
	msgInclusionNotFound  = "package inclusion not found"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.GetActor(r.Context())

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrMissingField),
			errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: account=%d: %v", actor.ID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, domain.ErrInvalidGroupSize),
			errors.Is(err, domain.ErrInvalidInclusionQuantity),
			errors.Is(err, domain.ErrInvalidInclusionPrice),
			errors.Is(err, domain.ErrInvalidBasePrice):
			h.logger.Warn("POST /bookings - Price validation failed: account=%d: %v", actor.ID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, domain.ErrLeadTimeViolation),
			errors.Is(err, domain.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Schedule validation failed: account=%d: %v", actor.ID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, domain.ErrScheduleConflict):
			h.logger.Warn("POST /bookings - Slot conflict: account=%d: %v", actor.ID, err)
			handlers.RespondError(w, http.StatusConflict, err.Error())

		case errors.Is(err, createBooking.ErrPackageNotFound):
			h.logger.Warn("POST /bookings - Package not found: package=%d", req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, createBooking.ErrInclusionNotFound):
			h.logger.Warn("POST /bookings - Inclusion not found: account=%d: %v", actor.ID, err)
			handlers.RespondNotFound(w, msgInclusionNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: account=%d, package=%d, error=%v",
				actor.ID, req.PackageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking=%d, account=%d, package=%d",
		result.ID, actor.ID, req.PackageID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
