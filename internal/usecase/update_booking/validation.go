package update_booking

import (
	"fmt"

	"github.com/vgtours/VGT-BookingService/internal/domain"
)

// validateRequest проверяет корректность заполненных полей запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	if !req.hasChanges() {
		return ErrNoFieldsProvided
	}

	if req.VisitDate != nil && req.VisitDate.IsZero() {
		return fmt.Errorf("%w: visitDate must not be empty", ErrInvalidInput)
	}

	if req.VisitTime != nil {
		if err := req.VisitTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid visitTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.GroupSize != nil && *req.GroupSize < domain.MinGroupSize {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidGroupSize)
	}

	if req.Inclusions != nil {
		for _, sel := range *req.Inclusions {
			if sel.InclusionID <= 0 {
				return fmt.Errorf("%w: inclusions[].inclusionId must be positive", ErrInvalidInput)
			}
			if sel.Quantity < 1 {
				return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidInclusionQuantity)
			}
		}
	}

	return nil
}

// excludeBooking убирает само бронирование из списка для проверки пересечений
func excludeBooking(bookings []domain.Booking, id int64) []domain.Booking {
	result := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			result = append(result, b)
		}
	}
	return result
}

// resolveInclusions превращает новый выбор владельца в BookingInclusion
// с ценой, зафиксированной из каталога на момент изменения
func resolveInclusions(selections []InclusionSelection, catalogInclusions []*domain.PackageInclusion) []domain.BookingInclusion {
	byID := make(map[int64]*domain.PackageInclusion, len(catalogInclusions))
	for _, inc := range catalogInclusions {
		byID[inc.ID] = inc
	}

	result := make([]domain.BookingInclusion, 0, len(selections))
	for _, sel := range selections {
		catalogEntry := byID[sel.InclusionID]
		result = append(result, domain.BookingInclusion{
			InclusionID:    catalogEntry.ID,
			Name:           catalogEntry.Name,
			Quantity:       sel.Quantity,
			PriceAtBooking: catalogEntry.Price,
		})
	}
	return result
}

func selectionIDs(selections []InclusionSelection) []int64 {
	ids := make([]int64, len(selections))
	for i, sel := range selections {
		ids[i] = sel.InclusionID
	}
	return ids
}
