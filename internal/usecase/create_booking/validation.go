package create_booking

import (
	"fmt"

	"github.com/vgtours/VGT-BookingService/internal/domain"
)

// validateRequest проверяет присутствие и базовую корректность полей запроса
// Ошибки расписания и цены проверяются дальше, внутри транзакции
func validateRequest(req *Request) error {
	if req.AccountID <= 0 {
		return fmt.Errorf("%w: accountId", ErrMissingField)
	}

	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageId", ErrMissingField)
	}

	if req.VisitDate.IsZero() {
		return fmt.Errorf("%w: visitDate", ErrMissingField)
	}

	if req.VisitTime.IsZero() {
		return fmt.Errorf("%w: visitTime", ErrMissingField)
	}

	if err := req.VisitTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid visitTime format: %v", ErrInvalidInput, err)
	}

	if req.GroupSize == 0 {
		return fmt.Errorf("%w: groupSize", ErrMissingField)
	}

	if req.GroupSize < domain.MinGroupSize {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidGroupSize)
	}

	for _, sel := range req.Inclusions {
		if sel.InclusionID <= 0 {
			return fmt.Errorf("%w: inclusions[].inclusionId", ErrMissingField)
		}
		if sel.Quantity < 1 {
			return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidInclusionQuantity)
		}
	}

	return nil
}

// resolveInclusions превращает выбор пользователя в BookingInclusion
// с ценой, зафиксированной из каталога на момент бронирования
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

// selectionIDs возвращает список ID выбранных inclusion-ов
func selectionIDs(selections []InclusionSelection) []int64 {
	ids := make([]int64, len(selections))
	for i, sel := range selections {
		ids[i] = sel.InclusionID
	}
	return ids
}
