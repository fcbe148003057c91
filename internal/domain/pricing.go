package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGroupSize группа должна состоять хотя бы из одного посетителя
	ErrInvalidGroupSize = errors.New("group size must be a positive number")

	// ErrInvalidInclusionQuantity количество должно быть в пределах [1, groupSize]
	ErrInvalidInclusionQuantity = errors.New("inclusion quantity must be between 1 and the booking group size")

	// ErrInvalidInclusionPrice зафиксированная цена не может быть отрицательной
	ErrInvalidInclusionPrice = errors.New("inclusion price must not be negative")

	// ErrInvalidBasePrice базовая цена пакета не может быть отрицательной
	ErrInvalidBasePrice = errors.New("tour package base price must not be negative")
)

// ComputeTotal computes the total price of a booking:
//
//	total = basePrice*groupSize + sum(inclusion.PriceAtBooking * inclusion.Quantity)
//
// Integer arithmetic throughout; prices are stored in the smallest
// currency unit. Any precondition violation aborts the whole
// computation, no partial totals are ever produced.
func ComputeTotal(basePrice int64, groupSize int, inclusions []BookingInclusion) (int64, error) {
	if basePrice < 0 {
		return 0, ErrInvalidBasePrice
	}
	if groupSize < MinGroupSize {
		return 0, ErrInvalidGroupSize
	}

	total := basePrice * int64(groupSize)

	for _, inc := range inclusions {
		if inc.Quantity < 1 || inc.Quantity > groupSize {
			return 0, fmt.Errorf("%w: inclusion %d has quantity %d for group of %d",
				ErrInvalidInclusionQuantity, inc.InclusionID, inc.Quantity, groupSize)
		}
		if inc.PriceAtBooking < 0 {
			return 0, fmt.Errorf("%w: inclusion %d", ErrInvalidInclusionPrice, inc.InclusionID)
		}
		total += inc.PriceAtBooking * int64(inc.Quantity)
	}

	return total, nil
}
