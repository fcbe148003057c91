package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/vgtours/VGT-BookingService/pkg/types"
)

var (
	// ErrLeadTimeViolation дата визита слишком близко к текущему дню
	ErrLeadTimeViolation = errors.New("booking visit date must be at least 2 days from today")

	// ErrOutsideOperatingHours тур не помещается в рабочие часы площадки
	ErrOutsideOperatingHours = errors.New("Booking visit time must be between 9:00 and end at by 16:00.")

	// ErrScheduleConflict запрошенный слот пересекается с существующим бронированием
	ErrScheduleConflict = errors.New("the requested time slot overlaps another booking")
)

// ScheduleConflictError reports the interval of the earliest existing
// booking that conflicts with the requested slot.
// errors.Is(err, ErrScheduleConflict) matches it.
type ScheduleConflictError struct {
	ConflictStart types.TimeString
	ConflictEnd   types.TimeString
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("the requested time slot overlaps another booking from %s to %s",
		e.ConflictStart, e.ConflictEnd)
}

// Is makes the error match the ErrScheduleConflict sentinel
func (e *ScheduleConflictError) Is(target error) bool {
	return target == ErrScheduleConflict
}

// ValidateSchedule decides whether a tour may occupy the requested slot.
// Pure decision function: the caller supplies the current time and the
// active bookings already scheduled on the visit date.
//
// Checks, in order:
//  1. lead time: the visit date must be strictly more than one calendar
//     day after now;
//  2. operating window: the tour must start at or after VenueOpenTime
//     and finish by VenueCloseTime;
//  3. overlap: the candidate interval [start, start+duration) is checked
//     pairwise against every active booking on the date. Boundaries are
//     inclusive: a tour ending exactly when another starts counts as a
//     conflict. The earliest-starting conflicting booking is reported.
func ValidateSchedule(
	visitDate time.Time,
	visitTime types.TimeString,
	durationMinutes int,
	now time.Time,
	existing []Booking,
) error {
	if err := ValidateLeadTime(visitDate, now); err != nil {
		return err
	}
	return ValidateSlot(visitTime, durationMinutes, existing)
}

// ValidateLeadTime проверяет, что до даты визита больше одного календарного дня
func ValidateLeadTime(visitDate time.Time, now time.Time) error {
	visitDay := truncateToDay(visitDate)
	earliestAllowed := truncateToDay(now).AddDate(0, 0, MinLeadDays)

	if visitDay.Before(earliestAllowed) {
		return ErrLeadTimeViolation
	}
	return nil
}

// ValidateSlot checks the operating window and the overlap invariant
// without the lead-time rule. Used on updates that keep the visit date
// but move the time: lead time applies only to date-changing mutations.
func ValidateSlot(visitTime types.TimeString, durationMinutes int, existing []Booking) error {
	if err := validateOperatingWindow(visitTime, durationMinutes); err != nil {
		return err
	}

	candidateEnd, err := visitTime.AddMinutes(durationMinutes)
	if err != nil {
		return ErrOutsideOperatingHours
	}

	var conflict *ScheduleConflictError

	for _, b := range existing {
		if !b.Active {
			continue
		}

		existingEnd, err := b.VisitTime.AddMinutes(b.DurationMinutes)
		if err != nil {
			continue
		}

		// Inclusive boundary check: touching intervals conflict too
		if !candidateEnd.IsBefore(b.VisitTime) && !visitTime.IsAfter(existingEnd) {
			if conflict == nil || b.VisitTime.IsBefore(conflict.ConflictStart) {
				conflict = &ScheduleConflictError{
					ConflictStart: b.VisitTime,
					ConflictEnd:   existingEnd,
				}
			}
		}
	}

	if conflict != nil {
		return conflict
	}

	return nil
}

// validateOperatingWindow проверяет, что тур помещается в рабочие часы
func validateOperatingWindow(visitTime types.TimeString, durationMinutes int) error {
	closeMinutes, err := VenueCloseTime.Minutes()
	if err != nil {
		return err
	}

	if durationMinutes <= 0 || durationMinutes > closeMinutes {
		return ErrOutsideOperatingHours
	}

	latestStart, err := types.NewTimeStringFromMinutes(closeMinutes - durationMinutes)
	if err != nil {
		return ErrOutsideOperatingHours
	}

	if visitTime.IsBefore(VenueOpenTime) || visitTime.IsAfter(latestStart) {
		return ErrOutsideOperatingHours
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
