package domain

import "github.com/vgtours/VGT-BookingService/pkg/types"

// Venue operating window. All tours must start and finish inside it.
const (
	VenueOpenTime  types.TimeString = "09:00"
	VenueCloseTime types.TimeString = "16:00"
)

// Booking lead time: a visit date must be strictly more than one
// calendar day after the day the booking is placed or rescheduled.
const MinLeadDays = 2

// Business validation constants
const (
	MinGroupSize        = 1
	MaxStaffReplyLength = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
