package domain

import "time"

// TourPackage is a bookable tour offering.
// Read-mostly catalog data: the booking engine references it for
// base price and duration but never mutates it.
type TourPackage struct {
	ID              int64
	Name            string
	BasePrice       int64 // per person
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PackageInclusion is a catalog add-on that can be attached to a booking
type PackageInclusion struct {
	ID        int64
	Name      string
	Price     int64 // per unit
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
