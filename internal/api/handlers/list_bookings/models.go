package list_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/vgtours/VGT-BookingService/internal/domain"
	"github.com/vgtours/VGT-BookingService/internal/service/bookings/models"
)

// ParseQuery собирает запрос на выборку из query параметров
// ?accountId=42&startDate=2025-06-01&endDate=2025-06-30&includeInactive=true
func ParseQuery(values url.Values, actor domain.Actor) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{Actor: actor}

	if raw := values.Get("accountId"); raw != "" {
		accountID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.AccountID = &accountID
	}

	if raw := values.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := values.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if raw := values.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
