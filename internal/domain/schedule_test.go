package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgtours/VGT-BookingService/pkg/types"
)

var scheduleNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func visitDate(daysAhead int) time.Time {
	return scheduleNow.AddDate(0, 0, daysAhead)
}

func activeBooking(start types.TimeString, duration int) Booking {
	return Booking{VisitTime: start, DurationMinutes: duration, Active: true}
}

func TestValidateSchedule_LeadTime(t *testing.T) {
	tests := []struct {
		name      string
		daysAhead int
		wantErr   error
	}{
		{name: "today", daysAhead: 0, wantErr: ErrLeadTimeViolation},
		{name: "tomorrow", daysAhead: 1, wantErr: ErrLeadTimeViolation},
		{name: "day after tomorrow", daysAhead: 2},
		{name: "a week ahead", daysAhead: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(visitDate(tt.daysAhead), "10:00", 60, scheduleNow, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateSchedule_LeadTimeIgnoresTimeOfDay(t *testing.T) {
	// Даже поздним вечером завтра - это все еще today+1
	lateEvening := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	err := ValidateSchedule(tomorrow, "10:00", 60, lateEvening, nil)
	assert.ErrorIs(t, err, ErrLeadTimeViolation)
}

func TestValidateSchedule_OperatingWindow(t *testing.T) {
	tests := []struct {
		name     string
		start    types.TimeString
		duration int
		wantErr  error
	}{
		{name: "opening time", start: "09:00", duration: 60},
		{name: "before opening", start: "08:59", duration: 60, wantErr: ErrOutsideOperatingHours},
		{name: "latest possible start", start: "15:00", duration: 60},
		{name: "past latest start", start: "15:01", duration: 60, wantErr: ErrOutsideOperatingHours},
		{name: "long tour ends exactly at close", start: "09:00", duration: 420},
		{name: "long tour does not fit", start: "09:30", duration: 420, wantErr: ErrOutsideOperatingHours},
		{name: "zero duration", start: "10:00", duration: 0, wantErr: ErrOutsideOperatingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(visitDate(5), tt.start, tt.duration, scheduleNow, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateSchedule_Overlap(t *testing.T) {
	existing := []Booking{activeBooking("10:00", 60)} // [10:00, 11:00)

	tests := []struct {
		name     string
		start    types.TimeString
		duration int
		conflict bool
	}{
		{name: "inside existing interval", start: "10:30", duration: 30, conflict: true},
		{name: "covers existing interval", start: "09:30", duration: 120, conflict: true},
		{name: "same slot", start: "10:00", duration: 60, conflict: true},
		// Граничные случаи считаются пересечением
		{name: "ends exactly at existing start", start: "09:00", duration: 60, conflict: true},
		{name: "starts exactly at existing end", start: "11:00", duration: 60, conflict: true},
		{name: "clearly before", start: "09:00", duration: 59, conflict: false},
		{name: "clearly after", start: "11:01", duration: 60, conflict: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(visitDate(5), tt.start, tt.duration, scheduleNow, existing)
			if tt.conflict {
				assert.ErrorIs(t, err, ErrScheduleConflict)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateSchedule_InactiveBookingsNeverBlock(t *testing.T) {
	inactive := Booking{VisitTime: "10:00", DurationMinutes: 60, Active: false}

	err := ValidateSchedule(visitDate(5), "10:00", 60, scheduleNow, []Booking{inactive})
	assert.NoError(t, err)
}

func TestValidateSchedule_ReportsEarliestConflict(t *testing.T) {
	// Сканируем список в произвольном порядке - конфликт должен быть с самым ранним
	existing := []Booking{
		activeBooking("13:00", 60),
		activeBooking("10:00", 60),
		activeBooking("11:30", 60),
	}

	err := ValidateSchedule(visitDate(5), "09:30", 300, scheduleNow, existing)
	require.Error(t, err)

	var conflict *ScheduleConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, types.TimeString("10:00"), conflict.ConflictStart)
	assert.Equal(t, types.TimeString("11:00"), conflict.ConflictEnd)
}

func TestValidateSchedule_ConflictCarriesInterval(t *testing.T) {
	existing := []Booking{activeBooking("10:00", 60)}

	err := ValidateSchedule(visitDate(5), "10:30", 30, scheduleNow, existing)
	require.Error(t, err)

	var conflict *ScheduleConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, types.TimeString("10:00"), conflict.ConflictStart)
	assert.Equal(t, types.TimeString("11:00"), conflict.ConflictEnd)
}
