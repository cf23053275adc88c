package utils

import (
	"math"
	"time"

	"rentflow-backend/internal/domain"
)

// Business hours for online booking time slots.
const (
	BusinessHourStart = 8
	BusinessHourEnd   = 18
)

// TotalDays returns the billable day count of a booking:
// max(1, ceil((end-start)/24h)). A missing end date means a single day.
func TotalDays(start time.Time, end *time.Time) int32 {
	if end == nil {
		return 1
	}
	hours := end.Sub(start).Hours()
	days := int32(math.Ceil(hours / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// SlotDuration returns the slot granularity for a booking type: one hour
// for SERVICE appointments, two hours for RENTAL pickups.
func SlotDuration(bookingType domain.BookingType) time.Duration {
	if bookingType == domain.BookingTypeService {
		return time.Hour
	}
	return 2 * time.Hour
}

// BuildTimeSlots produces the fixed business-hour slots (08:00-18:00) for
// a day. Availability of each slot is a global daily-capacity question
// answered by the caller; every slot carries the same flag.
func BuildTimeSlots(date time.Time, bookingType domain.BookingType, available bool) []domain.TimeSlot {
	step := SlotDuration(bookingType)
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), BusinessHourStart, 0, 0, 0, date.Location())
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), BusinessHourEnd, 0, 0, 0, date.Location())

	var slots []domain.TimeSlot
	for start := dayStart; start.Add(step).Before(dayEnd) || start.Add(step).Equal(dayEnd); start = start.Add(step) {
		slots = append(slots, domain.TimeSlot{
			Start:     start,
			End:       start.Add(step),
			Available: available,
		})
	}
	return slots
}
