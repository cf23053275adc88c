package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentflow-backend/internal/domain"
)

func TestTotalDays(t *testing.T) {
	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  *time.Time
		want int32
	}{
		{"no end date", nil, 1},
		{"same instant", ptr(start), 1},
		{"under one day", ptr(start.Add(6 * time.Hour)), 1},
		{"exactly one day", ptr(start.Add(24 * time.Hour)), 1},
		{"one day and an hour", ptr(start.Add(25 * time.Hour)), 2},
		{"exactly two days", ptr(start.Add(48 * time.Hour)), 2},
		{"end before start", ptr(start.Add(-12 * time.Hour)), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalDays(start, tt.end))
		})
	}
}

func TestSlotDuration(t *testing.T) {
	assert.Equal(t, time.Hour, SlotDuration(domain.BookingTypeService))
	assert.Equal(t, 2*time.Hour, SlotDuration(domain.BookingTypeRental))
}

func TestBuildTimeSlots(t *testing.T) {
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("service slots are hourly", func(t *testing.T) {
		slots := BuildTimeSlots(date, domain.BookingTypeService, true)
		assert.Len(t, slots, 10)
		assert.Equal(t, 8, slots[0].Start.Hour())
		assert.Equal(t, 17, slots[len(slots)-1].Start.Hour())
		assert.Equal(t, 18, slots[len(slots)-1].End.Hour())
		for _, s := range slots {
			assert.True(t, s.Available)
			assert.Equal(t, time.Hour, s.End.Sub(s.Start))
		}
	})

	t.Run("rental slots are two hours", func(t *testing.T) {
		slots := BuildTimeSlots(date, domain.BookingTypeRental, false)
		assert.Len(t, slots, 5)
		assert.Equal(t, 8, slots[0].Start.Hour())
		assert.Equal(t, 16, slots[len(slots)-1].Start.Hour())
		for _, s := range slots {
			assert.False(t, s.Available)
			assert.Equal(t, 2*time.Hour, s.End.Sub(s.Start))
		}
	})
}

func ptr(t time.Time) *time.Time { return &t }
