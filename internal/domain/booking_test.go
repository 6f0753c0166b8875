package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SPS-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SPS-AvailabilityService/pkg/types"
)

func TestBooking_StatusPredicates(t *testing.T) {
	tests := []struct {
		status         BookingStatus
		active         bool
		cancelled      bool
		canBeCancelled bool
	}{
		{StatusPending, true, false, true},
		{StatusConfirmed, true, false, true},
		{StatusInProgress, true, false, false},
		{StatusCompleted, true, false, false},
		{StatusCancelledByClient, false, true, false},
		{StatusCancelledByTenant, false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.active, b.IsActive())
			assert.Equal(t, tt.cancelled, b.IsCancelled())
			assert.Equal(t, tt.canBeCancelled, b.CanBeCancelled())
		})
	}
}

func TestBookingFilter_Validate(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	nextDay := day.AddDate(0, 0, 1)

	t.Run("valid single day filter", func(t *testing.T) {
		f := BookingFilter{
			TenantID:  1,
			PackageID: ptr.Ptr(int64(7)),
			DateFrom:  &day,
			DateTo:    &nextDay,
		}
		assert.NoError(t, f.Validate())
	})

	t.Run("tenant id is required", func(t *testing.T) {
		f := BookingFilter{DateFrom: &day, DateTo: &nextDay}
		assert.Error(t, f.Validate())
	})

	t.Run("inverted date window", func(t *testing.T) {
		f := BookingFilter{TenantID: 1, DateFrom: &nextDay, DateTo: &day}
		assert.Error(t, f.Validate())
	})

	t.Run("empty date window", func(t *testing.T) {
		f := BookingFilter{TenantID: 1, DateFrom: &day, DateTo: &day}
		assert.Error(t, f.Validate())
	})

	t.Run("malformed start time filter", func(t *testing.T) {
		f := BookingFilter{TenantID: 1, StartTime: ptr.Ptr(types.TimeString("9am"))}
		assert.Error(t, f.Validate())
	})
}

func TestBookingFilter_SingleDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter BookingFilter
		want   bool
	}{
		{
			name: "exactly one day",
			filter: BookingFilter{
				TenantID: 1,
				DateFrom: &day,
				DateTo:   ptr.Ptr(day.AddDate(0, 0, 1)),
			},
			want: true,
		},
		{
			name: "two days",
			filter: BookingFilter{
				TenantID: 1,
				DateFrom: &day,
				DateTo:   ptr.Ptr(day.AddDate(0, 0, 2)),
			},
			want: false,
		},
		{
			name:   "open ended",
			filter: BookingFilter{TenantID: 1, DateFrom: &day},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.SingleDay())
		})
	}
}
