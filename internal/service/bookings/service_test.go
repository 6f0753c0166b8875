package bookings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	bookingStorage "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/SPS-AvailabilityService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	getErr  error

	listed     []*domain.Booking
	listErr    error
	lastFilter *domain.BookingFilter

	cancelErr    error
	cancelCalls  int
	cancelStatus domain.BookingStatus
	cancelReason *string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	f.lastFilter = &filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listed, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _, _ int64, status domain.BookingStatus, reason *string) error {
	f.cancelCalls++
	f.cancelStatus = status
	f.cancelReason = reason
	return f.cancelErr
}

type fakeCache struct {
	deleteErr   error
	deleteCalls int
	tenantID    int64
	packageID   int64
	date        time.Time
}

func (f *fakeCache) Delete(_ context.Context, tenantID, packageID int64, date time.Time) error {
	f.deleteCalls++
	f.tenantID = tenantID
	f.packageID = packageID
	f.date = date
	return f.deleteErr
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              1001,
		TenantID:        42,
		PackageID:       7,
		UserID:          100,
		EventDate:       testDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          status,
		PackageName:     "Полировка кузова",
		CreatedAt:       testDate,
		UpdatedAt:       testDate,
	}
}

func newService(repo *fakeBookingRepo, cache *fakeCache) *Service {
	return NewService(repo, cache, testLogger{})
}

func TestGetByID_ReturnsBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	svc := newService(repo, &fakeCache{})

	resp, err := svc.GetByID(context.Background(), 42, 1001)
	require.NoError(t, err)

	assert.Equal(t, int64(1001), resp.ID)
	assert.Equal(t, "2026-03-10", resp.EventDate)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Nil(t, resp.CancelledAt)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingStorage.ErrBookingNotFound}
	svc := newService(repo, &fakeCache{})

	_, err := svc.GetByID(context.Background(), 42, 1001)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListByTenant_BuildsHalfOpenFilter(t *testing.T) {
	repo := &fakeBookingRepo{listed: []*domain.Booking{testBooking(domain.StatusPending)}}
	svc := newService(repo, &fakeCache{})

	from := testDate
	to := testDate // один день: границы совпадают
	pkgID := int64(7)

	resp, err := svc.ListByTenant(context.Background(), &models.ListBookingsRequest{
		TenantID:        42,
		PackageID:       &pkgID,
		DateFrom:        &from,
		DateTo:          &to,
		Statuses:        []string{"pending"},
		IncludeInactive: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	filter := repo.lastFilter
	require.NotNil(t, filter)
	assert.Equal(t, int64(42), filter.TenantID)
	require.NotNil(t, filter.DateFrom)
	assert.Equal(t, testDate, *filter.DateFrom)
	// Включительная верхняя граница превращается в полуоткрытую
	require.NotNil(t, filter.DateTo)
	assert.Equal(t, testDate.AddDate(0, 0, 1), *filter.DateTo)
	assert.Equal(t, []domain.BookingStatus{domain.StatusPending}, filter.Statuses)
	assert.True(t, filter.IncludeInactive)
}

func TestListByTenant_InvalidStatusRejected(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newService(repo, &fakeCache{})

	_, err := svc.ListByTenant(context.Background(), &models.ListBookingsRequest{
		TenantID: 42,
		Statuses: []string{"unknown_status"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.lastFilter)
}

func TestListByTenant_RepoFilterRejectionMapsToInvalidInput(t *testing.T) {
	repo := &fakeBookingRepo{listErr: bookingStorage.ErrInvalidFilter}
	svc := newService(repo, &fakeCache{})

	_, err := svc.ListByTenant(context.Background(), &models.ListBookingsRequest{TenantID: 42})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_ByClientAndByTenant(t *testing.T) {
	tests := []struct {
		name       string
		byTenant   bool
		wantStatus domain.BookingStatus
	}{
		{name: "client cancellation", byTenant: false, wantStatus: domain.StatusCancelledByClient},
		{name: "tenant cancellation", byTenant: true, wantStatus: domain.StatusCancelledByTenant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
			cache := &fakeCache{}
			svc := newService(repo, cache)

			reason := "клиент передумал"
			err := svc.Cancel(context.Background(), &models.CancelBookingRequest{
				TenantID:           42,
				BookingID:          1001,
				CancelledByTenant:  tt.byTenant,
				CancellationReason: &reason,
			})
			require.NoError(t, err)

			assert.Equal(t, 1, repo.cancelCalls)
			assert.Equal(t, tt.wantStatus, repo.cancelStatus)
			require.NotNil(t, repo.cancelReason)
			assert.Equal(t, reason, *repo.cancelReason)

			// Кеш дня бронирования инвалидирован
			assert.Equal(t, 1, cache.deleteCalls)
			assert.Equal(t, int64(42), cache.tenantID)
			assert.Equal(t, int64(7), cache.packageID)
			assert.Equal(t, testDate, cache.date)
		})
	}
}

func TestCancel_TerminalStatusesRejected(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
	}{
		{name: "already cancelled", status: domain.StatusCancelledByClient},
		{name: "in progress", status: domain.StatusInProgress},
		{name: "completed", status: domain.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{booking: testBooking(tt.status)}
			cache := &fakeCache{}
			svc := newService(repo, cache)

			err := svc.Cancel(context.Background(), &models.CancelBookingRequest{
				TenantID:  42,
				BookingID: 1001,
			})
			assert.ErrorIs(t, err, ErrCannotCancel)
			assert.Equal(t, 0, repo.cancelCalls)
			assert.Equal(t, 0, cache.deleteCalls)
		})
	}
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	svc := newService(repo, &fakeCache{})

	reason := strings.Repeat("x", domain.MaxCancellationReasonLength+1)
	err := svc.Cancel(context.Background(), &models.CancelBookingRequest{
		TenantID:           42,
		BookingID:          1001,
		CancellationReason: &reason,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, repo.cancelCalls)
}

func TestCancel_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingStorage.ErrBookingNotFound}
	svc := newService(repo, &fakeCache{})

	err := svc.Cancel(context.Background(), &models.CancelBookingRequest{TenantID: 42, BookingID: 1001})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_CacheFailureDoesNotFailCancellation(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	cache := &fakeCache{deleteErr: errors.New("redis: connection refused")}
	svc := newService(repo, cache)

	err := svc.Cancel(context.Background(), &models.CancelBookingRequest{TenantID: 42, BookingID: 1001})
	assert.NoError(t, err)
}
