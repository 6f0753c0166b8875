package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	scheduleStorage "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/schedule"
	packageStorage "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/servicepackage"
	"github.com/m04kA/SPS-AvailabilityService/pkg/types"
)

type fakeScheduleRepo struct {
	config *domain.TenantScheduleConfig
	err    error
	calls  int
}

func (f *fakeScheduleRepo) GetByTenantID(_ context.Context, _ int64) (*domain.TenantScheduleConfig, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.config, nil
}

type fakePackageRepo struct {
	err error
}

func (f *fakePackageRepo) GetByID(_ context.Context, tenantID, packageID int64) (*domain.ServicePackage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ServicePackage{ID: packageID, TenantID: tenantID, Name: "Полировка кузова"}, nil
}

type fakeBookingRepo struct {
	existing   []*domain.Booking
	listErr    error
	lastFilter *domain.BookingFilter

	created     *domain.Booking
	createErr   error
	createCalls int
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	f.lastFilter = &filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.existing, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	booking.ID = 1001
	booking.CreatedAt = testNow
	booking.UpdatedAt = testNow
	f.created = booking
	return booking, nil
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

type fakeLocker struct {
	token      string
	acquired   bool
	acquireErr error
	acquireKey string
	acquireTTL time.Duration

	releaseKey   string
	releaseToken string
	releaseCalls int
	releaseErr   error
}

func (f *fakeLocker) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	f.acquireKey = key
	f.acquireTTL = ttl
	if f.acquireErr != nil {
		return "", false, f.acquireErr
	}
	return f.token, f.acquired, nil
}

func (f *fakeLocker) Release(_ context.Context, key, token string) error {
	f.releaseCalls++
	f.releaseKey = key
	f.releaseToken = token
	return f.releaseErr
}

type fakeTxManager struct {
	calls int
	err   error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func testSchedule() domain.WeeklySchedule {
	schedule := make(domain.WeeklySchedule, 0, domain.DaysPerWeek)
	for day := time.Sunday; day <= time.Saturday; day++ {
		schedule = append(schedule, domain.WorkingHoursEntry{
			DayOfWeek: day,
			IsOpen:    true,
			StartTime: "09:00",
			EndTime:   "17:00",
		})
	}
	return schedule
}

func testConfig() *domain.TenantScheduleConfig {
	return &domain.TenantScheduleConfig{
		ID:                           1,
		TenantID:                     42,
		TimeSlotDurationMinutes:      60,
		DefaultBookingDurationHours:  1,
		MaxConcurrentBookingsPerSlot: 1,
		MinimumNoticePeriodHours:     0,
		MaxAdvanceBookingDays:        365,
		WorkingHours:                 testSchedule(),
	}
}

// 2026-03-10 - вторник
var (
	testNow  = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
)

type bookingEnv struct {
	schedule *fakeScheduleRepo
	packages *fakePackageRepo
	bookings *fakeBookingRepo
	cache    *fakeCache
	locker   *fakeLocker
	tx       *fakeTxManager
	uc       *UseCase
}

func newBookingEnv(config *domain.TenantScheduleConfig, locker *fakeLocker) *bookingEnv {
	env := &bookingEnv{
		schedule: &fakeScheduleRepo{config: config},
		packages: &fakePackageRepo{},
		bookings: &fakeBookingRepo{},
		cache:    &fakeCache{},
		locker:   locker,
		tx:       &fakeTxManager{},
	}

	var dayLocker DayLocker
	if locker != nil {
		dayLocker = locker
	}

	env.uc = NewUseCase(env.schedule, env.packages, env.bookings, env.cache,
		dayLocker, 10*time.Second, env.tx, testLogger{})
	env.uc.timeProvider = &fakeTimeProvider{now: testNow}
	return env
}

func bookingRequest(start string) *Request {
	return &Request{
		TenantID:  42,
		PackageID: 7,
		UserID:    100,
		Date:      "2026-03-10",
		StartTime: start,
	}
}

func TestExecute_CreatesBookingInTransaction(t *testing.T) {
	env := newBookingEnv(testConfig(), nil)

	resp, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(1001), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Полировка кузова", resp.PackageName)
	assert.Equal(t, testDate, resp.EventDate)

	assert.Equal(t, 1, env.tx.calls)

	// Проверка занятости запрашивает ровно слот за UTC-день
	filter := env.bookings.lastFilter
	require.NotNil(t, filter)
	require.NotNil(t, filter.StartTime)
	assert.Equal(t, types.TimeString("10:00"), *filter.StartTime)
	require.NotNil(t, filter.DateFrom)
	assert.Equal(t, testDate, *filter.DateFrom)
	require.NotNil(t, filter.DateTo)
	assert.Equal(t, testDate.AddDate(0, 0, 1), *filter.DateTo)

	// Кеш дня инвалидирован после коммита
	assert.Equal(t, 1, env.cache.deleteCalls)
	assert.Equal(t, int64(42), env.cache.tenantID)
	assert.Equal(t, int64(7), env.cache.packageID)
	assert.Equal(t, testDate, env.cache.date)
}

func TestExecute_SlotCapacityReached(t *testing.T) {
	env := newBookingEnv(testConfig(), nil)
	env.bookings.existing = []*domain.Booking{
		{ID: 500, StartTime: "10:00", Status: domain.StatusConfirmed},
	}

	_, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.Equal(t, 0, env.bookings.createCalls)
	assert.Equal(t, 0, env.cache.deleteCalls)
}

func TestExecute_CancelledBookingDoesNotBlockSlot(t *testing.T) {
	env := newBookingEnv(testConfig(), nil)
	env.bookings.existing = []*domain.Booking{
		{ID: 500, StartTime: "10:00", Status: domain.StatusCancelledByClient},
	}

	resp, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1001), resp.ID)
}

func TestExecute_TenantClosedOnDate(t *testing.T) {
	config := testConfig()
	for i := range config.WorkingHours {
		if config.WorkingHours[i].DayOfWeek == time.Tuesday {
			config.WorkingHours[i].IsOpen = false
		}
	}
	env := newBookingEnv(config, nil)

	_, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
	assert.ErrorIs(t, err, ErrTenantClosed)
}

func TestExecute_StartTimeMustBeOnGrid(t *testing.T) {
	tests := []struct {
		name  string
		start string
	}{
		{name: "misaligned to grid step", start: "10:30"},
		{name: "before opening", start: "08:00"},
		{name: "after closing", start: "17:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newBookingEnv(testConfig(), nil)

			_, err := env.uc.Execute(context.Background(), bookingRequest(tt.start))
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
			assert.Equal(t, 0, env.bookings.createCalls)
		})
	}
}

func TestExecute_BookingMustFitBeforeClose(t *testing.T) {
	config := testConfig()
	config.DefaultBookingDurationHours = 2
	env := newBookingEnv(config, nil)

	// 16:00 + 2 часа выходит за закрытие в 17:00
	_, err := env.uc.Execute(context.Background(), bookingRequest("16:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PastDateRejected(t *testing.T) {
	env := newBookingEnv(testConfig(), nil)

	req := bookingRequest("10:00")
	req.Date = "2026-03-08"
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateTooFarInAdvance(t *testing.T) {
	config := testConfig()
	config.MaxAdvanceBookingDays = 30
	env := newBookingEnv(config, nil)

	// 2026-04-09 на 31 день позже 2026-03-09
	req := bookingRequest("10:00")
	req.Date = "2026-04-09"
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooFarInAdvance)
}

func TestExecute_NoticePeriodEnforced(t *testing.T) {
	config := testConfig()
	config.MinimumNoticePeriodHours = 24

	t.Run("slot before notice boundary rejected", func(t *testing.T) {
		env := newBookingEnv(config, nil)

		// now+24ч = 2026-03-10T12:00Z, слот 10:00 раньше границы
		_, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("slot exactly on notice boundary allowed", func(t *testing.T) {
		env := newBookingEnv(config, nil)

		resp, err := env.uc.Execute(context.Background(), bookingRequest("12:00"))
		require.NoError(t, err)
		assert.Equal(t, int64(1001), resp.ID)
	})
}

func TestExecute_LockHeldByAnotherCommit(t *testing.T) {
	locker := &fakeLocker{acquired: false}
	env := newBookingEnv(testConfig(), locker)

	_, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
	assert.ErrorIs(t, err, ErrBookingInProgress)

	assert.Equal(t, "lock:booking:42:7:2026-03-10", locker.acquireKey)
	assert.Equal(t, 10*time.Second, locker.acquireTTL)
	assert.Equal(t, 0, env.tx.calls)
	assert.Equal(t, 0, locker.releaseCalls)
}

func TestExecute_LockReleasedOnEveryExit(t *testing.T) {
	t.Run("after successful commit", func(t *testing.T) {
		locker := &fakeLocker{acquired: true, token: "token-1"}
		env := newBookingEnv(testConfig(), locker)

		_, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
		require.NoError(t, err)

		assert.Equal(t, 1, locker.releaseCalls)
		assert.Equal(t, locker.acquireKey, locker.releaseKey)
		assert.Equal(t, "token-1", locker.releaseToken)
	})

	t.Run("after transaction error", func(t *testing.T) {
		locker := &fakeLocker{acquired: true, token: "token-2"}
		env := newBookingEnv(testConfig(), locker)
		env.bookings.existing = []*domain.Booking{
			{ID: 500, StartTime: "10:00", Status: domain.StatusConfirmed},
		}

		_, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Equal(t, 1, locker.releaseCalls)
	})
}

func TestExecute_LockInfraErrorProceedsWithoutLock(t *testing.T) {
	locker := &fakeLocker{acquireErr: errors.New("redis: connection refused")}
	env := newBookingEnv(testConfig(), locker)

	resp, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(1001), resp.ID)
	assert.Equal(t, 0, locker.releaseCalls)
}

func TestExecute_ValidationRejectsBadInput(t *testing.T) {
	longNotes := strings.Repeat("а", domain.MaxNotesLength+1)

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "zero tenant id", mutate: func(r *Request) { r.TenantID = 0 }},
		{name: "zero package id", mutate: func(r *Request) { r.PackageID = 0 }},
		{name: "zero user id", mutate: func(r *Request) { r.UserID = 0 }},
		{name: "empty date", mutate: func(r *Request) { r.Date = "" }},
		{name: "bad date format", mutate: func(r *Request) { r.Date = "10.03.2026" }},
		{name: "bad start time", mutate: func(r *Request) { r.StartTime = "25:70" }},
		{name: "notes too long", mutate: func(r *Request) { r.Notes = &longNotes }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newBookingEnv(testConfig(), nil)

			req := bookingRequest("10:00")
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, env.tx.calls)
		})
	}
}

func TestExecute_TenantNotFound(t *testing.T) {
	env := newBookingEnv(nil, nil)
	env.schedule.err = scheduleStorage.ErrConfigNotFound

	_, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestExecute_PackageNotFound(t *testing.T) {
	env := newBookingEnv(testConfig(), nil)
	env.packages.err = packageStorage.ErrPackageNotFound

	_, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestExecute_CacheInvalidationFailureDoesNotFail(t *testing.T) {
	env := newBookingEnv(testConfig(), nil)
	env.cache.deleteErr = errors.New("redis: connection refused")

	resp, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1001), resp.ID)
}

func TestExecute_CommitFailureSurfaced(t *testing.T) {
	env := newBookingEnv(testConfig(), nil)
	commitErr := errors.New("pq: could not serialize access")
	env.tx.err = commitErr

	_, err := env.uc.Execute(context.Background(), bookingRequest("10:00"))
	assert.ErrorIs(t, err, commitErr)
	// Кеш не трогаем, если коммит не прошёл
	assert.Equal(t, 0, env.cache.deleteCalls)
}
