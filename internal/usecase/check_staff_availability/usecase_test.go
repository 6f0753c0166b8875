package check_staff_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	packageStorage "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/servicepackage"
)

type fakePackageRepo struct {
	pkg   *domain.ServicePackage
	err   error
	calls int
}

func (f *fakePackageRepo) GetByID(_ context.Context, _, _ int64) (*domain.ServicePackage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pkg, nil
}

type fakeStaffRepo struct {
	eligible      []int64
	eligibleErr   error
	eligibleCalls int
	taskTypeIDs   []int64

	windows      []domain.StaffBusyWindow
	windowsErr   error
	windowsCalls int
	dayStart     time.Time
	dayEnd       time.Time
}

func (f *fakeStaffRepo) ListEligibleUserIDs(_ context.Context, _ int64, taskTypeIDs []int64) ([]int64, error) {
	f.eligibleCalls++
	f.taskTypeIDs = taskTypeIDs
	if f.eligibleErr != nil {
		return nil, f.eligibleErr
	}
	return f.eligible, nil
}

func (f *fakeStaffRepo) ListBusyWindows(_ context.Context, _ int64, _ []int64, dayStart, dayEnd time.Time) ([]domain.StaffBusyWindow, error) {
	f.windowsCalls++
	f.dayStart = dayStart
	f.dayEnd = dayEnd
	if f.windowsErr != nil {
		return nil, f.windowsErr
	}
	return f.windows, nil
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func testPackage(requiredStaff int) *domain.ServicePackage {
	return &domain.ServicePackage{
		ID:                 7,
		TenantID:           42,
		Name:               "Детейлинг с полировкой",
		RequiredStaffCount: requiredStaff,
		Items: []domain.PackageItem{
			{TaskTypeID: 1, Quantity: 1},
			{TaskTypeID: 2, Quantity: 2},
		},
	}
}

type staffEnv struct {
	packages *fakePackageRepo
	staff    *fakeStaffRepo
	uc       *UseCase
}

func newStaffEnv(pkg *domain.ServicePackage) *staffEnv {
	env := &staffEnv{
		packages: &fakePackageRepo{pkg: pkg},
		staff:    &fakeStaffRepo{},
	}
	env.uc = NewUseCase(env.packages, env.staff, testLogger{})
	return env
}

func staffRequest(start string, duration int) *Request {
	return &Request{
		TenantID:        42,
		PackageID:       7,
		EventDate:       "2026-03-10",
		StartTime:       start,
		DurationMinutes: duration,
	}
}

func TestExecute_OverlappingAssignmentBlocksStaff(t *testing.T) {
	env := newStaffEnv(testPackage(1))
	env.staff.eligible = []int64{101}
	env.staff.windows = []domain.StaffBusyWindow{
		{UserID: 101, StartTime: "10:00", DurationMinutes: 120},
	}

	// Окно [11:00, 13:00) пересекает занятость [10:00, 12:00)
	resp, err := env.uc.Execute(context.Background(), staffRequest("11:00", 120))
	require.NoError(t, err)

	assert.False(t, resp.Ok)
	assert.Equal(t, 1, resp.RequiredStaffCount)
	assert.Equal(t, 1, resp.EligibleCount)
	assert.Equal(t, 1, resp.BusyCount)
	assert.Equal(t, 0, resp.AvailableCount)
}

func TestExecute_BackToBackWindowDoesNotBlock(t *testing.T) {
	env := newStaffEnv(testPackage(1))
	env.staff.eligible = []int64{101}
	env.staff.windows = []domain.StaffBusyWindow{
		{UserID: 101, StartTime: "10:00", DurationMinutes: 120},
	}

	// Окно [12:00, 13:00) начинается ровно в конце занятости
	resp, err := env.uc.Execute(context.Background(), staffRequest("12:00", 60))
	require.NoError(t, err)

	assert.True(t, resp.Ok)
	assert.Equal(t, 0, resp.BusyCount)
	assert.Equal(t, 1, resp.AvailableCount)
}

func TestExecute_ZeroRequiredStaffIsTriviallyOk(t *testing.T) {
	env := newStaffEnv(testPackage(0))
	// Данные о занятости не должны влиять на результат
	env.staff.eligible = []int64{101}
	env.staff.windows = []domain.StaffBusyWindow{
		{UserID: 101, StartTime: "00:00", DurationMinutes: 1440},
	}

	resp, err := env.uc.Execute(context.Background(), staffRequest("11:00", 60))
	require.NoError(t, err)

	assert.True(t, resp.Ok)
	assert.Equal(t, 0, resp.RequiredStaffCount)
	assert.Equal(t, 0, env.staff.eligibleCalls)
	assert.Equal(t, 0, env.staff.windowsCalls)
}

func TestExecute_PackageWithoutTaskTypesIsTriviallyOk(t *testing.T) {
	pkg := testPackage(2)
	pkg.Items = nil
	env := newStaffEnv(pkg)

	resp, err := env.uc.Execute(context.Background(), staffRequest("11:00", 60))
	require.NoError(t, err)

	assert.True(t, resp.Ok)
	assert.Equal(t, 2, resp.RequiredStaffCount)
	assert.Equal(t, 0, env.staff.eligibleCalls)
}

func TestExecute_NoEligibleStaff(t *testing.T) {
	env := newStaffEnv(testPackage(1))
	env.staff.eligible = []int64{}

	resp, err := env.uc.Execute(context.Background(), staffRequest("11:00", 60))
	require.NoError(t, err)

	assert.False(t, resp.Ok)
	assert.Equal(t, 0, resp.EligibleCount)
	assert.Equal(t, 0, resp.AvailableCount)
	// Запрос занятости не выполняется: некого проверять
	assert.Equal(t, 0, env.staff.windowsCalls)
}

func TestExecute_BusyStaffCountedOnce(t *testing.T) {
	env := newStaffEnv(testPackage(1))
	env.staff.eligible = []int64{101, 102}
	env.staff.windows = []domain.StaffBusyWindow{
		{UserID: 101, StartTime: "09:00", DurationMinutes: 180},
		{UserID: 101, StartTime: "11:30", DurationMinutes: 60},
	}

	resp, err := env.uc.Execute(context.Background(), staffRequest("11:00", 120))
	require.NoError(t, err)

	assert.True(t, resp.Ok)
	assert.Equal(t, 2, resp.EligibleCount)
	assert.Equal(t, 1, resp.BusyCount)
	assert.Equal(t, 1, resp.AvailableCount)
}

func TestExecute_HeadcountComparedToAvailable(t *testing.T) {
	tests := []struct {
		name     string
		busyByID []int64
		wantOk   bool
	}{
		{name: "two of three free", busyByID: []int64{101}, wantOk: true},
		{name: "one of three free", busyByID: []int64{101, 102}, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newStaffEnv(testPackage(2))
			env.staff.eligible = []int64{101, 102, 103}
			for _, id := range tt.busyByID {
				env.staff.windows = append(env.staff.windows, busyAtEleven(id))
			}

			resp, err := env.uc.Execute(context.Background(), staffRequest("11:00", 60))
			require.NoError(t, err)

			assert.Equal(t, tt.wantOk, resp.Ok)
			assert.Equal(t, len(tt.busyByID), resp.BusyCount)
		})
	}
}

// busyAtEleven строит занятость, пересекающую окно 11:00+60
func busyAtEleven(userID int64) domain.StaffBusyWindow {
	return domain.StaffBusyWindow{UserID: userID, StartTime: "11:00", DurationMinutes: 60}
}

func TestExecute_ZeroDurationAssignmentNeverConflicts(t *testing.T) {
	env := newStaffEnv(testPackage(1))
	env.staff.eligible = []int64{101}
	env.staff.windows = []domain.StaffBusyWindow{
		{UserID: 101, StartTime: "11:00", DurationMinutes: 0},
	}

	resp, err := env.uc.Execute(context.Background(), staffRequest("11:00", 60))
	require.NoError(t, err)

	assert.True(t, resp.Ok)
	assert.Equal(t, 0, resp.BusyCount)
}

func TestExecute_BusyWindowsQueriedForUTCDay(t *testing.T) {
	env := newStaffEnv(testPackage(1))
	env.staff.eligible = []int64{101}

	_, err := env.uc.Execute(context.Background(), staffRequest("11:00", 60))
	require.NoError(t, err)

	wantStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantStart, env.staff.dayStart)
	assert.Equal(t, wantStart.AddDate(0, 0, 1), env.staff.dayEnd)
	assert.Equal(t, []int64{1, 2}, env.staff.taskTypeIDs)
}

func TestExecute_ValidationRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero tenant id", req: &Request{TenantID: 0, PackageID: 7, EventDate: "2026-03-10", StartTime: "11:00", DurationMinutes: 60}},
		{name: "zero package id", req: &Request{TenantID: 42, PackageID: 0, EventDate: "2026-03-10", StartTime: "11:00", DurationMinutes: 60}},
		{name: "empty date", req: &Request{TenantID: 42, PackageID: 7, EventDate: "", StartTime: "11:00", DurationMinutes: 60}},
		{name: "bad date", req: &Request{TenantID: 42, PackageID: 7, EventDate: "10.03.2026", StartTime: "11:00", DurationMinutes: 60}},
		{name: "bad start time", req: &Request{TenantID: 42, PackageID: 7, EventDate: "2026-03-10", StartTime: "25:70", DurationMinutes: 60}},
		{name: "zero duration", req: &Request{TenantID: 42, PackageID: 7, EventDate: "2026-03-10", StartTime: "11:00", DurationMinutes: 0}},
		{name: "negative duration", req: &Request{TenantID: 42, PackageID: 7, EventDate: "2026-03-10", StartTime: "11:00", DurationMinutes: -30}},
		{name: "duration above day limit", req: &Request{TenantID: 42, PackageID: 7, EventDate: "2026-03-10", StartTime: "11:00", DurationMinutes: 1441}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newStaffEnv(testPackage(1))

			_, err := env.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, env.packages.calls)
		})
	}
}

func TestExecute_PackageNotFound(t *testing.T) {
	env := newStaffEnv(nil)
	env.packages.err = packageStorage.ErrPackageNotFound

	_, err := env.uc.Execute(context.Background(), staffRequest("11:00", 60))
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestExecute_StaffRepositoryFailureWrapsInternal(t *testing.T) {
	env := newStaffEnv(testPackage(1))
	env.staff.eligibleErr = errors.New("pq: connection reset")

	_, err := env.uc.Execute(context.Background(), staffRequest("11:00", 60))
	assert.ErrorIs(t, err, ErrInternal)
}
