package check_staff_availability

import (
	"context"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
)

// PackageRepository интерфейс репозитория пакетов услуг
type PackageRepository interface {
	// GetByID получает пакет услуг с фильтром по арендатору
	GetByID(ctx context.Context, tenantID, packageID int64) (*domain.ServicePackage, error)
}

// StaffRepository интерфейс репозитория данных о персонале
type StaffRepository interface {
	// ListEligibleUserIDs возвращает ID сотрудников арендатора,
	// допущенных хотя бы к одному из перечисленных типов задач
	ListEligibleUserIDs(ctx context.Context, tenantID int64, taskTypeIDs []int64) ([]int64, error)

	// ListBusyWindows возвращает занятые интервалы сотрудников
	// за UTC-день [dayStart, dayEnd)
	ListBusyWindows(ctx context.Context, tenantID int64, userIDs []int64, dayStart, dayEnd time.Time) ([]domain.StaffBusyWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
