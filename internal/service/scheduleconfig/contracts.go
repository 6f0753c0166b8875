package scheduleconfig

import (
	"context"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	// GetByTenantID получает конфигурацию арендатора вместе с недельным графиком
	GetByTenantID(ctx context.Context, tenantID int64) (*domain.TenantScheduleConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
