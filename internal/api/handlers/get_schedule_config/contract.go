package get_schedule_config

import (
	"context"

	"github.com/m04kA/SPS-AvailabilityService/internal/service/scheduleconfig/models"
)

type ScheduleConfigService interface {
	GetByTenant(ctx context.Context, tenantID int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
