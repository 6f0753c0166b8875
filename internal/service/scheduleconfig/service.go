package scheduleconfig

import (
	"context"
	"errors"
	"fmt"

	scheduleStorage "github.com/m04kA/SPS-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SPS-AvailabilityService/internal/service/scheduleconfig/models"
)

// Service сервис чтения конфигурации расписания.
// Изменение конфигурации живёт в административном контуре,
// здесь только чтение для витрины доступности.
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый сервис конфигурации расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetByTenant возвращает конфигурацию расписания арендатора
func (s *Service) GetByTenant(ctx context.Context, tenantID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetByTenant: fetching schedule config: tenant_id=%d", tenantID)

	config, err := s.scheduleRepo.GetByTenantID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, scheduleStorage.ErrConfigNotFound) {
			s.logger.Warn("GetByTenant: schedule config not found: tenant_id=%d", tenantID)
			return nil, fmt.Errorf("%w: tenant_id %d", ErrConfigNotFound, tenantID)
		}
		s.logger.Error("GetByTenant: failed to fetch schedule config: tenant_id=%d, error=%v", tenantID, err)
		return nil, fmt.Errorf("%w: GetByTenant - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByTenant: schedule config fetched: tenant_id=%d, config_id=%d", tenantID, config.ID)

	return models.FromDomainConfig(config), nil
}
