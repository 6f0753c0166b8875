package get_schedule_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SPS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SPS-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SPS-AvailabilityService/internal/service/scheduleconfig"
)

const (
	msgMissingTenantID = "отсутствует ID арендатора"
	msgConfigNotFound  = "конфигурация расписания не найдена"
)

type Handler struct {
	service ScheduleConfigService
	logger  Logger
}

func NewHandler(service ScheduleConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware TenantAuth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /schedule-config - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	// Получаем конфигурацию расписания
	result, err := h.service.GetByTenant(r.Context(), tenantID)
	if err != nil {
		switch {
		case errors.Is(err, scheduleconfig.ErrConfigNotFound):
			h.logger.Warn("GET /schedule-config - Config not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		default:
			h.logger.Error("GET /schedule-config - Failed to get config: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule-config - Config retrieved successfully: tenant_id=%d, config_id=%d",
		tenantID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
