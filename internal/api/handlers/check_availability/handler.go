package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SPS-AvailabilityService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SPS-AvailabilityService/internal/usecase/check_availability"
)

const (
	msgInvalidTenantID  = "некорректный ID арендатора"
	msgInvalidPackageID = "некорректный ID пакета услуг"
	msgMissingDate      = "дата обязательна"
	msgInvalidParams    = "некорректные параметры запроса"
	msgTenantNotFound   = "арендатор не найден"
	msgPackageNotFound  = "пакет услуг не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/packages/{packageId}/availability
// Query params: date (required, YYYY-MM-DD)
// Публичный endpoint для витрины бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем tenantId из URL
	tenantIDStr := vars["tenantId"]
	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/packages/{id}/availability - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	// Извлекаем packageId из URL
	packageIDStr := vars["packageId"]
	packageID, err := strconv.ParseInt(packageIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/packages/{id}/availability - Invalid package ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tenants/{id}/packages/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		TenantID:  tenantID,
		PackageID: packageID,
		Date:      dateStr,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/packages/{id}/availability - Invalid parameters: tenant_id=%d, package_id=%d, error=%v",
				tenantID, packageID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, checkAvailability.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{id}/packages/{id}/availability - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, checkAvailability.ErrPackageNotFound):
			h.logger.Warn("GET /tenants/{id}/packages/{id}/availability - Package not found: tenant_id=%d, package_id=%d",
				tenantID, packageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		default:
			h.logger.Error("GET /tenants/{id}/packages/{id}/availability - Failed to check availability: tenant_id=%d, package_id=%d, error=%v",
				tenantID, packageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /tenants/{id}/packages/{id}/availability - Availability checked: tenant_id=%d, package_id=%d, date=%s, available=%v, slots_count=%d",
		tenantID, packageID, dateStr, result.Available, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
