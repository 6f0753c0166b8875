package check_staff_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SPS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SPS-AvailabilityService/internal/api/middleware"
	checkStaffAvailability "github.com/m04kA/SPS-AvailabilityService/internal/usecase/check_staff_availability"
)

const (
	msgInvalidPackageID = "некорректный ID пакета услуг"
	msgMissingTenantID  = "отсутствует ID арендатора"
	msgMissingDate      = "дата обязательна"
	msgMissingStartTime = "время начала обязательно"
	msgMissingDuration  = "длительность обязательна"
	msgInvalidDuration  = "некорректная длительность"
	msgInvalidParams    = "некорректные параметры запроса"
	msgPackageNotFound  = "пакет услуг не найден"
)

type Handler struct {
	useCase CheckStaffAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckStaffAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/packages/{packageId}/staff-availability
// Query params: date (YYYY-MM-DD), startTime (HH:MM), durationMinutes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем packageId из URL
	packageIDStr := vars["packageId"]
	packageID, err := strconv.ParseInt(packageIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /packages/{id}/staff-availability - Invalid package ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	// Получаем tenantID из контекста (через middleware TenantAuth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /packages/{id}/staff-availability - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	// Извлекаем обязательные query параметры
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /packages/{id}/staff-availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	startTimeStr := r.URL.Query().Get("startTime")
	if startTimeStr == "" {
		h.logger.Warn("GET /packages/{id}/staff-availability - Missing start time")
		handlers.RespondBadRequest(w, msgMissingStartTime)
		return
	}

	durationStr := r.URL.Query().Get("durationMinutes")
	if durationStr == "" {
		h.logger.Warn("GET /packages/{id}/staff-availability - Missing duration")
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	durationMinutes, err := strconv.Atoi(durationStr)
	if err != nil {
		h.logger.Warn("GET /packages/{id}/staff-availability - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	useCaseReq := &checkStaffAvailability.Request{
		TenantID:        tenantID,
		PackageID:       packageID,
		EventDate:       dateStr,
		StartTime:       startTimeStr,
		DurationMinutes: durationMinutes,
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkStaffAvailability.ErrInvalidInput):
			h.logger.Warn("GET /packages/{id}/staff-availability - Invalid parameters: tenant_id=%d, package_id=%d, error=%v",
				tenantID, packageID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, checkStaffAvailability.ErrPackageNotFound):
			h.logger.Warn("GET /packages/{id}/staff-availability - Package not found: tenant_id=%d, package_id=%d",
				tenantID, packageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		default:
			h.logger.Error("GET /packages/{id}/staff-availability - Failed to check staff availability: tenant_id=%d, package_id=%d, error=%v",
				tenantID, packageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(useCaseReq, result)

	h.logger.Info("GET /packages/{id}/staff-availability - Staff availability checked: tenant_id=%d, package_id=%d, date=%s, ok=%v",
		tenantID, packageID, dateStr, result.Ok)
	handlers.RespondJSON(w, http.StatusOK, response)
}
