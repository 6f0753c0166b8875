package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SPS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SPS-AvailabilityService/internal/api/middleware"
	createBooking "github.com/m04kA/SPS-AvailabilityService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID арендатора"
	msgInvalidParams      = "некорректные параметры запроса"
	msgTenantNotFound     = "арендатор не найден"
	msgPackageNotFound    = "пакет услуг не найден"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgTenantClosed       = "арендатор не работает в выбранную дату"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgBookingInProgress  = "слот уже бронируется другим запросом, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем tenantID из контекста (через middleware TenantAuth)
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid request: tenant_id=%d, package_id=%d, error=%v",
				tenantID, req.PackageID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, createBooking.ErrTenantNotFound):
			h.logger.Warn("POST /bookings - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createBooking.ErrPackageNotFound):
			h.logger.Warn("POST /bookings - Package not found: tenant_id=%d, package_id=%d",
				tenantID, req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: tenant_id=%d, date=%s",
				tenantID, req.EventDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrTooFarInAdvance):
			h.logger.Warn("POST /bookings - Date too far in advance: tenant_id=%d, date=%s",
				tenantID, req.EventDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTenantClosed):
			h.logger.Warn("POST /bookings - Tenant closed on date: tenant_id=%d, date=%s",
				tenantID, req.EventDate)
			handlers.RespondBadRequest(w, msgTenantClosed)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: tenant_id=%d, start_time=%s",
				tenantID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: tenant_id=%d, date=%s, start_time=%s",
				tenantID, req.EventDate, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: tenant_id=%d, package_id=%d, date=%s, start_time=%s",
				tenantID, req.PackageID, req.EventDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrBookingInProgress):
			h.logger.Warn("POST /bookings - Concurrent booking in progress: tenant_id=%d, package_id=%d, date=%s",
				tenantID, req.PackageID, req.EventDate)
			handlers.RespondConflict(w, msgBookingInProgress)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: tenant_id=%d, package_id=%d, user_id=%d, error=%v",
				tenantID, req.PackageID, req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, tenant_id=%d, package_id=%d, user_id=%d",
		result.ID, tenantID, req.PackageID, req.UserID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
