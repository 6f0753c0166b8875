package get_tenant_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Поддерживаются фильтры packageId, userId, dateFrom, dateTo,
// status (повторяемый) и includeInactive.
func ToServiceRequest(tenantID int64, query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		TenantID:        tenantID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим packageId если указан
	if packageIDStr := query.Get("packageId"); packageIDStr != "" {
		packageID, err := strconv.ParseInt(packageIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.PackageID = &packageID
	}

	// Парсим userId если указан
	if userIDStr := query.Get("userId"); userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.UserID = &userID
	}

	// Парсим границы периода если указаны
	if dateFromStr := query.Get("dateFrom"); dateFromStr != "" {
		dateFrom, err := time.Parse(domain.DateFormat, dateFromStr)
		if err != nil {
			return nil, err
		}
		req.DateFrom = &dateFrom
	}

	if dateToStr := query.Get("dateTo"); dateToStr != "" {
		dateTo, err := time.Parse(domain.DateFormat, dateToStr)
		if err != nil {
			return nil, err
		}
		req.DateTo = &dateTo
	}

	// Статус может повторяться: ?status=pending&status=confirmed
	req.Statuses = append(req.Statuses, query["status"]...)

	// Парсим includeInactive если указан
	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
