package check_staff_availability

import (
	checkStaffAvailability "github.com/m04kA/SPS-AvailabilityService/internal/usecase/check_staff_availability"
)

// StaffAvailabilityResponse HTTP response model
type StaffAvailabilityResponse struct {
	PackageID          int64  `json:"packageId"`
	Date               string `json:"date"`
	StartTime          string `json:"startTime"`
	DurationMinutes    int    `json:"durationMinutes"`
	RequiredStaffCount int    `json:"requiredStaffCount"`
	EligibleCount      int    `json:"eligibleCount"`
	BusyCount          int    `json:"busyCount"`
	AvailableCount     int    `json:"availableCount"`
	Ok                 bool   `json:"ok"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Параметры запроса дублируются в ответе, чтобы клиент мог
// сопоставить результат с проверяемым окном.
func FromUseCaseResponse(req *checkStaffAvailability.Request, resp *checkStaffAvailability.Response) *StaffAvailabilityResponse {
	return &StaffAvailabilityResponse{
		PackageID:          req.PackageID,
		Date:               req.EventDate,
		StartTime:          req.StartTime,
		DurationMinutes:    req.DurationMinutes,
		RequiredStaffCount: resp.RequiredStaffCount,
		EligibleCount:      resp.EligibleCount,
		BusyCount:          resp.BusyCount,
		AvailableCount:     resp.AvailableCount,
		Ok:                 resp.Ok,
	}
}
