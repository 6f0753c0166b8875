package check_availability

import (
	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	checkAvailability "github.com/m04kA/SPS-AvailabilityService/internal/usecase/check_availability"
)

// DayAvailabilityResponse HTTP response model
type DayAvailabilityResponse struct {
	Date      string         `json:"date"`
	TenantID  int64          `json:"tenantId"`
	PackageID int64          `json:"packageId"`
	Available bool           `json:"available"`
	Slots     []SlotResponse `json:"slots"`
}

// SlotResponse модель слота в сетке дня
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Booked    int    `json:"booked"`
	Capacity  int    `json:"capacity"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *DayAvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Booked:    slot.Booked,
			Capacity:  slot.Capacity,
			Available: slot.Available,
		}
	}

	return &DayAvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		TenantID:  resp.TenantID,
		PackageID: resp.PackageID,
		Available: resp.Available,
		Slots:     slots,
	}
}
