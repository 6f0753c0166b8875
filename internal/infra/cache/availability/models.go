package availability

import (
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/pkg/types"
)

// dayPayload сериализуемое представление domain.DayAvailability.
// Доменные типы не несут JSON тегов, поэтому кеш хранит собственный DTO.
type dayPayload struct {
	TenantID  int64         `json:"tenant_id"`
	PackageID int64         `json:"package_id"`
	Date      string        `json:"date"`
	Available bool          `json:"available"`
	Slots     []slotPayload `json:"slots"`
}

type slotPayload struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Booked    int    `json:"booked"`
	Capacity  int    `json:"capacity"`
	Available bool   `json:"available"`
}

func fromDomain(day *domain.DayAvailability) dayPayload {
	slots := make([]slotPayload, 0, len(day.Slots))
	for _, slot := range day.Slots {
		slots = append(slots, slotPayload{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Booked:    slot.Booked,
			Capacity:  slot.Capacity,
			Available: slot.Available,
		})
	}

	return dayPayload{
		TenantID:  day.TenantID,
		PackageID: day.PackageID,
		Date:      day.Date.UTC().Format(domain.DateFormat),
		Available: day.Available,
		Slots:     slots,
	}
}

func (p dayPayload) toDomain() (*domain.DayAvailability, error) {
	date, err := time.ParseInLocation(domain.DateFormat, p.Date, time.UTC)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.TimeSlot, 0, len(p.Slots))
	for _, slot := range p.Slots {
		slots = append(slots, domain.TimeSlot{
			StartTime: types.TimeString(slot.StartTime),
			EndTime:   types.TimeString(slot.EndTime),
			Booked:    slot.Booked,
			Capacity:  slot.Capacity,
			Available: slot.Available,
		})
	}

	return &domain.DayAvailability{
		TenantID:  p.TenantID,
		PackageID: p.PackageID,
		Date:      date,
		Available: p.Available,
		Slots:     slots,
	}, nil
}
