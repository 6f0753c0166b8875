package check_availability

import (
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/pkg/types"
)

// Request модель запроса доступности дня
type Request struct {
	TenantID  int64  // ID арендатора
	PackageID int64  // ID пакета услуг
	Date      string // Календарный день в формате YYYY-MM-DD (UTC)
}

// Response модель ответа с сеткой слотов дня
type Response struct {
	TenantID  int64     // ID арендатора
	PackageID int64     // ID пакета услуг
	Date      time.Time // Запрошенный день
	Available bool      // Есть ли хотя бы один доступный слот
	Slots     []Slot    // Полная сетка слотов дня
}

// Slot модель слота в ответе. Недоступные слоты остаются в сетке
// с Available=false, чтобы клиент видел занятость всего дня.
type Slot struct {
	StartTime types.TimeString // Время начала слота
	EndTime   types.TimeString // Начало следующей ячейки сетки
	Booked    int              // Сколько активных бронирований в слоте
	Capacity  int              // Вместимость слота
	Available bool             // Можно ли бронировать слот
}

// toResponse конвертирует доменный результат в модель ответа
func toResponse(day *domain.DayAvailability) *Response {
	slots := make([]Slot, 0, len(day.Slots))
	for _, slot := range day.Slots {
		slots = append(slots, Slot{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Booked:    slot.Booked,
			Capacity:  slot.Capacity,
			Available: slot.Available,
		})
	}

	return &Response{
		TenantID:  day.TenantID,
		PackageID: day.PackageID,
		Date:      day.Date,
		Available: day.Available,
		Slots:     slots,
	}
}
