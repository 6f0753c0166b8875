package create_booking

import (
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
	"github.com/m04kA/SPS-AvailabilityService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	TenantID  int64   // ID арендатора (из контекста запроса)
	PackageID int64   // ID пакета услуг
	UserID    int64   // ID клиента платформы
	Date      string  // Дата бронирования в формате YYYY-MM-DD (UTC)
	StartTime string  // Время начала слота в формате HH:MM
	Notes     *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	TenantID        int64            // ID арендатора
	PackageID       int64            // ID пакета услуг
	UserID          int64            // ID клиента
	EventDate       time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Денормализованные данные пакета
	PackageName string  // Название пакета на момент бронирования
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// toResponse конвертирует доменное бронирование в модель ответа
func toResponse(booking *domain.Booking) *Response {
	return &Response{
		ID:              booking.ID,
		TenantID:        booking.TenantID,
		PackageID:       booking.PackageID,
		UserID:          booking.UserID,
		EventDate:       booking.EventDate,
		StartTime:       booking.StartTime,
		DurationMinutes: booking.DurationMinutes,
		Status:          string(booking.Status),
		PackageName:     booking.PackageName,
		Notes:           booking.Notes,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}
}
