package check_staff_availability

import "github.com/m04kA/SPS-AvailabilityService/internal/domain"

// Request модель запроса проверки доступности персонала
type Request struct {
	TenantID        int64  // ID арендатора
	PackageID       int64  // ID пакета услуг
	EventDate       string // Календарный день в формате YYYY-MM-DD (UTC)
	StartTime       string // Время начала окна в формате HH:MM
	DurationMinutes int    // Длительность окна в минутах
}

// Response модель ответа проверки доступности персонала
type Response struct {
	RequiredStaffCount int  // Минимальное число разных сотрудников для пакета
	EligibleCount      int  // Сколько сотрудников допущено к типам задач пакета
	BusyCount          int  // Сколько допущенных занято в предложенном окне
	AvailableCount     int  // Сколько допущенных свободно
	Ok                 bool // Хватает ли свободных сотрудников
}

// toResponse конвертирует доменный результат в модель ответа
func toResponse(result domain.StaffAvailability) *Response {
	return &Response{
		RequiredStaffCount: result.RequiredStaffCount,
		EligibleCount:      result.EligibleCount,
		BusyCount:          result.BusyCount,
		AvailableCount:     result.AvailableCount,
		Ok:                 result.Ok,
	}
}
