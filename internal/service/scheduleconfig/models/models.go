package models

import (
	"strings"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
)

// Response модели

// WorkingHoursEntryResponse элемент недельного графика работы
type WorkingHoursEntryResponse struct {
	DayOfWeek string  `json:"dayOfWeek"` // "monday" ... "sunday"
	IsOpen    bool    `json:"isOpen"`
	StartTime *string `json:"startTime,omitempty"` // nil для закрытых дней
	EndTime   *string `json:"endTime,omitempty"`
}

// ConfigResponse ответ с конфигурацией расписания арендатора
type ConfigResponse struct {
	ID                           int64                       `json:"id"`
	TenantID                     int64                       `json:"tenantId"`
	TimeSlotDurationMinutes      int                         `json:"timeSlotDurationMinutes"`
	DefaultBookingDurationHours  int                         `json:"defaultBookingDurationHours"`
	MaxConcurrentBookingsPerSlot int                         `json:"maxConcurrentBookingsPerSlot"`
	MinimumNoticePeriodHours     int                         `json:"minimumNoticePeriodHours"`
	MaxAdvanceBookingDays        int                         `json:"maxAdvanceBookingDays"`
	WorkingHours                 []WorkingHoursEntryResponse `json:"workingHours"`
	CreatedAt                    time.Time                   `json:"createdAt"`
	UpdatedAt                    time.Time                   `json:"updatedAt"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.TenantScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	workingHours := make([]WorkingHoursEntryResponse, 0, len(c.WorkingHours))
	for _, entry := range c.WorkingHours {
		workingHours = append(workingHours, fromDomainEntry(entry))
	}

	return &ConfigResponse{
		ID:                           c.ID,
		TenantID:                     c.TenantID,
		TimeSlotDurationMinutes:      c.TimeSlotDurationMinutes,
		DefaultBookingDurationHours:  c.DefaultBookingDurationHours,
		MaxConcurrentBookingsPerSlot: c.MaxConcurrentBookingsPerSlot,
		MinimumNoticePeriodHours:     c.MinimumNoticePeriodHours,
		MaxAdvanceBookingDays:        c.MaxAdvanceBookingDays,
		WorkingHours:                 workingHours,
		CreatedAt:                    c.CreatedAt,
		UpdatedAt:                    c.UpdatedAt,
	}
}

// fromDomainEntry конвертирует день недельного графика.
// Времена закрытого дня опускаются в ответе.
func fromDomainEntry(entry domain.WorkingHoursEntry) WorkingHoursEntryResponse {
	resp := WorkingHoursEntryResponse{
		DayOfWeek: strings.ToLower(entry.DayOfWeek.String()),
		IsOpen:    entry.IsOpen,
	}

	if entry.IsOpen {
		start := entry.StartTime.String()
		end := entry.EndTime.String()
		resp.StartTime = &start
		resp.EndTime = &end
	}

	return resp
}
