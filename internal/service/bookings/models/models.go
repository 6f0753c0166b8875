package models

import (
	"errors"
	"time"

	"github.com/m04kA/SPS-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение бронирований арендатора
type ListBookingsRequest struct {
	TenantID        int64      `json:"tenantId"`
	PackageID       *int64     `json:"packageId,omitempty"`       // Фильтр по пакету (опционально)
	UserID          *int64     `json:"userId,omitempty"`          // Фильтр по клиенту (опционально)
	DateFrom        *time.Time `json:"dateFrom,omitempty"`        // Начало периода, включительно (опционально)
	DateTo          *time.Time `json:"dateTo,omitempty"`          // Конец периода, включительно (опционально)
	Statuses        []string   `json:"statuses,omitempty"`        // Фильтр по статусам (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр.
// Пользовательская верхняя граница периода включительна, фильтр
// хранилища работает с полуоткрытым окном: прибавляем день.
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		TenantID:        r.TenantID,
		PackageID:       r.PackageID,
		UserID:          r.UserID,
		DateFrom:        r.DateFrom,
		IncludeInactive: r.IncludeInactive,
	}

	if r.DateTo != nil {
		to := r.DateTo.AddDate(0, 0, 1)
		filter.DateTo = &to
	}

	for _, raw := range r.Statuses {
		status, err := ToDomainBookingStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	return filter, nil
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	TenantID           int64   `json:"tenantId"`
	BookingID          int64   `json:"bookingId"`
	CancelledByTenant  bool    `json:"cancelledByTenant"` // true, если отмену инициировал арендатор
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	TenantID        int64  `json:"tenantId"`
	PackageID       int64  `json:"packageId"`
	UserID          int64  `json:"userId"`
	EventDate       string `json:"eventDate"` // "2026-03-10"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные пакета
	PackageName string  `json:"packageName"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		TenantID:           b.TenantID,
		PackageID:          b.PackageID,
		UserID:             b.UserID,
		EventDate:          b.EventDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		PackageName:        b.PackageName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByClient,
		domain.StatusCancelledByTenant,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
