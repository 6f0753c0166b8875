package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrTenantNotFound возвращается, когда у арендатора нет конфигурации расписания
	ErrTenantNotFound = errors.New("create_booking: tenant not found")

	// ErrPackageNotFound возвращается, когда пакет услуг не найден у арендатора
	ErrPackageNotFound = errors.New("create_booking: package not found")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooFarInAdvance возвращается, когда дата за пределами окна maxAdvanceBookingDays
	ErrTooFarInAdvance = errors.New("create_booking: date is too far in advance")

	// ErrTenantClosed возвращается, когда арендатор закрыт в указанную дату
	ErrTenantClosed = errors.New("create_booking: tenant is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время начала не лежит на сетке слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается при нарушении minimumNoticePeriodHours
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда вместимость слота исчерпана
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrBookingInProgress возвращается, когда день занят другим коммитом бронирования
	ErrBookingInProgress = errors.New("create_booking: another booking is in progress for this slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
