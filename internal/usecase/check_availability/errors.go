package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrTenantNotFound возвращается, когда у арендатора нет конфигурации расписания
	ErrTenantNotFound = errors.New("check_availability: tenant not found")

	// ErrPackageNotFound возвращается, когда пакет услуг не найден у арендатора
	ErrPackageNotFound = errors.New("check_availability: package not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
