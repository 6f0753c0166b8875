package check_staff_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_staff_availability: invalid input data")

	// ErrPackageNotFound возвращается, когда пакет услуг не найден у арендатора
	ErrPackageNotFound = errors.New("check_staff_availability: package not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_staff_availability: internal error")
)
