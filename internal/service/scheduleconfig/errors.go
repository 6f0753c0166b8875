package scheduleconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда у арендатора нет конфигурации расписания
	ErrConfigNotFound = errors.New("schedule config not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
