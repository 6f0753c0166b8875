package availability

import "errors"

var (
	// ErrCacheMiss возвращается, когда записи для ключа нет
	ErrCacheMiss = errors.New("availability.cache: cache miss")

	// ErrEncodePayload возвращается при ошибке сериализации значения
	ErrEncodePayload = errors.New("availability.cache: failed to encode payload")

	// ErrDecodePayload возвращается при ошибке десериализации значения
	ErrDecodePayload = errors.New("availability.cache: failed to decode payload")

	// ErrExecCommand возвращается при ошибке обращения к Redis
	ErrExecCommand = errors.New("availability.cache: failed to execute command")
)
