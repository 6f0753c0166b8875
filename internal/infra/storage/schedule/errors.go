package schedule

import "errors"

var (
	// ErrConfigNotFound возвращается, когда у арендатора нет конфигурации расписания
	ErrConfigNotFound = errors.New("schedule.repository: schedule config not found")

	// ErrIncompleteSchedule возвращается, когда недельное расписание арендатора неполное
	ErrIncompleteSchedule = errors.New("schedule.repository: incomplete weekly schedule")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
