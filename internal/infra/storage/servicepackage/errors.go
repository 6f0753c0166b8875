package servicepackage

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет услуг не найден у арендатора
	ErrPackageNotFound = errors.New("servicepackage.repository: package not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("servicepackage.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("servicepackage.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("servicepackage.repository: failed to scan row")
)
