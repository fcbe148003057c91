package catalog

import "errors"

var (
	// ErrPackageNotFound возвращается, когда тур-пакет не найден
	ErrPackageNotFound = errors.New("catalog.repository: tour package not found")

	// ErrInclusionNotFound возвращается, когда хотя бы один из запрошенных
	// inclusion-ов отсутствует в каталоге
	ErrInclusionNotFound = errors.New("catalog.repository: package inclusion not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
