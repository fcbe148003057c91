package create_booking

import "errors"

var (
	// ErrMissingField возвращается, когда обязательное поле не заполнено
	// Обернутая ошибка называет отсутствующее поле
	ErrMissingField = errors.New("create_booking: required field is missing")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrPackageNotFound возвращается, когда тур-пакет не найден или отключен
	ErrPackageNotFound = errors.New("create_booking: tour package not found")

	// ErrInclusionNotFound возвращается при висячей ссылке на inclusion каталога
	ErrInclusionNotFound = errors.New("create_booking: package inclusion not found")

	// ErrInternal возвращается при инфраструктурных ошибках
	ErrInternal = errors.New("create_booking: internal error")
)
