package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied возвращается, когда актор не владелец бронирования
	ErrAccessDenied = errors.New("update_booking: booking belongs to another account")

	// ErrNoFieldsProvided возвращается, когда запрос не меняет ни одного поля
	ErrNoFieldsProvided = errors.New("update_booking: at least one field must be provided")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrPackageNotFound возвращается при висячей ссылке на тур-пакет
	ErrPackageNotFound = errors.New("update_booking: tour package not found")

	// ErrInclusionNotFound возвращается при висячей ссылке на inclusion каталога
	ErrInclusionNotFound = errors.New("update_booking: package inclusion not found")

	// ErrInternal возвращается при инфраструктурных ошибках
	ErrInternal = errors.New("update_booking: internal error")
)
