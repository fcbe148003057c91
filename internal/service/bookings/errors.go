package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у актора нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrEmptyDecision возвращается, когда решение персонала не меняет ни одного поля
	ErrEmptyDecision = errors.New("decision must change at least one field")

	// ErrStaffReplyTooLong возвращается при превышении лимита длины ответа персонала
	ErrStaffReplyTooLong = errors.New("staff reply is too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidRange возвращается, когда начало периода позже его конца
	ErrInvalidRange = errors.New("start date must not be after end date")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
