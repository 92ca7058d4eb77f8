package get_availability

import "errors"

var (
	// ErrInvalidRequest возвращается при некорректной дате запроса
	ErrInvalidRequest = errors.New("get_availability: invalid request")

	// ErrStorageUnavailable возвращается при недоступности хранилища
	ErrStorageUnavailable = errors.New("get_availability: storage unavailable")
)
