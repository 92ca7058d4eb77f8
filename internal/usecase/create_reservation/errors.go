package create_reservation

import "errors"

var (
	// ErrUnauthenticated возвращается, когда идентичность пользователя
	// не предоставлена или не разрешается в существующего пользователя
	ErrUnauthenticated = errors.New("create_reservation: unauthenticated")

	// ErrInvalidRequest возвращается при отсутствующих или некорректных полях
	ErrInvalidRequest = errors.New("create_reservation: invalid request")

	// ErrInvalidSlot возвращается, когда метка слота не входит в каталог
	// для указанной даты
	ErrInvalidSlot = errors.New("create_reservation: slot is not in catalog for this date")

	// ErrDailyCapExceeded возвращается, когда у пользователя уже есть
	// бронирование на эту дату (лимит - один слот в день)
	ErrDailyCapExceeded = errors.New("create_reservation: daily reservation cap exceeded")

	// ErrSlotTaken возвращается, когда слот уже занят - как при
	// оптимистичной проверке, так и при проигрыше гонки за insert
	ErrSlotTaken = errors.New("create_reservation: slot is already taken")

	// ErrStorageUnavailable возвращается при недоступности хранилища
	ErrStorageUnavailable = errors.New("create_reservation: storage unavailable")
)
