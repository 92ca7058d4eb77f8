package discord

import "errors"

var (
	// ErrWebhookNotConfigured возвращается, когда webhook URL не задан
	ErrWebhookNotConfigured = errors.New("discord client: webhook url is not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("discord client: internal error")

	// ErrUnexpectedStatus возвращается при неожиданном статус-коде от Discord
	ErrUnexpectedStatus = errors.New("discord client: unexpected status code")
)
