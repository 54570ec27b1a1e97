package notifications

import "errors"

var (
	// ErrEncode возвращается, когда уведомление не удалось сериализовать
	ErrEncode = errors.New("notifications: failed to encode notification")

	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("notifications: failed to connect")

	// ErrPublish возвращается, когда брокер или получатель не принял сообщение
	ErrPublish = errors.New("notifications: failed to publish")

	// ErrInvalidResponse возвращается при неожиданном ответе webhook
	ErrInvalidResponse = errors.New("notifications: invalid webhook response")
)
