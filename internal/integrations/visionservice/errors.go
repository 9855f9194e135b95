package visionservice

import "errors"

var (
	// ErrPhotoNotAnalyzable возвращается, когда сервис не смог разобрать фотографию
	ErrPhotoNotAnalyzable = errors.New("photo cannot be analyzed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("visionservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("visionservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что VisionService недоступен и карточка публикуется без AI-сводки
	ErrServiceDegraded = errors.New("visionservice unavailable: graceful degradation applied")
)
