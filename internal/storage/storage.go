// Package storage определяет общие для слоя хранения ошибки.
//
// Сервисы сравнивают ошибки репозитория через errors.Is и транслируют их
// в дискриминированные результаты для HTTP-слоя.
package storage

import "errors"

var (
	// ErrNotFound возвращается, когда запись с указанным идентификатором не существует.
	ErrNotFound = errors.New("not found")
	// ErrConflict возвращается при нарушении уникальности (username, email, имя сезона).
	ErrConflict = errors.New("already exists")
)
