// Package sl добавляет мелкие помощники поверх slog,
// чтобы атрибуты логов по всему приложению выглядели одинаково.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут с ключом "error".
//
//	log.Error("failed to create place", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
