package models

import "fmt"

// ValidationError описывает нарушение бизнес-правила для конкретного поля.
// Сервисы возвращают её при отсутствии обязательного поля, недопустимом
// значении перечисления или несогласованном диапазоне дат.
type ValidationError struct {
	Field  string // Имя поля, вызвавшего ошибку
	Reason string // Человеко-читаемое описание нарушения
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

// NewValidationError создает ValidationError для поля с указанной причиной.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidEnum формирует ValidationError для недопустимого значения перечисления.
func InvalidEnum(field, value string, allowed []string) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("invalid value %q, must be one of %v", value, allowed),
	}
}

// contains проверяет вхождение значения в список допустимых.
func contains(allowed []string, value string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

// ValidateEnum возвращает ValidationError, если значение не входит в перечисление.
// Пустое значение считается допустимым только при optional = true.
func ValidateEnum(field, value string, allowed []string, optional bool) *ValidationError {
	if value == "" {
		if optional {
			return nil
		}
		return NewValidationError(field, "is required")
	}
	if !contains(allowed, value) {
		return InvalidEnum(field, value, allowed)
	}
	return nil
}
