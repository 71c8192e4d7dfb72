// Package models содержит доменные структуры туристического портала,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей системы.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// ValidRoles перечисляет допустимые значения роли пользователя.
var ValidRoles = []string{RoleAdmin, RoleEditor}

// User представляет зарегистрированного пользователя системы.
//
// PasswordHash никогда не сериализуется наружу.
type User struct {
	ID           int64     `json:"user_id"`   // Уникальный идентификатор пользователя
	Username     string    `json:"username"`  // Имя пользователя (уникальное)
	Email        string    `json:"email"`     // Электронная почта (уникальная)
	PasswordHash string    `json:"-"`         // Хэш пароля пользователя
	Role         string    `json:"role"`      // Роль пользователя, admin или editor
	IsActive     bool      `json:"is_active"` // Признак активности учётной записи
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin сообщает, имеет ли пользователь административную роль.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DummyUser используется для приёма данных создания пользователя из JSON-запроса.
type DummyUser struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin editor"`
}
