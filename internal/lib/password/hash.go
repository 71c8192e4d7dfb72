// Package password отвечает за хеширование паролей редакторов и администраторов.
// В открытом виде пароль нигде не хранится: в базу попадает только bcrypt-хеш.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash хеширует пароль со стандартной стоимостью bcrypt.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hash), nil
}

// CompareHash проверяет пароль против сохранённого хеша.
// Возвращает nil при совпадении.
func CompareHash(storedHash, candidate string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
