// Package auth содержит логику бизнес-уровня для регистрации,
// аутентификации и проверки JWT.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/osam-tourism/tourism-api/internal/lib/jwt"
	"github.com/osam-tourism/tourism-api/internal/lib/password"
	"github.com/osam-tourism/tourism-api/internal/models"
	"github.com/osam-tourism/tourism-api/internal/storage"
)

// Ошибки бизнес-уровня аутентификации.
var (
	// ErrInvalidCredentials возвращается при любом провале входа:
	// неизвестное имя, неверный пароль или отключённая учётная запись.
	// Причина не уточняется намеренно.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWrongPassword возвращается при смене пароля с неверным текущим паролем.
	ErrWrongPassword = errors.New("wrong password")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)
	// GetUserByID возвращает пользователя по идентификатору.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// UpdateUserPassword заменяет хэш пароля пользователя.
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
}

// LoginResult содержит выданный токен и данные вошедшего пользователя.
type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
	User      *models.User
}

// AuthService отвечает за регистрацию, вход, смену пароля и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Публичная регистрация выдаёт только роль editor: попытка указать admin
// отклоняется, администраторов создают через административный раздел.
func (s *AuthService) Register(ctx context.Context, req models.DummyUser) (int64, error) {
	if req.Role == models.RoleAdmin {
		return 0, models.NewValidationError("role", "admin accounts are created by administrators only")
	}
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         models.RoleEditor,
		IsActive:     true,
	}
	return s.users.CreateUser(ctx, user)
}

// Login проверяет учётные данные и генерирует JWT.
// Неизвестное имя, неверный пароль и отключённая учётная запись
// неразличимы для вызывающего; сбой хранилища пробрасывается как есть.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*LoginResult, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresIn: s.jwtMaker.TTL(),
		User:      user,
	}, nil
}

// ValidateToken проверяет JWT и возвращает актуальное состояние пользователя
// из хранилища. Подпись и срок токена — только первый рубеж: пользователь
// должен существовать и быть активным на момент запроса.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword меняет пароль пользователя после проверки текущего.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := password.CompareHash(user.PasswordHash, oldPassword); err != nil {
		return ErrWrongPassword
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdateUserPassword(ctx, userID, hashed)
}
