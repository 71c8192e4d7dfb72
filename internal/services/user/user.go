// Package user содержит административную логику управления учётными записями.
package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/osam-tourism/tourism-api/internal/lib/password"
	"github.com/osam-tourism/tourism-api/internal/models"
)

// ErrSelfDelete возвращается при попытке администратора удалить собственную
// учётную запись.
var ErrSelfDelete = errors.New("cannot delete own account")

// UserRepository определяет методы для управления пользователями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)
	// GetUserByID возвращает пользователя по идентификатору.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// UpdateUserPassword заменяет хэш пароля пользователя.
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	// SetUserActive выставляет признак активности учётной записи.
	SetUserActive(ctx context.Context, id int64, active bool) error
	// SetUserRole меняет роль пользователя.
	SetUserRole(ctx context.Context, id int64, role string) error
	// DeleteUser удаляет пользователя.
	DeleteUser(ctx context.Context, id int64) error
}

// UserService реализует административные операции над пользователями.
// Все операции доступны только администраторам, это обеспечивает HTTP-слой.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// Create создает пользователя с любой допустимой ролью.
// Если роль не указана, выдаётся editor.
func (s *UserService) Create(ctx context.Context, req models.DummyUser) (int64, error) {
	role := req.Role
	if role == "" {
		role = models.RoleEditor
	}
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
	}
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return 0, err
	}
	s.log.Info("created user", slog.Int64("id", id), slog.String("role", role))
	return id, nil
}

// Get возвращает пользователя по идентификатору.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// List возвращает всех пользователей.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// Activate включает учётную запись. Повторное включение не является ошибкой.
func (s *UserService) Activate(ctx context.Context, id int64) error {
	return s.repo.SetUserActive(ctx, id, true)
}

// Deactivate отключает учётную запись: все выданные токены перестают
// проходить проверку на следующем же запросе.
func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	if err := s.repo.SetUserActive(ctx, id, false); err != nil {
		return err
	}
	s.log.Info("deactivated user", slog.Int64("id", id))
	return nil
}

// Promote назначает пользователю роль admin. Идемпотентна.
func (s *UserService) Promote(ctx context.Context, id int64) error {
	return s.repo.SetUserRole(ctx, id, models.RoleAdmin)
}

// Demote понижает пользователя до роли editor. Идемпотентна.
func (s *UserService) Demote(ctx context.Context, id int64) error {
	return s.repo.SetUserRole(ctx, id, models.RoleEditor)
}

// ResetPassword выставляет пользователю новый пароль без проверки старого.
func (s *UserService) ResetPassword(ctx context.Context, id int64, newPassword string) error {
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdateUserPassword(ctx, id, hashed)
}

// Delete удаляет пользователя. Удаление собственной учётной записи запрещено,
// чтобы нельзя было остаться без единственного администратора.
func (s *UserService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return ErrSelfDelete
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted user", slog.Int64("id", id), slog.Int64("actor", actorID))
	return nil
}
