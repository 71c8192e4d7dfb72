package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osam-tourism/tourism-api/internal/lib/jwt"
	"github.com/osam-tourism/tourism-api/internal/lib/password"
	"github.com/osam-tourism/tourism-api/internal/models"
	"github.com/osam-tourism/tourism-api/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func newMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func activeUser(t *testing.T, rawPassword string) *models.User {
	t.Helper()
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)
	return &models.User{
		ID:           7,
		Username:     "editor1",
		Email:        "editor1@example.com",
		PasswordHash: hash,
		Role:         models.RoleEditor,
		IsActive:     true,
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummyUser
		setupMocks func(r *RepoMock)
		wantID     int64
		wantErr    bool
	}{
		{
			name: "успешная регистрация с ролью editor",
			req:  models.DummyUser{Username: "newuser", Email: "new@example.com", Password: "secret1"},
			setupMocks: func(r *RepoMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Username == "newuser" && u.Role == models.RoleEditor &&
						u.IsActive && u.PasswordHash != "secret1"
				})).Return(int64(42), nil).Once()
			},
			wantID: 42,
		},
		{
			name:       "запрошенная роль admin отклоняется",
			req:        models.DummyUser{Username: "sneaky", Email: "s@example.com", Password: "secret1", Role: models.RoleAdmin},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewAuthService(repo, newMaker())

			id, err := svc.Register(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				var verr *models.ValidationError
				assert.True(t, errors.As(err, &verr))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	user := activeUser(t, "correct-password")

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:     "успешный вход",
			username: "editor1",
			password: "correct-password",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByUsername", mock.Anything, "editor1").Return(user, nil).Once()
			},
		},
		{
			name:     "неизвестный пользователь",
			username: "ghost",
			password: "whatever",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "неверный пароль",
			username: "editor1",
			password: "wrong-password",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByUsername", mock.Anything, "editor1").Return(user, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "отключённая учётная запись",
			username: "editor1",
			password: "correct-password",
			setupMocks: func(r *RepoMock) {
				inactive := *user
				inactive.IsActive = false
				r.On("GetUserByUsername", mock.Anything, "editor1").Return(&inactive, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewAuthService(repo, newMaker())

			res, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, res.Token)
				assert.Equal(t, time.Hour, res.ExpiresIn)
				assert.Equal(t, user.Username, res.User.Username)
			}
			repo.AssertExpectations(t)
		})
	}

	t.Run("сбой хранилища не выдаётся за неверные учётные данные", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		repo := new(RepoMock)
		repo.On("GetUserByUsername", mock.Anything, "editor1").Return(nil, dbErr).Once()
		svc := NewAuthService(repo, newMaker())

		_, err := svc.Login(context.Background(), "editor1", "correct-password")
		require.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	user := activeUser(t, "correct-password")
	maker := newMaker()

	token, err := maker.GenerateToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)

	t.Run("валидный токен активного пользователя", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByID", mock.Anything, user.ID).Return(user, nil).Once()
		svc := NewAuthService(repo, maker)

		got, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, user.Username, got.Username)
		repo.AssertExpectations(t)
	})

	t.Run("пользователь отключён после выдачи токена", func(t *testing.T) {
		inactive := *user
		inactive.IsActive = false
		repo := new(RepoMock)
		repo.On("GetUserByID", mock.Anything, user.ID).Return(&inactive, nil).Once()
		svc := NewAuthService(repo, maker)

		_, err := svc.ValidateToken(context.Background(), token)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("повреждённый токен", func(t *testing.T) {
		repo := new(RepoMock)
		svc := NewAuthService(repo, maker)

		_, err := svc.ValidateToken(context.Background(), "not.a.token")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("удалённый пользователь неотличим от неверного токена", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByID", mock.Anything, user.ID).Return(nil, storage.ErrNotFound).Once()
		svc := NewAuthService(repo, maker)

		_, err := svc.ValidateToken(context.Background(), token)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("сбой хранилища пробрасывается как есть", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		repo := new(RepoMock)
		repo.On("GetUserByID", mock.Anything, user.ID).Return(nil, dbErr).Once()
		svc := NewAuthService(repo, maker)

		_, err := svc.ValidateToken(context.Background(), token)
		require.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	user := activeUser(t, "old-password")

	t.Run("успешная смена пароля", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByID", mock.Anything, user.ID).Return(user, nil).Once()
		repo.On("UpdateUserPassword", mock.Anything, user.ID, mock.MatchedBy(func(hash string) bool {
			return password.CompareHash(hash, "new-password") == nil
		})).Return(nil).Once()
		svc := NewAuthService(repo, newMaker())

		err := svc.ChangePassword(context.Background(), user.ID, "old-password", "new-password")
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("неверный текущий пароль", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByID", mock.Anything, user.ID).Return(user, nil).Once()
		svc := NewAuthService(repo, newMaker())

		err := svc.ChangePassword(context.Background(), user.ID, "wrong", "new-password")
		require.ErrorIs(t, err, ErrWrongPassword)
	})
}
