// Package app собирает приложение туристического портала: хранилище,
// миграции, кеш, сервисы и HTTP-сервер с общим жизненным циклом.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/osam-tourism/tourism-api/internal/cache"
	"github.com/osam-tourism/tourism-api/internal/config"
	"github.com/osam-tourism/tourism-api/internal/lib/jwt"
	"github.com/osam-tourism/tourism-api/internal/migrations"
	authservice "github.com/osam-tourism/tourism-api/internal/services/auth"
	eventservice "github.com/osam-tourism/tourism-api/internal/services/event"
	galleryservice "github.com/osam-tourism/tourism-api/internal/services/gallery"
	placeservice "github.com/osam-tourism/tourism-api/internal/services/place"
	reviewservice "github.com/osam-tourism/tourism-api/internal/services/review"
	seasonservice "github.com/osam-tourism/tourism-api/internal/services/season"
	siteservice "github.com/osam-tourism/tourism-api/internal/services/site"
	templeservice "github.com/osam-tourism/tourism-api/internal/services/temple"
	userservice "github.com/osam-tourism/tourism-api/internal/services/user"
	"github.com/osam-tourism/tourism-api/internal/storage/repository"

	"github.com/go-chi/chi"
)

// App инкапсулирует HTTP-сервер и подключения к хранилищу и кешу.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// Services объединяет все бизнес-сервисы приложения для регистрации маршрутов.
type Services struct {
	Auth    *authservice.AuthService
	User    *userservice.UserService
	Place   *placeservice.PlaceService
	Temple  *templeservice.TempleService
	Site    *siteservice.SiteService
	Event   *eventservice.EventService
	Gallery *galleryservice.GalleryService
	Review  *reviewservice.ReviewService
	Season  *seasonservice.SeasonService
}

// New создает приложение: открывает базу, накатывает миграции,
// подключается к Redis и регистрирует все маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	services := &Services{
		Auth:    authservice.NewAuthService(db, jwtMaker),
		User:    userservice.NewUserService(db, logger),
		Place:   placeservice.NewPlaceService(db, cacheRedis, logger),
		Temple:  templeservice.NewTempleService(db, logger),
		Site:    siteservice.NewSiteService(db, logger),
		Event:   eventservice.NewEventService(db, logger),
		Gallery: galleryservice.NewGalleryService(db, db, cacheRedis, logger),
		Review:  reviewservice.NewReviewService(db, db, logger),
		Season:  seasonservice.NewSeasonService(db, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста или ошибки сервера.
// При отмене контекста выполняется graceful shutdown с таймаутом.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
