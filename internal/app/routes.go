// Package app предоставляет маршруты туристического портала.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osam-tourism/tourism-api/internal/http/handlers/auth/adminusers"
	"github.com/osam-tourism/tourism-api/internal/http/handlers/auth/changepassword"
	"github.com/osam-tourism/tourism-api/internal/http/handlers/auth/login"
	"github.com/osam-tourism/tourism-api/internal/http/handlers/auth/logout"
	"github.com/osam-tourism/tourism-api/internal/http/handlers/auth/me"
	"github.com/osam-tourism/tourism-api/internal/http/handlers/auth/register"
	eventhandler "github.com/osam-tourism/tourism-api/internal/http/handlers/event"
	galleryhandler "github.com/osam-tourism/tourism-api/internal/http/handlers/gallery"
	placehandler "github.com/osam-tourism/tourism-api/internal/http/handlers/place"
	reviewhandler "github.com/osam-tourism/tourism-api/internal/http/handlers/review"
	seasonhandler "github.com/osam-tourism/tourism-api/internal/http/handlers/season"
	sitehandler "github.com/osam-tourism/tourism-api/internal/http/handlers/site"
	templehandler "github.com/osam-tourism/tourism-api/internal/http/handlers/temple"
	"github.com/osam-tourism/tourism-api/internal/http/middlewarectx"
	"github.com/osam-tourism/tourism-api/internal/http/response"
	"github.com/osam-tourism/tourism-api/internal/models"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Чтение контента открыто, отправка отзывов и голосование анонимны.
// Запись контента и управление пользователями требуют JWT и роль admin.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	placeH := placehandler.New(logger, s.Place)
	templeH := templehandler.New(logger, s.Temple)
	siteH := sitehandler.New(logger, s.Site)
	eventH := eventhandler.New(logger, s.Event)
	galleryH := galleryhandler.New(logger, s.Gallery)
	reviewH := reviewhandler.New(logger, s.Review)
	seasonH := seasonhandler.New(logger, s.Season)
	adminUsersH := adminusers.New(logger, s.User)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)

		// Каталог мест
		r.Get("/places", placeH.List)
		r.Get("/places/search", placeH.Search)
		r.Get("/places/featured", placeH.ListFeatured)
		r.Get("/places/popular", placeH.ListPopular)
		r.Get("/places/free", placeH.ListFree)
		r.Get("/places/facilities", placeH.ListWithFacilities)
		r.Get("/places/category/{category}", placeH.FilterByCategory)
		r.Get("/places/accessibility/{level}", placeH.FilterByAccessibility)
		r.Get("/places/{id}", placeH.Get)
		r.Get("/places/{id}/summary", placeH.Summary)
		r.Get("/places/{id}/entry-fee", placeH.EntryFeeDisplay)
		r.Get("/places/{id}/galleries", galleryH.ForOwner(models.OwnerPlace))
		r.Get("/places/{id}/reviews", reviewH.ForOwner(models.OwnerPlace))
		r.Get("/places/{id}/seasons", seasonH.ListAvailabilityForPlace)

		// Справочник храмов
		r.Get("/temples", templeH.List)
		r.Get("/temples/search", templeH.Search)
		r.Get("/temples/featured", templeH.ListFeatured)
		r.Get("/temples/pilgrimage", templeH.ListActivePilgrimage)
		r.Get("/temples/{id}", templeH.Get)
		r.Get("/temples/{id}/galleries", galleryH.ForOwner(models.OwnerTemple))
		r.Get("/temples/{id}/reviews", reviewH.ForOwner(models.OwnerTemple))

		// Мифологические объекты
		r.Get("/sites", siteH.List)
		r.Get("/sites/search", siteH.Search)
		r.Get("/sites/featured", siteH.ListFeatured)
		r.Get("/sites/with-guide", siteH.ListWithGuide)
		r.Get("/sites/accessibility/{level}", siteH.FilterByAccessibility)
		r.Get("/sites/{id}", siteH.Get)
		r.Get("/sites/{id}/galleries", galleryH.ForOwner(models.OwnerSite))
		r.Get("/sites/{id}/reviews", reviewH.ForOwner(models.OwnerSite))

		// Календарь событий
		r.Get("/events", eventH.List)
		r.Get("/events/search", eventH.Search)
		r.Get("/events/featured", eventH.ListFeatured)
		r.Get("/events/annual", eventH.ListAnnual)
		r.Get("/events/free", eventH.ListFree)
		r.Get("/events/facilities", eventH.ListWithFacilities)
		r.Get("/events/date-range", eventH.ListByDateRange)
		r.Get("/events/type/{type}", eventH.FilterByType)
		r.Get("/events/status/{status}", eventH.FilterByStatus)
		r.Get("/events/{id}", eventH.Get)
		r.Get("/events/{id}/summary", eventH.Summary)
		r.Get("/events/{id}/galleries", galleryH.ForOwner(models.OwnerEvent))
		r.Get("/events/{id}/reviews", reviewH.ForOwner(models.OwnerEvent))

		// Галереи
		r.Get("/galleries", galleryH.List)
		r.Get("/galleries/search", galleryH.Search)
		r.Get("/galleries/featured", galleryH.ListFeatured)
		r.Get("/galleries/popular", galleryH.ListPopular)
		r.Get("/galleries/type/{type}", galleryH.FilterByType)
		r.Get("/galleries/{id}", galleryH.Get)
		r.Get("/galleries/{id}/statistics", galleryH.Statistics)
		r.Get("/galleries/{id}/summary", galleryH.Summary)
		r.Get("/galleries/{id}/images", galleryH.ListImages)
		r.Get("/galleries/{id}/featured-image", galleryH.GetFeaturedImage)

		// Отзывы: анонимная отправка и голосование
		r.Post("/reviews", reviewH.Create)
		r.Get("/reviews/{id}", reviewH.Get)
		r.Post("/reviews/{id}/vote", reviewH.Vote)

		// Сезоны
		r.Get("/seasons", seasonH.List)
		r.Get("/seasons/search", seasonH.Search)
		r.Get("/seasons/{id}", seasonH.Get)
		r.Get("/seasons/{id}/places", seasonH.ListPlacesForSeason)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/auth/logout", logout.New(logger).ServeHTTP)
			r.Get("/auth/me", me.New(logger).ServeHTTP)
			r.Post("/auth/change-password", changepassword.New(logger, s.Auth).ServeHTTP)

			// Группа администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(logger))

				r.Get("/auth/admin/users", adminUsersH.List)
				r.Post("/auth/admin/create-user", adminUsersH.Create)
				r.Put("/auth/admin/users/{id}/activate", adminUsersH.Activate)
				r.Put("/auth/admin/users/{id}/deactivate", adminUsersH.Deactivate)
				r.Put("/auth/admin/users/{id}/promote", adminUsersH.Promote)
				r.Put("/auth/admin/users/{id}/demote", adminUsersH.Demote)
				r.Put("/auth/admin/users/{id}/reset-password", adminUsersH.ResetPassword)
				r.Delete("/auth/admin/users/{id}", adminUsersH.Delete)

				r.Post("/places", placeH.Create)
				r.Put("/places/{id}", placeH.Update)
				r.Delete("/places/{id}", placeH.Delete)
				r.Put("/places/{id}/toggle-featured", placeH.ToggleFeatured)
				r.Put("/places/{id}/seasons", seasonH.SetAvailability)
				r.Delete("/places/{id}/seasons/{seasonID}", seasonH.RemoveAvailability)

				r.Post("/temples", templeH.Create)
				r.Put("/temples/{id}", templeH.Update)
				r.Delete("/temples/{id}", templeH.Delete)
				r.Put("/temples/{id}/toggle-featured", templeH.ToggleFeatured)

				r.Post("/sites", siteH.Create)
				r.Put("/sites/{id}", siteH.Update)
				r.Delete("/sites/{id}", siteH.Delete)
				r.Put("/sites/{id}/toggle-featured", siteH.ToggleFeatured)

				r.Post("/events", eventH.Create)
				r.Put("/events/{id}", eventH.Update)
				r.Delete("/events/{id}", eventH.Delete)
				r.Put("/events/{id}/toggle-featured", eventH.ToggleFeatured)
				r.Post("/events/{id}/refresh-status", eventH.RefreshStatus)
				r.Post("/events/refresh-statuses", eventH.RefreshStatuses)

				r.Post("/galleries", galleryH.Create)
				r.Put("/galleries/{id}", galleryH.Update)
				r.Delete("/galleries/{id}", galleryH.Delete)
				r.Put("/galleries/{id}/toggle-featured", galleryH.ToggleFeatured)
				r.Post("/galleries/{id}/images", galleryH.AddImage)
				r.Put("/galleries/{id}/images/reorder", galleryH.Reorder)
				r.Delete("/galleries/{id}/images/{imageID}", galleryH.DeleteImage)
				r.Put("/galleries/{id}/featured-image", galleryH.SetFeaturedImage)

				r.Get("/reviews", reviewH.List)
				r.Get("/reviews/pending", reviewH.ListPending)
				r.Put("/reviews/{id}/approve", reviewH.Approve)
				r.Put("/reviews/{id}/reject", reviewH.Reject)
				r.Put("/reviews/{id}/verify", reviewH.SetVerified)
				r.Delete("/reviews/{id}", reviewH.Delete)

				r.Post("/seasons", seasonH.Create)
				r.Put("/seasons/{id}", seasonH.Update)
				r.Delete("/seasons/{id}", seasonH.Delete)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.OKWithData(map[string]any{"status": "healthy"}))
	})
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
