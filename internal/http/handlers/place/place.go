// Package place реализует HTTP-обработчики каталога туристических мест.
//
// Чтение (списки, карточка, поиск, фильтры) открыто без аутентификации,
// создание, изменение и удаление доступны только администраторам.
package place

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/osam-tourism/tourism-api/internal/http/middlewarectx"
	"github.com/osam-tourism/tourism-api/internal/http/response"
	"github.com/osam-tourism/tourism-api/internal/lib/sl"
	"github.com/osam-tourism/tourism-api/internal/models"
)

// Handler обрабатывает HTTP-запросы каталога мест.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики каталога мест.
type Service interface {
	Create(ctx context.Context, req models.DummyPlace, createdBy int64) (int64, error)
	Get(ctx context.Context, id int64) (*models.Place, error)
	List(ctx context.Context, limit, offset int) ([]*models.Place, error)
	Update(ctx context.Context, id int64, req models.DummyPlaceUpdate) (*models.Place, error)
	Delete(ctx context.Context, id int64) error
	ToggleFeatured(ctx context.Context, id int64) (*models.Place, error)
	SearchByName(ctx context.Context, name string) ([]*models.Place, error)
	SearchByLocation(ctx context.Context, location string) ([]*models.Place, error)
	FilterByCategory(ctx context.Context, category string) ([]*models.Place, error)
	FilterByAccessibility(ctx context.Context, accessibility string) ([]*models.Place, error)
	ListFeatured(ctx context.Context) ([]*models.Place, error)
	ListPopular(ctx context.Context, minViews, limit int) ([]*models.Place, error)
	ListFree(ctx context.Context) ([]*models.Place, error)
	ListWithFacilities(ctx context.Context, f models.PlaceFacilityFilter) ([]*models.Place, error)
	Summary(ctx context.Context, id int64) (*models.PlaceSummary, error)
	EntryFeeDisplay(ctx context.Context, id int64) (*models.EntryFeeDisplay, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) opLogger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func placeID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid place id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid place id"))
		return 0, false
	}
	return id, true
}

func renderPlaces(w http.ResponseWriter, r *http.Request, places []*models.Place) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"places": places,
		"count":  len(places),
	}))
}

// Create godoc
// @Summary Создать место
// @Tags Places
// @Accept  json
// @Produce  json
// @Param request body models.DummyPlace true "Данные нового места"
// @Success 200 {object} map[string]any "Место создано"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /places [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.create"
	log := h.opLogger(r, op)

	var req models.DummyPlace
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Create(r.Context(), req, user.ID)
	if err != nil {
		log.Error("failed to create place", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("place created", slog.Int64("place_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{"place_id": id}))
}

// Get godoc
// @Summary Карточка места
// @Description Возвращает место и увеличивает счётчик просмотров.
// @Tags Places
// @Produce  json
// @Param id path int true "ID места"
// @Success 200 {object} map[string]any "Данные места"
// @Failure 404 {object} response.ErrorResponse "Место не найдено"
// @Router /places/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.get"
	log := h.opLogger(r, op)

	id, ok := placeID(w, r, log)
	if !ok {
		return
	}

	place, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to get place", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(place))
}

// List godoc
// @Summary Список мест
// @Tags Places
// @Produce  json
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список мест"
// @Router /places [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.list"
	log := h.opLogger(r, op)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	places, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list places", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderPlaces(w, r, places)
}

// Update godoc
// @Summary Обновить место
// @Description Частичное обновление: меняются только переданные поля.
// @Tags Places
// @Accept  json
// @Produce  json
// @Param id path int true "ID места"
// @Param request body models.DummyPlaceUpdate true "Изменяемые поля"
// @Success 200 {object} map[string]any "Обновленное место"
// @Failure 404 {object} response.ErrorResponse "Место не найдено"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /places/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.update"
	log := h.opLogger(r, op)

	id, ok := placeID(w, r, log)
	if !ok {
		return
	}

	var req models.DummyPlaceUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	place, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update place", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("place updated", slog.Int64("place_id", id))
	render.JSON(w, r, response.OKWithData(place))
}

// Delete godoc
// @Summary Удалить место
// @Description Удаляет место вместе с его галереями, отзывами и сезонными привязками.
// @Tags Places
// @Produce  json
// @Param id path int true "ID места"
// @Success 200 {object} response.Response "Место удалено"
// @Failure 404 {object} response.ErrorResponse "Место не найдено"
// @Security BearerAuth
// @Router /places/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.delete"
	log := h.opLogger(r, op)

	id, ok := placeID(w, r, log)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error("failed to delete place", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("place deleted", slog.Int64("place_id", id))
	render.JSON(w, r, response.OK())
}

// ToggleFeatured godoc
// @Summary Переключить признак рекомендованного места
// @Tags Places
// @Produce  json
// @Param id path int true "ID места"
// @Success 200 {object} map[string]any "Обновленное место"
// @Failure 404 {object} response.ErrorResponse "Место не найдено"
// @Security BearerAuth
// @Router /places/{id}/toggle-featured [put]
func (h *Handler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.togglefeatured"
	log := h.opLogger(r, op)

	id, ok := placeID(w, r, log)
	if !ok {
		return
	}

	place, err := h.service.ToggleFeatured(r.Context(), id)
	if err != nil {
		log.Error("failed to toggle featured", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("featured toggled", slog.Int64("place_id", id), slog.Bool("is_featured", place.IsFeatured))
	render.JSON(w, r, response.OKWithData(place))
}

// Search godoc
// @Summary Поиск мест
// @Description Ищет по подстроке имени (?name=) или локации (?location=).
// @Tags Places
// @Produce  json
// @Param name query string false "Подстрока имени"
// @Param location query string false "Подстрока локации"
// @Success 200 {object} map[string]any "Найденные места"
// @Failure 400 {object} response.ErrorResponse "Не задан параметр поиска"
// @Router /places/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.search"
	log := h.opLogger(r, op)

	var (
		places []*models.Place
		err    error
	)
	switch {
	case r.URL.Query().Get("name") != "":
		places, err = h.service.SearchByName(r.Context(), r.URL.Query().Get("name"))
	case r.URL.Query().Get("location") != "":
		places, err = h.service.SearchByLocation(r.Context(), r.URL.Query().Get("location"))
	default:
		log.Error("missing search query")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("query parameter name or location is required"))
		return
	}
	if err != nil {
		log.Error("failed to search places", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderPlaces(w, r, places)
}

// FilterByCategory godoc
// @Summary Места по категории
// @Tags Places
// @Produce  json
// @Param category path string true "Категория места"
// @Success 200 {object} map[string]any "Места выбранной категории"
// @Failure 422 {object} response.ErrorResponse "Недопустимая категория"
// @Router /places/category/{category} [get]
func (h *Handler) FilterByCategory(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.filterbycategory"
	log := h.opLogger(r, op)

	places, err := h.service.FilterByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		log.Error("failed to filter places by category", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderPlaces(w, r, places)
}

// FilterByAccessibility godoc
// @Summary Места по уровню доступности
// @Tags Places
// @Produce  json
// @Param level path string true "Уровень доступности"
// @Success 200 {object} map[string]any "Места выбранного уровня"
// @Failure 422 {object} response.ErrorResponse "Недопустимый уровень"
// @Router /places/accessibility/{level} [get]
func (h *Handler) FilterByAccessibility(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.filterbyaccessibility"
	log := h.opLogger(r, op)

	places, err := h.service.FilterByAccessibility(r.Context(), chi.URLParam(r, "level"))
	if err != nil {
		log.Error("failed to filter places by accessibility", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderPlaces(w, r, places)
}

// ListFeatured godoc
// @Summary Рекомендованные места
// @Tags Places
// @Produce  json
// @Success 200 {object} map[string]any "Рекомендованные места"
// @Router /places/featured [get]
func (h *Handler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.listfeatured"
	log := h.opLogger(r, op)

	places, err := h.service.ListFeatured(r.Context())
	if err != nil {
		log.Error("failed to list featured places", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderPlaces(w, r, places)
}

// ListPopular godoc
// @Summary Популярные места
// @Description Сортировка по числу просмотров. Параметр limit необязателен.
// @Tags Places
// @Produce  json
// @Param min_views query int false "Порог просмотров" default(100)
// @Param limit query int false "Максимум записей" default(10)
// @Success 200 {object} map[string]any "Популярные места"
// @Router /places/popular [get]
func (h *Handler) ListPopular(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.listpopular"
	log := h.opLogger(r, op)

	minViews := -1
	if v := r.URL.Query().Get("min_views"); v != "" {
		minViews, _ = strconv.Atoi(v)
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	places, err := h.service.ListPopular(r.Context(), minViews, limit)
	if err != nil {
		log.Error("failed to list popular places", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderPlaces(w, r, places)
}

// ListFree godoc
// @Summary Бесплатные места
// @Tags Places
// @Produce  json
// @Success 200 {object} map[string]any "Места с бесплатным входом"
// @Router /places/free [get]
func (h *Handler) ListFree(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.listfree"
	log := h.opLogger(r, op)

	places, err := h.service.ListFree(r.Context())
	if err != nil {
		log.Error("failed to list free places", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderPlaces(w, r, places)
}

// ListWithFacilities godoc
// @Summary Места с удобствами
// @Description Фильтрует по флагам parking, restrooms и food. Незаданный флаг не ограничивает выборку.
// @Tags Places
// @Produce  json
// @Param parking query bool false "Есть парковка"
// @Param restrooms query bool false "Есть туалеты"
// @Param food query bool false "Есть еда поблизости"
// @Success 200 {object} map[string]any "Места с выбранными удобствами"
// @Router /places/facilities [get]
func (h *Handler) ListWithFacilities(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.listwithfacilities"
	log := h.opLogger(r, op)

	f := models.PlaceFacilityFilter{
		Parking:   r.URL.Query().Get("parking") == "true",
		Restrooms: r.URL.Query().Get("restrooms") == "true",
		Food:      r.URL.Query().Get("food") == "true",
	}

	places, err := h.service.ListWithFacilities(r.Context(), f)
	if err != nil {
		log.Error("failed to list places with facilities", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderPlaces(w, r, places)
}

// Summary godoc
// @Summary Сводная карточка места
// @Description Возвращает сводку по месту и увеличивает счётчик просмотров.
// @Tags Places
// @Produce  json
// @Param id path int true "ID места"
// @Success 200 {object} map[string]any "Сводка места"
// @Failure 404 {object} response.ErrorResponse "Место не найдено"
// @Router /places/{id}/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.summary"
	log := h.opLogger(r, op)

	id, ok := placeID(w, r, log)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), id)
	if err != nil {
		log.Error("failed to get place summary", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(summary))
}

// EntryFeeDisplay godoc
// @Summary Плата за вход
// @Tags Places
// @Produce  json
// @Param id path int true "ID места"
// @Success 200 {object} map[string]any "Плата за вход с валютой"
// @Failure 404 {object} response.ErrorResponse "Место не найдено"
// @Router /places/{id}/entry-fee [get]
func (h *Handler) EntryFeeDisplay(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.entryfeedisplay"
	log := h.opLogger(r, op)

	id, ok := placeID(w, r, log)
	if !ok {
		return
	}

	fee, err := h.service.EntryFeeDisplay(r.Context(), id)
	if err != nil {
		log.Error("failed to get entry fee", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(fee))
}
