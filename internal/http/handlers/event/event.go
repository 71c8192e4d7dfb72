// Package event реализует HTTP-обработчики календаря событий.
//
// Помимо CRUD и фильтров календарь поддерживает явный пересчёт статуса:
// POST /events/{id}/refresh-status для одного события и
// POST /events/refresh-statuses для всего календаря.
package event

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

// Handler обрабатывает HTTP-запросы календаря событий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики календаря событий.
type Service interface {
	Create(ctx context.Context, req models.DummyEvent, createdBy int64) (int64, error)
	Get(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, limit, offset int) ([]*models.Event, error)
	Update(ctx context.Context, id int64, req models.DummyEventUpdate) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
	RefreshStatus(ctx context.Context, id int64) (*models.Event, error)
	RefreshStatuses(ctx context.Context) (int, error)
	Summary(ctx context.Context, id int64) (*models.EventSummary, error)
	ToggleFeatured(ctx context.Context, id int64) (*models.Event, error)
	SearchByName(ctx context.Context, name string) ([]*models.Event, error)
	FilterByType(ctx context.Context, eventType string) ([]*models.Event, error)
	FilterByStatus(ctx context.Context, status string) ([]*models.Event, error)
	ListByDateRange(ctx context.Context, fromStr, toStr string) ([]*models.Event, error)
	ListAnnual(ctx context.Context) ([]*models.Event, error)
	ListFeatured(ctx context.Context) ([]*models.Event, error)
	ListFree(ctx context.Context) ([]*models.Event, error)
	ListWithFacilities(ctx context.Context, f models.EventFacilityFilter) ([]*models.Event, error)
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

func eventID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid event id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid event id"))
		return 0, false
	}
	return id, true
}

func renderEvents(w http.ResponseWriter, r *http.Request, events []*models.Event) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"events": events,
		"count":  len(events),
	}))
}

// Create godoc
// @Summary Создать событие
// @Description Статус нового события выводится из дат начала и окончания.
// @Tags Events
// @Accept  json
// @Produce  json
// @Param request body models.DummyEvent true "Данные нового события"
// @Success 200 {object} map[string]any "Событие создано"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /events [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.create"
	log := h.opLogger(r, op)

	var req models.DummyEvent
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
		log.Error("failed to create event", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("event created", slog.Int64("event_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{"event_id": id}))
}

// Get godoc
// @Summary Карточка события
// @Tags Events
// @Produce  json
// @Param id path int true "ID события"
// @Success 200 {object} map[string]any "Данные события"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Router /events/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.get"
	log := h.opLogger(r, op)

	id, ok := eventID(w, r, log)
	if !ok {
		return
	}

	event, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to get event", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(event))
}

// List godoc
// @Summary Список событий
// @Tags Events
// @Produce  json
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список событий"
// @Router /events [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.list"
	log := h.opLogger(r, op)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	events, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderEvents(w, r, events)
}

// Update godoc
// @Summary Обновить событие
// @Description Смена дат не пересчитывает статус, для этого есть refresh-status.
// @Tags Events
// @Accept  json
// @Produce  json
// @Param id path int true "ID события"
// @Param request body models.DummyEventUpdate true "Изменяемые поля"
// @Success 200 {object} map[string]any "Обновленное событие"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Security BearerAuth
// @Router /events/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.update"
	log := h.opLogger(r, op)

	id, ok := eventID(w, r, log)
	if !ok {
		return
	}

	var req models.DummyEventUpdate
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

	event, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update event", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("event updated", slog.Int64("event_id", id))
	render.JSON(w, r, response.OKWithData(event))
}

// Delete godoc
// @Summary Удалить событие
// @Tags Events
// @Produce  json
// @Param id path int true "ID события"
// @Success 200 {object} response.Response "Событие удалено"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Security BearerAuth
// @Router /events/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.delete"
	log := h.opLogger(r, op)

	id, ok := eventID(w, r, log)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error("failed to delete event", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("event deleted", slog.Int64("event_id", id))
	render.JSON(w, r, response.OK())
}

// RefreshStatus godoc
// @Summary Пересчитать статус события
// @Tags Events
// @Produce  json
// @Param id path int true "ID события"
// @Success 200 {object} map[string]any "Событие с актуальным статусом"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Security BearerAuth
// @Router /events/{id}/refresh-status [post]
func (h *Handler) RefreshStatus(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.refreshstatus"
	log := h.opLogger(r, op)

	id, ok := eventID(w, r, log)
	if !ok {
		return
	}

	event, err := h.service.RefreshStatus(r.Context(), id)
	if err != nil {
		log.Error("failed to refresh event status", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("event status refreshed", slog.Int64("event_id", id), slog.String("status", event.Status))
	render.JSON(w, r, response.OKWithData(event))
}

// RefreshStatuses godoc
// @Summary Пересчитать статусы всех событий
// @Tags Events
// @Produce  json
// @Success 200 {object} map[string]any "Число обновленных событий"
// @Security BearerAuth
// @Router /events/refresh-statuses [post]
func (h *Handler) RefreshStatuses(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.refreshstatuses"
	log := h.opLogger(r, op)

	updated, err := h.service.RefreshStatuses(r.Context())
	if err != nil {
		log.Error("failed to refresh event statuses", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("event statuses refreshed", slog.Int("updated", updated))
	render.JSON(w, r, response.OKWithData(map[string]any{"updated": updated}))
}

// ToggleFeatured godoc
// @Summary Переключить признак рекомендованного события
// @Tags Events
// @Produce  json
// @Param id path int true "ID события"
// @Success 200 {object} map[string]any "Обновленное событие"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Security BearerAuth
// @Router /events/{id}/toggle-featured [put]
func (h *Handler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.togglefeatured"
	log := h.opLogger(r, op)

	id, ok := eventID(w, r, log)
	if !ok {
		return
	}

	event, err := h.service.ToggleFeatured(r.Context(), id)
	if err != nil {
		log.Error("failed to toggle featured", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("featured toggled", slog.Int64("event_id", id), slog.Bool("is_featured", event.IsFeatured))
	render.JSON(w, r, response.OKWithData(event))
}

// Search godoc
// @Summary Поиск событий по имени
// @Tags Events
// @Produce  json
// @Param name query string true "Подстрока имени"
// @Success 200 {object} map[string]any "Найденные события"
// @Failure 400 {object} response.ErrorResponse "Не задан параметр поиска"
// @Router /events/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.search"
	log := h.opLogger(r, op)

	name := r.URL.Query().Get("name")
	if name == "" {
		log.Error("missing search query")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("query parameter name is required"))
		return
	}

	events, err := h.service.SearchByName(r.Context(), name)
	if err != nil {
		log.Error("failed to search events", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderEvents(w, r, events)
}

// FilterByType godoc
// @Summary События по типу
// @Tags Events
// @Produce  json
// @Param type path string true "Тип события"
// @Success 200 {object} map[string]any "События выбранного типа"
// @Failure 422 {object} response.ErrorResponse "Недопустимый тип"
// @Router /events/type/{type} [get]
func (h *Handler) FilterByType(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.filterbytype"
	log := h.opLogger(r, op)

	events, err := h.service.FilterByType(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		log.Error("failed to filter events by type", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderEvents(w, r, events)
}

// FilterByStatus godoc
// @Summary События по статусу
// @Tags Events
// @Produce  json
// @Param status path string true "Статус события"
// @Success 200 {object} map[string]any "События выбранного статуса"
// @Failure 422 {object} response.ErrorResponse "Недопустимый статус"
// @Router /events/status/{status} [get]
func (h *Handler) FilterByStatus(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.filterbystatus"
	log := h.opLogger(r, op)

	events, err := h.service.FilterByStatus(r.Context(), chi.URLParam(r, "status"))
	if err != nil {
		log.Error("failed to filter events by status", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderEvents(w, r, events)
}

// ListByDateRange godoc
// @Summary События в диапазоне дат
// @Description Отбирает события с датой начала между from и to включительно.
// @Tags Events
// @Produce  json
// @Param from query string true "Начало диапазона (2006-01-02)"
// @Param to query string true "Конец диапазона (2006-01-02)"
// @Success 200 {object} map[string]any "События диапазона"
// @Failure 422 {object} response.ErrorResponse "Некорректный диапазон"
// @Router /events/date-range [get]
func (h *Handler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.listbydaterange"
	log := h.opLogger(r, op)

	events, err := h.service.ListByDateRange(r.Context(),
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		log.Error("failed to list events by date range", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderEvents(w, r, events)
}

// ListAnnual godoc
// @Summary Ежегодные события
// @Tags Events
// @Produce  json
// @Success 200 {object} map[string]any "Ежегодные события"
// @Router /events/annual [get]
func (h *Handler) ListAnnual(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.listannual"
	log := h.opLogger(r, op)

	events, err := h.service.ListAnnual(r.Context())
	if err != nil {
		log.Error("failed to list annual events", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderEvents(w, r, events)
}

// ListFeatured godoc
// @Summary Рекомендованные события
// @Tags Events
// @Produce  json
// @Success 200 {object} map[string]any "Рекомендованные события"
// @Router /events/featured [get]
func (h *Handler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.listfeatured"
	log := h.opLogger(r, op)

	events, err := h.service.ListFeatured(r.Context())
	if err != nil {
		log.Error("failed to list featured events", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderEvents(w, r, events)
}

// ListFree godoc
// @Summary Бесплатные события
// @Tags Events
// @Produce  json
// @Success 200 {object} map[string]any "Бесплатные события"
// @Router /events/free [get]
func (h *Handler) ListFree(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.listfree"
	log := h.opLogger(r, op)

	events, err := h.service.ListFree(r.Context())
	if err != nil {
		log.Error("failed to list free events", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderEvents(w, r, events)
}

// ListWithFacilities godoc
// @Summary События с удобствами
// @Description Фильтрует по флагам parking и accommodation. Незаданный флаг не ограничивает выборку.
// @Tags Events
// @Produce  json
// @Param parking query bool false "Есть парковка"
// @Param accommodation query bool false "Есть размещение"
// @Success 200 {object} map[string]any "События с выбранными удобствами"
// @Router /events/facilities [get]
func (h *Handler) ListWithFacilities(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.listwithfacilities"
	log := h.opLogger(r, op)

	f := models.EventFacilityFilter{
		Parking:       r.URL.Query().Get("parking") == "true",
		Accommodation: r.URL.Query().Get("accommodation") == "true",
	}

	events, err := h.service.ListWithFacilities(r.Context(), f)
	if err != nil {
		log.Error("failed to list events with facilities", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderEvents(w, r, events)
}

// Summary godoc
// @Summary Сводная карточка события
// @Description Возвращает сводку по событию, предварительно актуализировав его статус.
// @Tags Events
// @Produce  json
// @Param id path int true "ID события"
// @Success 200 {object} map[string]any "Сводка события"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Router /events/{id}/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.summary"
	log := h.opLogger(r, op)

	id, ok := eventID(w, r, log)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), id)
	if err != nil {
		log.Error("failed to get event summary", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(summary))
}
