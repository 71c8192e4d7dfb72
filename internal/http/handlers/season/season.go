// Package season реализует HTTP-обработчики справочника сезонов
// и сезонной пригодности мест для посещения.
package season

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

	"github.com/osam-tourism/tourism-api/internal/http/response"
	"github.com/osam-tourism/tourism-api/internal/lib/sl"
	"github.com/osam-tourism/tourism-api/internal/models"
)

// Handler обрабатывает HTTP-запросы справочника сезонов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики сезонов и сезонной пригодности.
type Service interface {
	Create(ctx context.Context, req models.DummySeason) (int64, error)
	Get(ctx context.Context, id int64) (*models.Season, error)
	List(ctx context.Context, limit, offset int) ([]*models.Season, error)
	Update(ctx context.Context, id int64, req models.DummySeasonUpdate) (*models.Season, error)
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, name string) ([]*models.Season, error)
	SetAvailability(ctx context.Context, placeID int64, req models.DummyAvailability) (int64, error)
	ListAvailabilityForPlace(ctx context.Context, placeID int64) ([]*models.SeasonalAvailability, error)
	ListPlacesForSeason(ctx context.Context, seasonID int64) ([]*models.Place, error)
	RemoveAvailability(ctx context.Context, placeID, seasonID int64) error
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

func pathID(w http.ResponseWriter, r *http.Request, log *slog.Logger, param, what string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		log.Error("invalid "+what, sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid "+what))
		return 0, false
	}
	return id, true
}

func renderSeasons(w http.ResponseWriter, r *http.Request, seasons []*models.Season) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"seasons": seasons,
		"count":   len(seasons),
	}))
}

// Create godoc
// @Summary Создать сезон
// @Tags Seasons
// @Accept  json
// @Produce  json
// @Param request body models.DummySeason true "Данные нового сезона"
// @Success 200 {object} map[string]any "Сезон создан"
// @Failure 409 {object} response.ErrorResponse "Сезон с таким именем уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /seasons [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.season.create"
	log := h.opLogger(r, op)

	var req models.DummySeason
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

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create season", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("season created", slog.Int64("season_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{"season_id": id}))
}

// Get godoc
// @Summary Карточка сезона
// @Tags Seasons
// @Produce  json
// @Param id path int true "ID сезона"
// @Success 200 {object} map[string]any "Данные сезона"
// @Failure 404 {object} response.ErrorResponse "Сезон не найден"
// @Router /seasons/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.season.get"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "season id")
	if !ok {
		return
	}

	season, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to get season", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(season))
}

// List godoc
// @Summary Список сезонов
// @Description Сезоны упорядочены по месяцу начала.
// @Tags Seasons
// @Produce  json
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список сезонов"
// @Router /seasons [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.season.list"
	log := h.opLogger(r, op)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	seasons, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list seasons", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderSeasons(w, r, seasons)
}

// Update godoc
// @Summary Обновить сезон
// @Tags Seasons
// @Accept  json
// @Produce  json
// @Param id path int true "ID сезона"
// @Param request body models.DummySeasonUpdate true "Изменяемые поля"
// @Success 200 {object} map[string]any "Обновленный сезон"
// @Failure 404 {object} response.ErrorResponse "Сезон не найден"
// @Security BearerAuth
// @Router /seasons/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.season.update"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "season id")
	if !ok {
		return
	}

	var req models.DummySeasonUpdate
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

	season, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update season", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("season updated", slog.Int64("season_id", id))
	render.JSON(w, r, response.OKWithData(season))
}

// Delete godoc
// @Summary Удалить сезон
// @Description Удаляет сезон вместе с привязками мест.
// @Tags Seasons
// @Produce  json
// @Param id path int true "ID сезона"
// @Success 200 {object} response.Response "Сезон удален"
// @Failure 404 {object} response.ErrorResponse "Сезон не найден"
// @Security BearerAuth
// @Router /seasons/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.season.delete"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "season id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error("failed to delete season", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("season deleted", slog.Int64("season_id", id))
	render.JSON(w, r, response.OK())
}

// Search godoc
// @Summary Поиск сезонов по имени
// @Tags Seasons
// @Produce  json
// @Param name query string true "Подстрока имени"
// @Success 200 {object} map[string]any "Найденные сезоны"
// @Failure 400 {object} response.ErrorResponse "Не задан параметр поиска"
// @Router /seasons/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.season.search"
	log := h.opLogger(r, op)

	name := r.URL.Query().Get("name")
	if name == "" {
		log.Error("missing search query")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("query parameter name is required"))
		return
	}

	seasons, err := h.service.SearchByName(r.Context(), name)
	if err != nil {
		log.Error("failed to search seasons", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderSeasons(w, r, seasons)
}

// SetAvailability godoc
// @Summary Привязать место к сезону
// @Description Создает или обновляет рекомендацию посещения места в сезоне.
// @Tags Seasons
// @Accept  json
// @Produce  json
// @Param id path int true "ID места"
// @Param request body models.DummyAvailability true "Сезон и рекомендация"
// @Success 200 {object} map[string]any "Привязка сохранена"
// @Failure 404 {object} response.ErrorResponse "Место или сезон не найдены"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /places/{id}/seasons [put]
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.season.setavailability"
	log := h.opLogger(r, op)

	placeID, ok := pathID(w, r, log, "id", "place id")
	if !ok {
		return
	}

	var req models.DummyAvailability
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

	id, err := h.service.SetAvailability(r.Context(), placeID, req)
	if err != nil {
		log.Error("failed to set availability", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("availability set", slog.Int64("place_id", placeID), slog.Int64("season_id", req.SeasonID))
	render.JSON(w, r, response.OKWithData(map[string]any{"availability_id": id}))
}

// ListAvailabilityForPlace godoc
// @Summary Сезонные рекомендации места
// @Tags Seasons
// @Produce  json
// @Param id path int true "ID места"
// @Success 200 {object} map[string]any "Рекомендации по сезонам"
// @Failure 404 {object} response.ErrorResponse "Место не найдено"
// @Router /places/{id}/seasons [get]
func (h *Handler) ListAvailabilityForPlace(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.season.listavailabilityforplace"
	log := h.opLogger(r, op)

	placeID, ok := pathID(w, r, log, "id", "place id")
	if !ok {
		return
	}

	availability, err := h.service.ListAvailabilityForPlace(r.Context(), placeID)
	if err != nil {
		log.Error("failed to list availability", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"availability": availability,
		"count":        len(availability),
	}))
}

// ListPlacesForSeason godoc
// @Summary Места, рекомендованные в сезоне
// @Tags Seasons
// @Produce  json
// @Param id path int true "ID сезона"
// @Success 200 {object} map[string]any "Места сезона"
// @Failure 404 {object} response.ErrorResponse "Сезон не найден"
// @Router /seasons/{id}/places [get]
func (h *Handler) ListPlacesForSeason(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.season.listplacesforseason"
	log := h.opLogger(r, op)

	seasonID, ok := pathID(w, r, log, "id", "season id")
	if !ok {
		return
	}

	places, err := h.service.ListPlacesForSeason(r.Context(), seasonID)
	if err != nil {
		log.Error("failed to list places for season", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"places": places,
		"count":  len(places),
	}))
}

// RemoveAvailability godoc
// @Summary Удалить привязку места к сезону
// @Tags Seasons
// @Produce  json
// @Param id path int true "ID места"
// @Param seasonID path int true "ID сезона"
// @Success 200 {object} response.Response "Привязка удалена"
// @Failure 404 {object} response.ErrorResponse "Привязка не найдена"
// @Security BearerAuth
// @Router /places/{id}/seasons/{seasonID} [delete]
func (h *Handler) RemoveAvailability(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.season.removeavailability"
	log := h.opLogger(r, op)

	placeID, ok := pathID(w, r, log, "id", "place id")
	if !ok {
		return
	}
	seasonID, ok := pathID(w, r, log, "seasonID", "season id")
	if !ok {
		return
	}

	if err := h.service.RemoveAvailability(r.Context(), placeID, seasonID); err != nil {
		log.Error("failed to remove availability", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("availability removed", slog.Int64("place_id", placeID), slog.Int64("season_id", seasonID))
	render.JSON(w, r, response.OK())
}
