// Package films содержит HTTP-обработчики для фильмов, лайков и рейтинга.
package films

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/filmorate/adapters/http/dto"
	"filmorate/internal/filmorate/adapters/http/response"
	"filmorate/internal/filmorate/ports/services"
	"filmorate/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateFilm = "handling create film request"
	LogHandlerUpdateFilm = "handling update film request"
	LogHandlerGetFilm    = "handling get film request"
	LogHandlerListFilms  = "handling list films request"
	LogHandlerDeleteFilm = "handling delete film request"
	LogHandlerLike       = "handling like request"
	LogHandlerUnlike     = "handling unlike request"
	LogHandlerPopular    = "handling popular films request"

	ErrMsgInvalidCount = "count must be an integer"
)

// Handler обработчик HTTP-запросов для работы с фильмами.
type Handler struct {
	filmService  services.FilmService
	defaultCount int
}

// NewHandler создает новый экземпляр обработчика фильмов.
// defaultCount используется, если в запросе рейтинга не передан count.
func NewHandler(filmService services.FilmService, defaultCount int) *Handler {
	return &Handler{
		filmService:  filmService,
		defaultCount: defaultCount,
	}
}

// CreateFilm обрабатывает POST /films.
func (h *Handler) CreateFilm(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateFilm"))
	log.Debug(requestCtx, LogHandlerCreateFilm)

	var req dto.FilmRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(requestCtx, response.ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fmt.Errorf("%w: %s", dto.ErrValidation, response.ErrMsgInvalidRequestBody))
	}

	film, err := req.ToFilm()
	if err != nil {
		log.Warn(requestCtx, "film validation failed", zap.Error(err))
		return response.Error(ctx, err)
	}

	created, err := h.filmService.Create(requestCtx, film)
	if err != nil {
		log.Error(requestCtx, "failed to create film", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusCreated, dto.NewFilmResponse(created))
}

// UpdateFilm обрабатывает PUT /films. Id фильма передается в теле.
func (h *Handler) UpdateFilm(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateFilm"))
	log.Debug(requestCtx, LogHandlerUpdateFilm)

	var req dto.FilmRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(requestCtx, response.ErrMsgInvalidRequestBody, zap.Error(err))
		return response.Error(ctx, fmt.Errorf("%w: %s", dto.ErrValidation, response.ErrMsgInvalidRequestBody))
	}

	film, err := req.ToFilmUpdate()
	if err != nil {
		log.Warn(requestCtx, "film validation failed", zap.Error(err))
		return response.Error(ctx, err)
	}

	updated, err := h.filmService.Update(requestCtx, film)
	if err != nil {
		log.Error(requestCtx, "failed to update film", zap.Error(err), zap.Int64("film_id", film.ID))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewFilmResponse(updated))
}

// GetFilm обрабатывает GET /films/:id.
func (h *Handler) GetFilm(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetFilm"))
	log.Debug(requestCtx, LogHandlerGetFilm)

	id, err := response.ParamID(ctx, "id")
	if err != nil {
		return response.Error(ctx, err)
	}

	film, err := h.filmService.Get(requestCtx, id)
	if err != nil {
		log.Error(requestCtx, "failed to get film", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewFilmResponse(film))
}

// ListFilms обрабатывает GET /films.
func (h *Handler) ListFilms(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListFilms"))
	log.Debug(requestCtx, LogHandlerListFilms)

	films, err := h.filmService.List(requestCtx)
	if err != nil {
		log.Error(requestCtx, "failed to list films", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewFilmResponses(films))
}

// DeleteFilm обрабатывает DELETE /films/:id.
func (h *Handler) DeleteFilm(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteFilm"))
	log.Debug(requestCtx, LogHandlerDeleteFilm)

	id, err := response.ParamID(ctx, "id")
	if err != nil {
		return response.Error(ctx, err)
	}

	if err := h.filmService.Delete(requestCtx, id); err != nil {
		log.Error(requestCtx, "failed to delete film", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.NoContent(ctx)
}

// Like обрабатывает PUT /films/:id/like/:userId.
func (h *Handler) Like(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Like"))
	log.Debug(requestCtx, LogHandlerLike)

	filmID, userID, err := likeParams(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	if err := h.filmService.Like(requestCtx, filmID, userID); err != nil {
		log.Warn(requestCtx, "failed to like film", zap.Error(err))
		return response.Error(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusOK)
}

// Unlike обрабатывает DELETE /films/:id/like/:userId.
func (h *Handler) Unlike(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Unlike"))
	log.Debug(requestCtx, LogHandlerUnlike)

	filmID, userID, err := likeParams(ctx)
	if err != nil {
		return response.Error(ctx, err)
	}

	if err := h.filmService.Unlike(requestCtx, filmID, userID); err != nil {
		log.Warn(requestCtx, "failed to unlike film", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.NoContent(ctx)
}

// Popular обрабатывает GET /films/popular?count=N.
func (h *Handler) Popular(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Popular"))
	log.Debug(requestCtx, LogHandlerPopular)

	count := h.defaultCount
	if raw := ctx.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return response.Error(ctx, fmt.Errorf("%w: %s", dto.ErrValidation, ErrMsgInvalidCount))
		}
		count = parsed
	}

	films, err := h.filmService.Popular(requestCtx, count)
	if err != nil {
		log.Error(requestCtx, "failed to get popular films", zap.Error(err))
		return response.Error(ctx, err)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.NewFilmResponses(films))
}

func likeParams(ctx fiber.Ctx) (int64, int64, error) {
	filmID, err := response.ParamID(ctx, "id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := response.ParamID(ctx, "userId")
	if err != nil {
		return 0, 0, err
	}
	return filmID, userID, nil
}
