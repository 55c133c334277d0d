package app

import (
	"context"
	"fmt"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/metrics"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/internal/filmorate/ports/services"
)

// FilmUseCase реализует сценарии работы с фильмами для HTTP-адаптера.
type FilmUseCase struct {
	films     repositories.FilmRepository
	relations *RelationshipService
	popular   *PopularCache
}

var _ services.FilmService = (*FilmUseCase)(nil)

// NewFilmUseCase создает новый экземпляр FilmUseCase.
func NewFilmUseCase(films repositories.FilmRepository, relations *RelationshipService, popular *PopularCache) *FilmUseCase {
	return &FilmUseCase{
		films:     films,
		relations: relations,
		popular:   popular,
	}
}

// Create сохраняет новый фильм.
func (uc *FilmUseCase) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	created, err := uc.films.Create(ctx, film)
	if err != nil {
		return nil, fmt.Errorf("failed to create film: %w", err)
	}
	metrics.FilmCreated()
	uc.popular.Invalidate(ctx)
	return created, nil
}

// Update заменяет данные фильма. Лайки сохраняются.
func (uc *FilmUseCase) Update(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	updated, err := uc.films.Replace(ctx, film)
	if err != nil {
		return nil, fmt.Errorf("failed to update film: %w", err)
	}
	uc.popular.Invalidate(ctx)
	return updated, nil
}

func (uc *FilmUseCase) Get(ctx context.Context, id int64) (*entities.Film, error) {
	film, err := uc.films.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get film: %w", err)
	}
	return film, nil
}

func (uc *FilmUseCase) List(ctx context.Context) ([]*entities.Film, error) {
	films, err := uc.films.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	return films, nil
}

func (uc *FilmUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.relations.DeleteFilm(ctx, id); err != nil {
		return err
	}
	metrics.FilmDeleted()
	uc.popular.Invalidate(ctx)
	return nil
}

func (uc *FilmUseCase) Like(ctx context.Context, filmID, userID int64) error {
	if err := uc.relations.LikeFilm(ctx, filmID, userID); err != nil {
		return err
	}
	metrics.ObserveLike(metrics.OpAdd)
	uc.popular.Invalidate(ctx)
	return nil
}

func (uc *FilmUseCase) Unlike(ctx context.Context, filmID, userID int64) error {
	if err := uc.relations.UnlikeFilm(ctx, filmID, userID); err != nil {
		return err
	}
	metrics.ObserveLike(metrics.OpRemove)
	uc.popular.Invalidate(ctx)
	return nil
}

// Popular возвращает рейтинг фильмов, по возможности из кэша.
func (uc *FilmUseCase) Popular(ctx context.Context, count int) ([]*entities.Film, error) {
	if count <= 0 {
		return []*entities.Film{}, nil
	}
	return uc.popular.Fetch(ctx, count, uc.relations.PopularFilms)
}
