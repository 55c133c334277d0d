package dto

import (
	"fmt"

	"filmorate/internal/filmorate/domain/entities"
)

// FilmRequest - тело запросов создания и обновления фильма.
// Лайки через эти запросы не передаются.
type FilmRequest struct {
	ID          int64  `json:"id" validate:"gte=0"`
	Name        string `json:"name" validate:"notblank"`
	Description string `json:"description" validate:"max=200"`
	ReleaseDate string `json:"releaseDate" validate:"required,isodate,cinemaera"`
	Duration    int    `json:"duration" validate:"gt=0"`
}

// FilmResponse - представление фильма в ответах.
type FilmResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ReleaseDate string  `json:"releaseDate"`
	Duration    int     `json:"duration"`
	Likes       []int64 `json:"likes"`
}

// ToFilm проверяет запрос создания и строит сущность. Переданный id игнорируется.
func (r *FilmRequest) ToFilm() (*entities.Film, error) {
	if err := validateStruct(r); err != nil {
		return nil, err
	}

	releaseDate, err := ParseDate(r.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return entities.NewFilm(r.Name, r.Description, releaseDate, r.Duration), nil
}

// ToFilmUpdate дополнительно требует id обновляемого фильма.
func (r *FilmRequest) ToFilmUpdate() (*entities.Film, error) {
	if r.ID <= 0 {
		return nil, fmt.Errorf("%w: id must be a positive integer", ErrValidation)
	}

	film, err := r.ToFilm()
	if err != nil {
		return nil, err
	}
	film.ID = r.ID
	return film, nil
}

// NewFilmResponse строит ответ из сущности.
func NewFilmResponse(film *entities.Film) FilmResponse {
	return FilmResponse{
		ID:          film.ID,
		Name:        film.Name,
		Description: film.Description,
		ReleaseDate: FormatDate(film.ReleaseDate),
		Duration:    film.Duration,
		Likes:       film.Likes.Sorted(),
	}
}

// NewFilmResponses строит список ответов, сохраняя порядок.
func NewFilmResponses(films []*entities.Film) []FilmResponse {
	out := make([]FilmResponse, 0, len(films))
	for _, film := range films {
		out = append(out, NewFilmResponse(film))
	}
	return out
}
