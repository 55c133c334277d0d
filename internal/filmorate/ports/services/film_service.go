// Package services определяет интерфейсы сценариев, которые использует HTTP-адаптер.
package services

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// FilmService определяет операции с фильмами.
type FilmService interface {
	Create(ctx context.Context, film *entities.Film) (*entities.Film, error)
	Update(ctx context.Context, film *entities.Film) (*entities.Film, error)
	Get(ctx context.Context, id int64) (*entities.Film, error)
	List(ctx context.Context) ([]*entities.Film, error)
	Delete(ctx context.Context, id int64) error
	Like(ctx context.Context, filmID, userID int64) error
	Unlike(ctx context.Context, filmID, userID int64) error
	Popular(ctx context.Context, count int) ([]*entities.Film, error)
}
