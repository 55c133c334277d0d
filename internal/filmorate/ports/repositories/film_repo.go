package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// FilmReader - операции чтения, доступные внутри транзакции хранилища фильмов.
// Возвращаемые записи являются копиями.
type FilmReader interface {
	Get(id int64) (*entities.Film, error)
	List() []*entities.Film
}

// FilmWriter - операции изменения, доступные внутри пишущей транзакции.
type FilmWriter interface {
	FilmReader

	// Add назначает новый id, игнорируя переданный, и сохраняет копию фильма.
	Add(film *entities.Film) *entities.Film
	// Update заменяет поля фильма, сохраняя его лайки.
	Update(film *entities.Film) (*entities.Film, error)
	// Remove идемпотентен и сообщает, была ли запись удалена.
	Remove(id int64) bool
	AddLike(filmID, userID int64) error
	RemoveLike(filmID, userID int64) error
	// RemoveLikesBy убирает лайк пользователя со всех фильмов и возвращает число измененных фильмов.
	RemoveLikesBy(userID int64) int
}

// FilmRepository - хранилище фильмов.
type FilmRepository interface {
	// Read выполняет fn под блокировкой чтения.
	Read(ctx context.Context, fn func(FilmReader) error) error
	// Write выполняет fn под эксклюзивной блокировкой.
	Write(ctx context.Context, fn func(FilmWriter) error) error

	Create(ctx context.Context, film *entities.Film) (*entities.Film, error)
	GetByID(ctx context.Context, id int64) (*entities.Film, error)
	List(ctx context.Context) ([]*entities.Film, error)
	Replace(ctx context.Context, film *entities.Film) (*entities.Film, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
