package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

// FilmStore хранит фильмы в памяти. Все операции сериализуются RWMutex хранилища.
type FilmStore struct {
	mu    sync.RWMutex
	ids   repositories.IDAllocator
	films map[int64]*entities.Film
}

// NewFilmStore создает пустое хранилище фильмов.
func NewFilmStore(ids repositories.IDAllocator) *FilmStore {
	return &FilmStore{
		ids:   ids,
		films: make(map[int64]*entities.Film),
	}
}

var _ repositories.FilmRepository = (*FilmStore)(nil)

// Read выполняет fn под блокировкой чтения.
func (s *FilmStore) Read(_ context.Context, fn func(repositories.FilmReader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(filmTx{s})
}

// Write выполняет fn под эксклюзивной блокировкой.
func (s *FilmStore) Write(_ context.Context, fn func(repositories.FilmWriter) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(filmTx{s})
}

func (s *FilmStore) Create(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	var created *entities.Film
	err := s.Write(ctx, func(tx repositories.FilmWriter) error {
		created = tx.Add(film)
		return nil
	})
	return created, err
}

func (s *FilmStore) GetByID(ctx context.Context, id int64) (*entities.Film, error) {
	var film *entities.Film
	err := s.Read(ctx, func(tx repositories.FilmReader) error {
		var err error
		film, err = tx.Get(id)
		return err
	})
	return film, err
}

func (s *FilmStore) List(ctx context.Context) ([]*entities.Film, error) {
	var films []*entities.Film
	err := s.Read(ctx, func(tx repositories.FilmReader) error {
		films = tx.List()
		return nil
	})
	return films, err
}

func (s *FilmStore) Replace(ctx context.Context, film *entities.Film) (*entities.Film, error) {
	var updated *entities.Film
	err := s.Write(ctx, func(tx repositories.FilmWriter) error {
		var err error
		updated, err = tx.Update(film)
		return err
	})
	return updated, err
}

func (s *FilmStore) Delete(ctx context.Context, id int64) (bool, error) {
	var removed bool
	err := s.Write(ctx, func(tx repositories.FilmWriter) error {
		removed = tx.Remove(id)
		return nil
	})
	return removed, err
}

// filmTx дает доступ к данным хранилища. Вызывающий уже держит нужную блокировку.
type filmTx struct {
	s *FilmStore
}

func (tx filmTx) lookup(id int64) (*entities.Film, error) {
	film, ok := tx.s.films[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", entities.ErrFilmNotFound, id)
	}
	return film, nil
}

func (tx filmTx) Get(id int64) (*entities.Film, error) {
	film, err := tx.lookup(id)
	if err != nil {
		return nil, err
	}
	return film.Clone(), nil
}

// List возвращает копии всех фильмов по возрастанию id.
func (tx filmTx) List() []*entities.Film {
	out := make([]*entities.Film, 0, len(tx.s.films))
	for _, film := range tx.s.films {
		out = append(out, film.Clone())
	}
	slices.SortFunc(out, func(a, b *entities.Film) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (tx filmTx) Add(film *entities.Film) *entities.Film {
	stored := film.Clone()
	stored.ID = tx.s.ids.Next(repositories.KindFilm)
	stored.Likes = entities.IDSet{}
	tx.s.films[stored.ID] = stored
	return stored.Clone()
}

func (tx filmTx) Update(film *entities.Film) (*entities.Film, error) {
	current, err := tx.lookup(film.ID)
	if err != nil {
		return nil, err
	}
	stored := film.Clone()
	stored.Likes = current.Likes
	tx.s.films[stored.ID] = stored
	return stored.Clone(), nil
}

func (tx filmTx) Remove(id int64) bool {
	if _, ok := tx.s.films[id]; !ok {
		return false
	}
	delete(tx.s.films, id)
	return true
}

func (tx filmTx) AddLike(filmID, userID int64) error {
	film, err := tx.lookup(filmID)
	if err != nil {
		return err
	}
	if !film.Likes.Add(userID) {
		return fmt.Errorf("%w: film=%d user=%d", entities.ErrAlreadyLiked, filmID, userID)
	}
	return nil
}

func (tx filmTx) RemoveLike(filmID, userID int64) error {
	film, err := tx.lookup(filmID)
	if err != nil {
		return err
	}
	if !film.Likes.Remove(userID) {
		return fmt.Errorf("%w: film=%d user=%d", entities.ErrLikeNotFound, filmID, userID)
	}
	return nil
}

func (tx filmTx) RemoveLikesBy(userID int64) int {
	changed := 0
	for _, film := range tx.s.films {
		if film.Likes.Remove(userID) {
			changed++
		}
	}
	return changed
}
