// Package app реализует бизнес-логику: связи между фильмами и пользователями и сценарии API.
package app

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/pkg/logger"
)

// Сообщения логгера.
const (
	LogFilmLiked       = "film liked"
	LogFilmUnliked     = "film like removed"
	LogFriendAdded     = "friendship created"
	LogFriendRemoved   = "friendship removed"
	LogUserDeleted     = "user deleted with cascade cleanup"
	LogFilmDeleted     = "film deleted"
	LogPopularComputed = "popular films computed"
)

// RelationshipService поддерживает инварианты, которые затрагивают оба хранилища:
// лайки ссылаются на существующих пользователей, дружба симметрична,
// удаление пользователя очищает все ссылки на него.
//
// Если операция использует оба хранилища, блокировка пользователей всегда берется
// раньше блокировки фильмов.
type RelationshipService struct {
	users repositories.UserRepository
	films repositories.FilmRepository
}

// NewRelationshipService создает новый экземпляр RelationshipService.
func NewRelationshipService(users repositories.UserRepository, films repositories.FilmRepository) *RelationshipService {
	return &RelationshipService{
		users: users,
		films: films,
	}
}

// LikeFilm добавляет лайк пользователя userID фильму filmID.
func (s *RelationshipService) LikeFilm(ctx context.Context, filmID, userID int64) error {
	err := s.users.Read(ctx, func(users repositories.UserReader) error {
		return s.films.Write(ctx, func(films repositories.FilmWriter) error {
			if _, err := films.Get(filmID); err != nil {
				return err
			}
			if _, err := users.Get(userID); err != nil {
				return err
			}
			return films.AddLike(filmID, userID)
		})
	})
	if err != nil {
		return fmt.Errorf("like film: %w", err)
	}

	logger.Log(ctx).Debug(ctx, LogFilmLiked, zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
	return nil
}

// UnlikeFilm снимает лайк. Отсутствие лайка - ошибка ErrLikeNotFound.
func (s *RelationshipService) UnlikeFilm(ctx context.Context, filmID, userID int64) error {
	err := s.films.Write(ctx, func(films repositories.FilmWriter) error {
		return films.RemoveLike(filmID, userID)
	})
	if err != nil {
		return fmt.Errorf("unlike film: %w", err)
	}

	logger.Log(ctx).Debug(ctx, LogFilmUnliked, zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
	return nil
}

// PopularFilms возвращает не более count фильмов по убыванию числа лайков,
// при равенстве - по возрастанию id. При count <= 0 возвращается пустой список.
func (s *RelationshipService) PopularFilms(ctx context.Context, count int) ([]*entities.Film, error) {
	if count <= 0 {
		return []*entities.Film{}, nil
	}

	var films []*entities.Film
	err := s.films.Read(ctx, func(tx repositories.FilmReader) error {
		films = tx.List()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("popular films: %w", err)
	}

	slices.SortStableFunc(films, func(a, b *entities.Film) int {
		if c := cmp.Compare(b.LikesCount(), a.LikesCount()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(films) > count {
		films = films[:count]
	}

	logger.Log(ctx).Debug(ctx, LogPopularComputed, zap.Int("count", count), zap.Int("returned", len(films)))
	return films, nil
}

// AddFriend связывает двух пользователей дружбой в обе стороны за одну транзакцию.
func (s *RelationshipService) AddFriend(ctx context.Context, userID, friendID int64) error {
	err := s.users.Write(ctx, func(users repositories.UserWriter) error {
		user, err := users.Get(userID)
		if err != nil {
			return err
		}
		if _, err := users.Get(friendID); err != nil {
			return err
		}
		if userID == friendID {
			return fmt.Errorf("%w: id=%d", entities.ErrSelfFriend, userID)
		}
		if user.Friends.Has(friendID) {
			return fmt.Errorf("%w: user=%d friend=%d", entities.ErrAlreadyFriends, userID, friendID)
		}

		if _, err := users.AddFriend(userID, friendID); err != nil {
			return err
		}
		_, err = users.AddFriend(friendID, userID)
		return err
	})
	if err != nil {
		return fmt.Errorf("add friend: %w", err)
	}

	logger.Log(ctx).Debug(ctx, LogFriendAdded, zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))
	return nil
}

// RemoveFriend удаляет дружбу с обеих сторон. Удаление несуществующей дружбы не является ошибкой.
func (s *RelationshipService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	err := s.users.Write(ctx, func(users repositories.UserWriter) error {
		if _, err := users.Get(userID); err != nil {
			return err
		}
		if _, err := users.Get(friendID); err != nil {
			return err
		}

		if _, err := users.RemoveFriend(userID, friendID); err != nil {
			return err
		}
		_, err := users.RemoveFriend(friendID, userID)
		return err
	})
	if err != nil {
		return fmt.Errorf("remove friend: %w", err)
	}

	logger.Log(ctx).Debug(ctx, LogFriendRemoved, zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))
	return nil
}

// FriendsOf возвращает друзей пользователя по возрастанию id.
func (s *RelationshipService) FriendsOf(ctx context.Context, userID int64) ([]*entities.User, error) {
	var friends []*entities.User
	err := s.users.Read(ctx, func(users repositories.UserReader) error {
		user, err := users.Get(userID)
		if err != nil {
			return err
		}
		friends, err = resolveUsers(users, user.Friends.Sorted())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("friends of user: %w", err)
	}
	return friends, nil
}

// CommonFriends возвращает общих друзей двух пользователей по возрастанию id.
func (s *RelationshipService) CommonFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error) {
	var common []*entities.User
	err := s.users.Read(ctx, func(users repositories.UserReader) error {
		user, err := users.Get(userID)
		if err != nil {
			return err
		}
		other, err := users.Get(otherID)
		if err != nil {
			return err
		}
		common, err = resolveUsers(users, user.Friends.Intersect(other.Friends))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("common friends: %w", err)
	}
	return common, nil
}

// DeleteUser удаляет пользователя и все ссылки на него: дружбы и лайки.
func (s *RelationshipService) DeleteUser(ctx context.Context, userID int64) error {
	var friendsCleaned, likesCleaned int
	err := s.users.Write(ctx, func(users repositories.UserWriter) error {
		if !users.Remove(userID) {
			return fmt.Errorf("%w: id=%d", entities.ErrUserNotFound, userID)
		}
		friendsCleaned = users.RemoveFriendEverywhere(userID)

		return s.films.Write(ctx, func(films repositories.FilmWriter) error {
			likesCleaned = films.RemoveLikesBy(userID)
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	logger.Log(ctx).Debug(ctx, LogUserDeleted,
		zap.Int64("user_id", userID),
		zap.Int("friend_lists_cleaned", friendsCleaned),
		zap.Int("films_cleaned", likesCleaned))
	return nil
}

// DeleteFilm удаляет фильм. Удаление отсутствующего фильма - ошибка ErrFilmNotFound.
func (s *RelationshipService) DeleteFilm(ctx context.Context, filmID int64) error {
	err := s.films.Write(ctx, func(films repositories.FilmWriter) error {
		if !films.Remove(filmID) {
			return fmt.Errorf("%w: id=%d", entities.ErrFilmNotFound, filmID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete film: %w", err)
	}

	logger.Log(ctx).Debug(ctx, LogFilmDeleted, zap.Int64("film_id", filmID))
	return nil
}

// resolveUsers превращает id в записи. Нераспознанный id означает нарушение
// целостности хранилища и возвращается как ErrDanglingReference.
func resolveUsers(users repositories.UserReader, ids []int64) ([]*entities.User, error) {
	out := make([]*entities.User, 0, len(ids))
	for _, id := range ids {
		user, err := users.Get(id)
		if err != nil {
			return nil, fmt.Errorf("%w: user id=%d: %v", entities.ErrDanglingReference, id, err)
		}
		out = append(out, user)
	}
	return out, nil
}
