package repositories

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// UserReader - операции чтения, доступные внутри транзакции хранилища пользователей.
type UserReader interface {
	Get(id int64) (*entities.User, error)
	List() []*entities.User
}

// UserWriter - операции изменения пользователей.
// AddFriend и RemoveFriend меняют только одну сторону дружбы.
type UserWriter interface {
	UserReader

	Add(user *entities.User) *entities.User
	Update(user *entities.User) (*entities.User, error)
	Remove(id int64) bool
	AddFriend(userID, friendID int64) (bool, error)
	RemoveFriend(userID, friendID int64) (bool, error)
	// RemoveFriendEverywhere убирает friendID из списков друзей всех пользователей.
	RemoveFriendEverywhere(friendID int64) int
}

// UserRepository - хранилище пользователей.
type UserRepository interface {
	Read(ctx context.Context, fn func(UserReader) error) error
	Write(ctx context.Context, fn func(UserWriter) error) error

	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	Replace(ctx context.Context, user *entities.User) (*entities.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
