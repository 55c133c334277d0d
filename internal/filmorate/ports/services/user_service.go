package services

import (
	"context"

	"filmorate/internal/filmorate/domain/entities"
)

// UserService определяет операции с пользователями и дружбой.
type UserService interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) (*entities.User, error)
	Get(ctx context.Context, id int64) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	Delete(ctx context.Context, id int64) error
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	Friends(ctx context.Context, userID int64) ([]*entities.User, error)
	CommonFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error)
}
