package app

import (
	"context"
	"fmt"

	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/metrics"
	"filmorate/internal/filmorate/ports/repositories"
	"filmorate/internal/filmorate/ports/services"
)

// UserUseCase реализует сценарии работы с пользователями и дружбой.
type UserUseCase struct {
	users     repositories.UserRepository
	relations *RelationshipService
	popular   *PopularCache
}

var _ services.UserService = (*UserUseCase)(nil)

// NewUserUseCase создает новый экземпляр UserUseCase.
func NewUserUseCase(users repositories.UserRepository, relations *RelationshipService, popular *PopularCache) *UserUseCase {
	return &UserUseCase{
		users:     users,
		relations: relations,
		popular:   popular,
	}
}

// Create сохраняет пользователя. Пустое имя заменяется логином.
func (uc *UserUseCase) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	metrics.UserCreated()
	return created, nil
}

// Update заменяет данные пользователя. Список друзей сохраняется.
func (uc *UserUseCase) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	updated, err := uc.users.Replace(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

func (uc *UserUseCase) Get(ctx context.Context, id int64) (*entities.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (uc *UserUseCase) List(ctx context.Context) ([]*entities.User, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Delete удаляет пользователя вместе с его лайками, поэтому сбрасывает кэш рейтинга.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.relations.DeleteUser(ctx, id); err != nil {
		return err
	}
	metrics.UserDeleted()
	uc.popular.Invalidate(ctx)
	return nil
}

func (uc *UserUseCase) AddFriend(ctx context.Context, userID, friendID int64) error {
	if err := uc.relations.AddFriend(ctx, userID, friendID); err != nil {
		return err
	}
	metrics.ObserveFriendship(metrics.OpAdd)
	return nil
}

func (uc *UserUseCase) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := uc.relations.RemoveFriend(ctx, userID, friendID); err != nil {
		return err
	}
	metrics.ObserveFriendship(metrics.OpRemove)
	return nil
}

func (uc *UserUseCase) Friends(ctx context.Context, userID int64) ([]*entities.User, error) {
	return uc.relations.FriendsOf(ctx, userID)
}

func (uc *UserUseCase) CommonFriends(ctx context.Context, userID, otherID int64) ([]*entities.User, error) {
	return uc.relations.CommonFriends(ctx, userID, otherID)
}
