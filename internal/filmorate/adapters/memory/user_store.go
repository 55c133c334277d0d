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

// UserStore хранит пользователей в памяти. Симметричность дружбы обеспечивает вызывающий код.
type UserStore struct {
	mu    sync.RWMutex
	ids   repositories.IDAllocator
	users map[int64]*entities.User
}

// NewUserStore создает пустое хранилище пользователей.
func NewUserStore(ids repositories.IDAllocator) *UserStore {
	return &UserStore{
		ids:   ids,
		users: make(map[int64]*entities.User),
	}
}

var _ repositories.UserRepository = (*UserStore)(nil)

func (s *UserStore) Read(_ context.Context, fn func(repositories.UserReader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(userTx{s})
}

func (s *UserStore) Write(_ context.Context, fn func(repositories.UserWriter) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(userTx{s})
}

func (s *UserStore) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	var created *entities.User
	err := s.Write(ctx, func(tx repositories.UserWriter) error {
		created = tx.Add(user)
		return nil
	})
	return created, err
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	var user *entities.User
	err := s.Read(ctx, func(tx repositories.UserReader) error {
		var err error
		user, err = tx.Get(id)
		return err
	})
	return user, err
}

func (s *UserStore) List(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	err := s.Read(ctx, func(tx repositories.UserReader) error {
		users = tx.List()
		return nil
	})
	return users, err
}

func (s *UserStore) Replace(ctx context.Context, user *entities.User) (*entities.User, error) {
	var updated *entities.User
	err := s.Write(ctx, func(tx repositories.UserWriter) error {
		var err error
		updated, err = tx.Update(user)
		return err
	})
	return updated, err
}

func (s *UserStore) Delete(ctx context.Context, id int64) (bool, error) {
	var removed bool
	err := s.Write(ctx, func(tx repositories.UserWriter) error {
		removed = tx.Remove(id)
		return nil
	})
	return removed, err
}

type userTx struct {
	s *UserStore
}

func (tx userTx) lookup(id int64) (*entities.User, error) {
	user, ok := tx.s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", entities.ErrUserNotFound, id)
	}
	return user, nil
}

func (tx userTx) Get(id int64) (*entities.User, error) {
	user, err := tx.lookup(id)
	if err != nil {
		return nil, err
	}
	return user.Clone(), nil
}

func (tx userTx) List() []*entities.User {
	out := make([]*entities.User, 0, len(tx.s.users))
	for _, user := range tx.s.users {
		out = append(out, user.Clone())
	}
	slices.SortFunc(out, func(a, b *entities.User) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Add назначает новый id и подставляет логин вместо пустого имени.
func (tx userTx) Add(user *entities.User) *entities.User {
	stored := user.Clone()
	stored.ID = tx.s.ids.Next(repositories.KindUser)
	stored.Friends = entities.IDSet{}
	stored.ApplyDefaultName()
	tx.s.users[stored.ID] = stored
	return stored.Clone()
}

// Update заменяет поля пользователя, сохраняя список друзей.
func (tx userTx) Update(user *entities.User) (*entities.User, error) {
	current, err := tx.lookup(user.ID)
	if err != nil {
		return nil, err
	}
	stored := user.Clone()
	stored.Friends = current.Friends
	stored.ApplyDefaultName()
	tx.s.users[stored.ID] = stored
	return stored.Clone(), nil
}

func (tx userTx) Remove(id int64) bool {
	if _, ok := tx.s.users[id]; !ok {
		return false
	}
	delete(tx.s.users, id)
	return true
}

func (tx userTx) AddFriend(userID, friendID int64) (bool, error) {
	user, err := tx.lookup(userID)
	if err != nil {
		return false, err
	}
	return user.Friends.Add(friendID), nil
}

func (tx userTx) RemoveFriend(userID, friendID int64) (bool, error) {
	user, err := tx.lookup(userID)
	if err != nil {
		return false, err
	}
	return user.Friends.Remove(friendID), nil
}

func (tx userTx) RemoveFriendEverywhere(friendID int64) int {
	changed := 0
	for _, user := range tx.s.users {
		if user.Friends.Remove(friendID) {
			changed++
		}
	}
	return changed
}
