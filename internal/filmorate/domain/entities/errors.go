package entities

import (
	"errors"
	"fmt"
)

// Классы ошибок домена. Конкретные ошибки оборачивают один из них,
// поэтому адаптеры сопоставляют их через errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Конкретные ошибки домена.
var (
	ErrFilmNotFound   = fmt.Errorf("film %w", ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("user %w", ErrNotFound)
	ErrLikeNotFound   = fmt.Errorf("like %w", ErrNotFound)
	ErrAlreadyLiked   = fmt.Errorf("%w: film already liked by user", ErrConflict)
	ErrAlreadyFriends = fmt.Errorf("%w: users are already friends", ErrConflict)
	ErrSelfFriend     = fmt.Errorf("%w: user cannot befriend themselves", ErrInvalidArgument)

	// ErrDanglingReference означает нарушение ссылочной целостности хранилища.
	// Это дефект, а не штатное состояние, и на уровне HTTP он отображается в 500.
	ErrDanglingReference = errors.New("dangling reference")
)
