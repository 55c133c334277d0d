package dto

import (
	"fmt"
	"time"

	"filmorate/internal/filmorate/domain/entities"
)

// UserRequest - тело запросов создания и обновления пользователя.
// Пустое имя заменяется логином, дата рождения необязательна.
type UserRequest struct {
	ID       int64  `json:"id" validate:"gte=0"`
	Email    string `json:"email" validate:"required,notblank,email"`
	Login    string `json:"login" validate:"required,notblank,nowhitespace"`
	Name     string `json:"name"`
	Birthday string `json:"birthday" validate:"omitempty,isodate,notfuture"`
}

// UserResponse - представление пользователя в ответах.
type UserResponse struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Login    string  `json:"login"`
	Name     string  `json:"name"`
	Birthday string  `json:"birthday,omitempty"`
	Friends  []int64 `json:"friends"`
}

// ToUser проверяет запрос создания и строит сущность.
func (r *UserRequest) ToUser() (*entities.User, error) {
	if err := validateStruct(r); err != nil {
		return nil, err
	}

	var birthday time.Time
	if r.Birthday != "" {
		parsed, err := ParseDate(r.Birthday)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		birthday = parsed
	}
	return entities.NewUser(r.Email, r.Login, r.Name, birthday), nil
}

// ToUserUpdate дополнительно требует id обновляемого пользователя.
func (r *UserRequest) ToUserUpdate() (*entities.User, error) {
	if r.ID <= 0 {
		return nil, fmt.Errorf("%w: id must be a positive integer", ErrValidation)
	}

	user, err := r.ToUser()
	if err != nil {
		return nil, err
	}
	user.ID = r.ID
	return user, nil
}

func NewUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Login:    user.Login,
		Name:     user.Name,
		Birthday: FormatDate(user.Birthday),
		Friends:  user.Friends.Sorted(),
	}
}

func NewUserResponses(users []*entities.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}
