package entities

import (
	"strings"
	"time"
)

// User представляет пользователя и множество его друзей.
type User struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email"`
	Login    string    `json:"login"`
	Name     string    `json:"name"`
	Birthday time.Time `json:"birthday"`
	Friends  IDSet     `json:"friends"`
}

// NewUser создает пользователя без идентификатора и друзей.
func NewUser(email, login, name string, birthday time.Time) *User {
	return &User{
		Email:    email,
		Login:    login,
		Name:     name,
		Birthday: birthday,
		Friends:  IDSet{},
	}
}

// ApplyDefaultName подставляет логин вместо пустого имени.
func (u *User) ApplyDefaultName() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

// Clone возвращает глубокую копию пользователя.
func (u *User) Clone() *User {
	c := *u
	c.Friends = u.Friends.Clone()
	return &c
}
