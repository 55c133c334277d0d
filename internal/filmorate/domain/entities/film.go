// Package entities содержит сущности домена: фильмы, пользователей и ошибки домена.
package entities

import "time"

// CinemaBirthday - самая ранняя допустимая дата релиза фильма.
var CinemaBirthday = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Film представляет фильм и множество пользователей, поставивших ему лайк.
type Film struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"releaseDate"`
	Duration    int       `json:"duration"`
	Likes       IDSet     `json:"likes"`
}

// NewFilm создает фильм без идентификатора и лайков.
func NewFilm(name, description string, releaseDate time.Time, duration int) *Film {
	return &Film{
		Name:        name,
		Description: description,
		ReleaseDate: releaseDate,
		Duration:    duration,
		Likes:       IDSet{},
	}
}

// Clone возвращает глубокую копию фильма.
func (f *Film) Clone() *Film {
	c := *f
	c.Likes = f.Likes.Clone()
	return &c
}

// LikesCount возвращает количество лайков.
func (f *Film) LikesCount() int {
	return f.Likes.Len()
}
