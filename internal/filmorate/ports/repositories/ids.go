// Package repositories определяет интерфейсы хранилищ фильмов и пользователей.
package repositories

// EntityKind - вид сущности, для которого выдаются идентификаторы.
type EntityKind string

// Виды сущностей.
const (
	KindFilm EntityKind = "film"
	KindUser EntityKind = "user"
)

// IDAllocator выдает строго возрастающие идентификаторы, начиная с 1, отдельно для каждого вида.
type IDAllocator interface {
	Next(kind EntityKind) int64
}
