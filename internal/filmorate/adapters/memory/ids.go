// Package memory содержит потокобезопасные хранилища фильмов и пользователей в памяти процесса.
package memory

import (
	"sync"

	"filmorate/internal/filmorate/ports/repositories"
)

// IDAllocator выдает идентификаторы для каждого вида сущностей независимо.
// Идентификаторы не переиспользуются даже после удаления записей.
type IDAllocator struct {
	mu   sync.Mutex
	last map[repositories.EntityKind]int64
}

// NewIDAllocator создает аллокатор, первый выданный id для каждого вида равен 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{last: make(map[repositories.EntityKind]int64)}
}

// Next возвращает следующий id для вида kind.
func (a *IDAllocator) Next(kind repositories.EntityKind) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.last[kind]++
	return a.last[kind]
}
