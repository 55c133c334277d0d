package entities

import (
	"encoding/json"
	"slices"
)

// IDSet - множество идентификаторов. Порядок вставки не важен.
type IDSet map[int64]struct{}

// NewIDSet создает множество из перечисленных идентификаторов.
func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Add добавляет id и сообщает, изменилось ли множество.
func (s IDSet) Add(id int64) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Remove удаляет id и сообщает, изменилось ли множество.
func (s IDSet) Remove(id int64) bool {
	if !s.Has(id) {
		return false
	}
	delete(s, id)
	return true
}

func (s IDSet) Len() int {
	return len(s)
}

// Sorted возвращает идентификаторы по возрастанию.
func (s IDSet) Sorted() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Intersect возвращает общие идентификаторы двух множеств по возрастанию.
func (s IDSet) Intersect(other IDSet) []int64 {
	small, big := s, other
	if len(big) < len(small) {
		small, big = big, small
	}
	out := make([]int64, 0, len(small))
	for id := range small {
		if big.Has(id) {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Clone возвращает независимую копию. Копия nil-множества - пустое множество.
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// MarshalJSON кодирует множество как массив по возрастанию.
func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON декодирует множество из массива идентификаторов.
func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
