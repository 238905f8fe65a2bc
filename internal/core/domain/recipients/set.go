// internal/core/domain/recipients/set.go
package recipients

import (
	"sort"
	"sync"
)

// ID идентификатор получателя (Telegram chat ID)
type ID int64

// Set потокобезопасное множество получателей рассылки.
// Живет только в памяти процесса.
type Set struct {
	mu      sync.RWMutex
	members map[ID]struct{}
}

// NewSet создает множество с начальными получателями
func NewSet(initial ...ID) *Set {
	s := &Set{members: make(map[ID]struct{}, len(initial))}
	for _, id := range initial {
		s.members[id] = struct{}{}
	}
	return s
}

// Add добавляет получателя. Возвращает true, если его раньше не было.
func (s *Set) Add(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.members[id]; exists {
		return false
	}
	s.members[id] = struct{}{}
	return true
}

// Remove удаляет получателя. Возвращает true, если он был в множестве.
func (s *Set) Remove(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.members[id]; !exists {
		return false
	}
	delete(s.members, id)
	return true
}

// Contains проверяет наличие получателя
func (s *Set) Contains(id ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.members[id]
	return exists
}

// Len возвращает количество получателей
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.members)
}

// Snapshot возвращает отсортированную копию текущих получателей.
// Изменения множества после вызова не влияют на копию.
func (s *Set) Snapshot() []ID {
	s.mu.RLock()
	ids := make([]ID, 0, len(s.members))
	for id := range s.members {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
