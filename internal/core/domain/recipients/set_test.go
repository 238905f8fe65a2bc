package recipients

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_AddIsIdempotent(t *testing.T) {
	s := NewSet()

	assert.True(t, s.Add(10))
	assert.False(t, s.Add(10))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains(10))
}

func TestSet_Remove(t *testing.T) {
	s := NewSet(1, 2, 3)

	assert.True(t, s.Remove(2))
	assert.False(t, s.Remove(2))
	assert.False(t, s.Contains(2))
	assert.Equal(t, []ID{1, 3}, s.Snapshot())
}

func TestSet_SnapshotIsDetached(t *testing.T) {
	s := NewSet(5, 1)

	snap := s.Snapshot()
	s.Add(7)
	s.Remove(1)

	assert.Equal(t, []ID{1, 5}, snap)
	assert.Equal(t, []ID{5, 7}, s.Snapshot())
}

func TestSet_ConcurrentAccess(t *testing.T) {
	s := NewSet()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id ID) {
			defer wg.Done()
			s.Add(id)
			s.Add(id + 1000)
			_ = s.Snapshot()
			s.Remove(id + 1000)
		}(ID(i))
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
