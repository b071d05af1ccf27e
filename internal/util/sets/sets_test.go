package sets

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := New("a", "b")
	s.Add("c")
	require.True(t, s.Has("b"))
	require.True(t, s.Has("c"))
	s.Delete("a")
	require.False(t, s.Has("a"))
	require.Len(t, s, 2)
}

func TestSyncSet_AddIfAbsent(t *testing.T) {
	var s SyncSet[string]
	require.True(t, s.AddIfAbsent("/site/index.html"))
	require.False(t, s.AddIfAbsent("/site/index.html"))
	require.True(t, s.Has("/site/index.html"))
	require.Equal(t, 1, s.Len())
}

func TestSyncSet_ConcurrentSingleWinner(t *testing.T) {
	s := NewSync[int]()
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.AddIfAbsent(7) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, wins)
}
