package testsuite

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"

	"github.com/gridserpent/engine/score"
)

func findEntry(entries []score.Entry, name string) (score.Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return score.Entry{}, false
}

func testStoreEmpty(t *testing.T, s score.Store) {
	entries, err := s.List(context.Background())
	require.Nil(t, err)
	require.Empty(t, entries)
}

func testStoreSetAndList(t *testing.T, s score.Store) {
	ctx := context.Background()
	alice := uuid.NewV4().String()
	bob := uuid.NewV4().String()

	require.Nil(t, s.Set(ctx, alice, "12"))
	require.Nil(t, s.Set(ctx, bob, "3"))

	entries, err := s.List(ctx)
	require.Nil(t, err)

	e, ok := findEntry(entries, alice)
	require.True(t, ok)
	require.Equal(t, "12", e.Score)

	e, ok = findEntry(entries, bob)
	require.True(t, ok)
	require.Equal(t, "3", e.Score)
}

func testStoreOverwrite(t *testing.T, s score.Store) {
	ctx := context.Background()
	name := uuid.NewV4().String()

	require.Nil(t, s.Set(ctx, name, "3"))
	require.Nil(t, s.Set(ctx, name, "12"))

	entries, err := s.List(ctx)
	require.Nil(t, err)

	seen := 0
	for _, e := range entries {
		if e.Name == name {
			seen++
			require.Equal(t, "12", e.Score)
		}
	}
	require.Equal(t, 1, seen, "one entry per name")
}

func testStoreUnicodeNames(t *testing.T, s score.Store) {
	ctx := context.Background()
	name := "🐍 " + uuid.NewV4().String()

	require.Nil(t, s.Set(ctx, name, "7"))

	entries, err := s.List(ctx)
	require.Nil(t, err)
	e, ok := findEntry(entries, name)
	require.True(t, ok)
	require.Equal(t, "7", e.Score)
}

func testStoreConcurrentWriters(t *testing.T, s score.Store) {
	ctx := context.Background()

	names := make([]string, 20)
	for i := range names {
		names[i] = uuid.NewV4().String()
	}

	var failed uint32
	var wg sync.WaitGroup
	wg.Add(len(names))
	for _, name := range names {
		go func(name string) {
			if err := s.Set(ctx, name, "1"); err != nil {
				atomic.AddUint32(&failed, 1)
			}
			wg.Done()
		}(name)
	}
	wg.Wait()

	require.Equal(t, uint32(0), failed)

	entries, err := s.List(ctx)
	require.Nil(t, err)
	for _, name := range names {
		_, ok := findEntry(entries, name)
		require.True(t, ok, "missing %s", name)
	}
}

// Suite will execute the store testsuite. pretest runs before every subtest
// and should reset the backend, Empty relies on it.
func Suite(t *testing.T, s score.Store, pretest func()) {
	s = score.InstrumentStore(s)
	t.Run("Empty", func(t *testing.T) { pretest(); testStoreEmpty(t, s) })
	t.Run("SetAndList", func(t *testing.T) { pretest(); testStoreSetAndList(t, s) })
	t.Run("Overwrite", func(t *testing.T) { pretest(); testStoreOverwrite(t, s) })
	t.Run("UnicodeNames", func(t *testing.T) { pretest(); testStoreUnicodeNames(t, s) })
	t.Run("ConcurrentWriters", func(t *testing.T) { pretest(); testStoreConcurrentWriters(t, s) })
}
