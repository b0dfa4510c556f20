package dedupe_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/job-radar/internal/dedupe"
)

func TestSetAddReportsFirstSighting(t *testing.T) {
	set := dedupe.NewSet()
	require.False(t, set.Contains("https://jobs/1"))
	require.True(t, set.Add("https://jobs/1"))
	require.False(t, set.Add("https://jobs/1"))
	require.True(t, set.Contains("https://jobs/1"))
	require.Equal(t, 1, set.Len())
}

func TestSetKeysKeepOrder(t *testing.T) {
	set := dedupe.NewSet()
	for _, k := range []string{"b", "a", "b", "c"} {
		set.Add(k)
	}
	require.Equal(t, []string{"b", "a", "c"}, set.Keys())
}

func TestSetConcurrentAddWinsOnce(t *testing.T) {
	set := dedupe.NewSet()
	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if set.Add("groq:gemma2-9b-it") {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), wins.Load())
}
