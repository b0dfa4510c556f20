package llm_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/job-radar/internal/cache"
	domainerrors "github.com/DeafMist/job-radar/internal/errors"
	"github.com/DeafMist/job-radar/internal/llm"
)

type countingGenerator struct {
	calls atomic.Int32
	text  string
	err   error
}

func (g *countingGenerator) Generate(context.Context, string) (string, error) {
	g.calls.Add(1)
	return g.text, g.err
}

func TestPoolFallsThroughFailingBackend(t *testing.T) {
	broken := &countingGenerator{err: errors.New("quota exceeded")}
	working := &countingGenerator{text: "- Build APIs"}
	pool := llm.NewPool([]llm.Backend{
		{Name: "groq:gemma2-9b-it", Generator: broken},
		{Name: "gemini:gemini-2.5-flash", Generator: working},
	})

	for range 3 {
		ans, err := pool.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		require.Equal(t, "- Build APIs", ans.Text)
		require.Equal(t, "gemini:gemini-2.5-flash", ans.Backend)
	}

	require.Equal(t, int32(1), broken.calls.Load())
	require.Equal(t, int32(3), working.calls.Load())
	require.Equal(t, []string{"groq:gemma2-9b-it"}, pool.Unavailable())
}

func TestPoolEmptyTextTriesNextWithoutMarking(t *testing.T) {
	empty := &countingGenerator{text: "  "}
	working := &countingGenerator{text: "ok"}
	pool := llm.NewPool([]llm.Backend{
		{Name: "a", Generator: empty},
		{Name: "b", Generator: working},
	})

	ans, err := pool.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "b", ans.Backend)
	require.Empty(t, pool.Unavailable())
}

func TestPoolAllUnavailable(t *testing.T) {
	pool := llm.NewPool([]llm.Backend{
		{Name: "a", Generator: &countingGenerator{err: errors.New("down")}},
	})

	_, err := pool.Generate(context.Background(), "prompt")
	require.Error(t, err)
	require.True(t, domainerrors.IsType(err, domainerrors.ErrTypeUnavailable))

	_, err = pool.Generate(context.Background(), "prompt")
	require.True(t, domainerrors.IsType(err, domainerrors.ErrTypeUnavailable))
}

func TestPoolNoBackends(t *testing.T) {
	_, err := llm.NewPool(nil).Generate(context.Background(), "prompt")
	require.True(t, domainerrors.IsType(err, domainerrors.ErrTypeUnavailable))
}

func TestPoolTimeoutMarksUnavailable(t *testing.T) {
	slow := llm.GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	pool := llm.NewPool([]llm.Backend{
		{Name: "slow", Generator: slow},
		{Name: "fast", Generator: &countingGenerator{text: "done"}},
	}, llm.WithTimeout(10*time.Millisecond))

	ans, err := pool.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "fast", ans.Backend)
	require.Equal(t, []string{"slow"}, pool.Unavailable())
}

func TestPoolConcurrentFailuresMarkOnce(t *testing.T) {
	broken := &countingGenerator{err: errors.New("down")}
	pool := llm.NewPool([]llm.Backend{
		{Name: "broken", Generator: broken},
		{Name: "ok", Generator: &countingGenerator{text: "fine"}},
	})

	var wg sync.WaitGroup
	var answered atomic.Int32
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ans, err := pool.Generate(context.Background(), "prompt"); err == nil && ans.Text == "fine" {
				answered.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(16), answered.Load())

	require.Equal(t, []string{"broken"}, pool.Unavailable())
}

func TestPoolServesFromCache(t *testing.T) {
	gen := &countingGenerator{text: "cached answer"}
	pool := llm.NewPool(
		[]llm.Backend{{Name: "a", Generator: gen}},
		llm.WithCache(cache.NewMemory(10, time.Minute), time.Minute),
	)

	first, err := pool.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "a", first.Backend)

	second, err := pool.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, llm.CacheBackend, second.Backend)
	require.Equal(t, "cached answer", second.Text)
	require.Equal(t, int32(1), gen.calls.Load())
}

func TestPoolCancelledContextDoesNotMark(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := llm.GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		return "", ctx.Err()
	})
	pool := llm.NewPool([]llm.Backend{{Name: "a", Generator: gen}})

	_, err := pool.Generate(ctx, "prompt")
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, pool.Unavailable())
}
