package llm_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/job-radar/internal/config"
	domainerrors "github.com/DeafMist/job-radar/internal/errors"
	"github.com/DeafMist/job-radar/internal/llm"
)

func TestParseSpecs(t *testing.T) {
	specs, err := llm.ParseSpecs("groq:gemma2-9b-it, GEMINI:gemini-2.5-flash,,")
	require.NoError(t, err)
	require.Equal(t, []llm.Spec{
		{Provider: "groq", Model: "gemma2-9b-it"},
		{Provider: "gemini", Model: "gemini-2.5-flash"},
	}, specs)

	_, err = llm.ParseSpecs("groq")
	require.Error(t, err)
	_, err = llm.ParseSpecs("mistral:small")
	require.Error(t, err)
}

func TestNewBackendsSkipsMissingKeys(t *testing.T) {
	specs := []llm.Spec{
		{Provider: "groq", Model: "gemma2-9b-it"},
		{Provider: "gemini", Model: "gemini-2.5-flash"},
		{Provider: "groq", Model: "llama-3.1-8b-instant"},
	}

	backends, err := llm.NewBackends(context.Background(), specs, llm.Credentials{GroqAPIKey: "test"}, nil)
	require.NoError(t, err)
	require.Len(t, backends, 2)
	require.Equal(t, "groq:gemma2-9b-it", backends[0].Name)
	require.Equal(t, "groq:llama-3.1-8b-instant", backends[1].Name)
}

func TestOpenWithoutKeysYieldsEmptyPool(t *testing.T) {
	cfg := &config.Generation{
		Backends:    config.DefaultBackends,
		Timeout:     time.Second,
		Concurrency: 1,
		CacheTTL:    time.Hour,
	}

	pool, c, err := llm.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer c.Close()

	require.Empty(t, pool.Names())
	_, err = pool.Generate(context.Background(), "prompt")
	require.True(t, domainerrors.IsType(err, domainerrors.ErrTypeUnavailable))
}

func TestOpenRejectsBadSpecs(t *testing.T) {
	_, _, err := llm.Open(context.Background(), &config.Generation{Backends: "groq"}, nil)
	require.Error(t, err)
}
