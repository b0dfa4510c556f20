package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/job-radar/internal/config"
)

func TestLoadCleanDefaults(t *testing.T) {
	t.Setenv("GAZETTEER_FUZZY_THRESHOLD", "")
	t.Setenv("SALARY_MILLION_MIN", "")
	t.Setenv("SALARY_MILLION_MAX", "")

	cfg, err := config.LoadClean()
	require.NoError(t, err)
	require.Equal(t, 80, cfg.FuzzyThreshold)
	require.Equal(t, 1.0, cfg.MillionMin)
	require.Equal(t, 300.0, cfg.MillionMax)
}

func TestLoadCleanRejectsBadBounds(t *testing.T) {
	t.Setenv("SALARY_MILLION_MIN", "50")
	t.Setenv("SALARY_MILLION_MAX", "10")

	_, err := config.LoadClean()
	require.Error(t, err)
}

func TestLoadGeneration(t *testing.T) {
	t.Setenv("LLM_BACKENDS", "gemini:gemini-2.5-flash")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GROQ_BASE_URL", "")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("LLM_CONCURRENCY", "8")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LLM_CACHE_TTL", "")

	cfg, err := config.LoadGeneration()
	require.NoError(t, err)
	require.Equal(t, "gemini:gemini-2.5-flash", cfg.Backends)
	require.Equal(t, "g-key", cfg.GeminiAPIKey)
	require.Empty(t, cfg.GroqAPIKey)
	require.Equal(t, "https://api.groq.com/openai/v1", cfg.GroqBaseURL)
	require.Equal(t, 15*time.Second, cfg.Timeout)
	require.Equal(t, 8, cfg.Concurrency)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, 168*time.Hour, cfg.CacheTTL)
}

func TestLoadGenerationValidation(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{name: "concurrency", key: "LLM_CONCURRENCY", value: "0"},
		{name: "timeout", key: "LLM_TIMEOUT", value: "-1s"},
		{name: "redis db", key: "REDIS_DB", value: "-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.LoadGeneration()
			require.Error(t, err)
		})
	}
}

func TestLoadMergeSinksOptional(t *testing.T) {
	t.Setenv("ELASTICSEARCH_ADDR", "")
	t.Setenv("ELASTICSEARCH_INDEX", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_TOPIC", "")

	cfg, err := config.LoadMerge()
	require.NoError(t, err)
	require.Empty(t, cfg.ElasticsearchAddr)
	require.Equal(t, "jobs", cfg.ElasticsearchIndex)
	require.Empty(t, cfg.KafkaBrokers)
	require.Equal(t, "jobs_merged", cfg.KafkaTopic)
	require.Equal(t, 5, cfg.PublishAttempts)
	require.Equal(t, time.Second, cfg.PublishBackoff)
}

func TestLoadMergeOverrides(t *testing.T) {
	t.Setenv("ELASTICSEARCH_ADDR", "http://localhost:9999")
	t.Setenv("KAFKA_BROKERS", "broker-a:29092, broker-b:29093,")
	t.Setenv("KAFKA_TOPIC", "custom_topic")
	t.Setenv("GAZETTEER_FUZZY_THRESHOLD", "90")

	cfg, err := config.LoadMerge()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9999", cfg.ElasticsearchAddr)
	require.Equal(t, []string{"broker-a:29092", "broker-b:29093"}, cfg.KafkaBrokers)
	require.Equal(t, "custom_topic", cfg.KafkaTopic)
	require.Equal(t, 90, cfg.FuzzyThreshold)
}

func TestLoadReportThreshold(t *testing.T) {
	t.Setenv("GAZETTEER_FUZZY_THRESHOLD", "101")
	_, err := config.LoadReport()
	require.Error(t, err)

	t.Setenv("GAZETTEER_FUZZY_THRESHOLD", "not a number")
	cfg, err := config.LoadReport()
	require.NoError(t, err)
	require.Equal(t, 80, cfg.FuzzyThreshold)
}

func TestLoadAPI(t *testing.T) {
	t.Setenv("API_BIND_ADDR", ":9090")
	t.Setenv("API_PAGE_SIZE", "15")
	t.Setenv("API_MAX_PAGE_SIZE", "200")
	t.Setenv("ELASTICSEARCH_ADDR", "http://api-es:9200")
	t.Setenv("ELASTICSEARCH_INDEX", "api-index")

	cfg, err := config.LoadAPI()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.BindAddr)
	require.Equal(t, 15, cfg.DefaultPage)
	require.Equal(t, 200, cfg.MaxPage)
	require.Equal(t, "http://api-es:9200", cfg.ElasticsearchAddr)
	require.Equal(t, "api-index", cfg.ElasticsearchIndex)
}

func TestLoadAPIPageBounds(t *testing.T) {
	t.Setenv("API_PAGE_SIZE", "50")
	t.Setenv("API_MAX_PAGE_SIZE", "10")

	_, err := config.LoadAPI()
	require.Error(t, err)
}
