// Package config loads per-binary settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const DefaultBackends = "groq:gemma2-9b-it,groq:llama-3.1-8b-instant,gemini:gemini-2.5-flash"

var loadDotenv sync.Once

// Clean configures the normalization stage.
type Clean struct {
	FuzzyThreshold int
	MillionMin     float64
	MillionMax     float64
}

// Generation configures the summarize and classify stages.
type Generation struct {
	Backends      string
	GroqAPIKey    string
	GroqBaseURL   string
	GeminiAPIKey  string
	Timeout       time.Duration
	Concurrency   int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

// Merge configures record linkage and its optional sinks. Empty
// ElasticsearchAddr or KafkaBrokers disable the sink.
type Merge struct {
	FuzzyThreshold     int
	ElasticsearchAddr  string
	ElasticsearchIndex string
	KafkaBrokers       []string
	KafkaTopic         string
	PublishAttempts    int
	PublishBackoff     time.Duration
}

// Report configures the reporting stage.
type Report struct {
	FuzzyThreshold int
}

// API describes HTTP-layer configuration.
type API struct {
	ElasticsearchAddr  string
	ElasticsearchIndex string
	BindAddr           string
	DefaultPage        int
	MaxPage            int
}

// LoadClean builds a Clean config from environment variables.
func LoadClean() (*Clean, error) {
	dotenv()
	c := &Clean{
		FuzzyThreshold: getInt("GAZETTEER_FUZZY_THRESHOLD", 80),
		MillionMin:     getFloat("SALARY_MILLION_MIN", 1),
		MillionMax:     getFloat("SALARY_MILLION_MAX", 300),
	}

	if err := validThreshold(c.FuzzyThreshold); err != nil {
		return nil, err
	}
	if c.MillionMin <= 0 {
		return nil, fmt.Errorf("SALARY_MILLION_MIN must be positive")
	}
	if c.MillionMax < c.MillionMin {
		return nil, fmt.Errorf("SALARY_MILLION_MAX cannot be below SALARY_MILLION_MIN")
	}

	return c, nil
}

// LoadGeneration builds a Generation config from environment variables.
func LoadGeneration() (*Generation, error) {
	dotenv()
	c := &Generation{
		Backends:      getEnv("LLM_BACKENDS", DefaultBackends),
		GroqAPIKey:    getEnv("GROQ_API_KEY", ""),
		GroqBaseURL:   getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		Timeout:       getDuration("LLM_TIMEOUT", "60s"),
		Concurrency:   getInt("LLM_CONCURRENCY", 4),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		CacheTTL:      getDuration("LLM_CACHE_TTL", "168h"),
	}

	if c.Timeout <= 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	if c.Concurrency <= 0 {
		return nil, fmt.Errorf("LLM_CONCURRENCY must be positive")
	}
	if c.RedisDB < 0 {
		return nil, fmt.Errorf("REDIS_DB cannot be negative")
	}
	if c.CacheTTL <= 0 {
		return nil, fmt.Errorf("LLM_CACHE_TTL must be positive")
	}

	return c, nil
}

// LoadMerge builds a Merge config from environment variables.
func LoadMerge() (*Merge, error) {
	dotenv()
	c := &Merge{
		FuzzyThreshold:     getInt("GAZETTEER_FUZZY_THRESHOLD", 80),
		ElasticsearchAddr:  getEnv("ELASTICSEARCH_ADDR", ""),
		ElasticsearchIndex: getEnv("ELASTICSEARCH_INDEX", "jobs"),
		KafkaBrokers:       splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "jobs_merged"),
		PublishAttempts:    getInt("KAFKA_PUBLISH_ATTEMPTS", 5),
		PublishBackoff:     getDuration("KAFKA_PUBLISH_BACKOFF", "1s"),
	}

	if err := validThreshold(c.FuzzyThreshold); err != nil {
		return nil, err
	}
	if c.PublishAttempts <= 0 {
		return nil, fmt.Errorf("KAFKA_PUBLISH_ATTEMPTS must be positive")
	}
	if c.PublishBackoff <= 0 {
		return nil, fmt.Errorf("KAFKA_PUBLISH_BACKOFF must be positive")
	}

	return c, nil
}

// LoadReport builds a Report config from environment variables.
func LoadReport() (*Report, error) {
	dotenv()
	c := &Report{FuzzyThreshold: getInt("GAZETTEER_FUZZY_THRESHOLD", 80)}
	if err := validThreshold(c.FuzzyThreshold); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadAPI builds an API config from environment variables.
func LoadAPI() (*API, error) {
	dotenv()
	c := &API{
		ElasticsearchAddr:  getEnv("ELASTICSEARCH_ADDR", "http://elasticsearch:9200"),
		ElasticsearchIndex: getEnv("ELASTICSEARCH_INDEX", "jobs"),
		BindAddr:           getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		DefaultPage:        getInt("API_PAGE_SIZE", 20),
		MaxPage:            getInt("API_MAX_PAGE_SIZE", 100),
	}

	if c.DefaultPage <= 0 {
		return nil, fmt.Errorf("API_PAGE_SIZE must be positive")
	}
	if c.MaxPage <= 0 {
		return nil, fmt.Errorf("API_MAX_PAGE_SIZE must be positive")
	}
	if c.DefaultPage > c.MaxPage {
		return nil, fmt.Errorf("API_PAGE_SIZE cannot exceed API_MAX_PAGE_SIZE")
	}

	return c, nil
}

// dotenv loads .env once. Variables already set in the environment win, and a
// missing file is not an error.
func dotenv() {
	loadDotenv.Do(func() {
		_ = godotenv.Load()
	})
}

func validThreshold(v int) error {
	if v <= 0 || v > 100 {
		return fmt.Errorf("GAZETTEER_FUZZY_THRESHOLD must be in 1..100")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
