package types

import (
	"os"
	"strconv"
	"time"
)

// Config is assembled from environment variables once at startup.
type Config struct {
	ServerAddr string

	LLMURL    string
	LLMModel  string
	LLMAPIKey string

	ChunkSize    int
	ChunkOverlap int
	TopK         int

	MaxConcurrentQuestions int
	QuestionTimeout        time.Duration
	FetchTimeout           time.Duration

	CacheEnabled bool
}

const (
	DefaultChunkSize    = 300
	DefaultChunkOverlap = 100
	DefaultTopK         = 5
)

func LoadConfig() Config {
	return Config{
		ServerAddr:             envStr("SERVER_ADDR", ":8000"),
		LLMURL:                 os.Getenv("LLM_URL"),
		LLMModel:               envStr("LLM_MODEL", "gemini-1.5-flash"),
		LLMAPIKey:              os.Getenv("LLM_API_KEY"),
		ChunkSize:              envInt("CHUNK_SIZE", DefaultChunkSize),
		ChunkOverlap:           envInt("CHUNK_OVERLAP", DefaultChunkOverlap),
		TopK:                   envInt("TOP_K", DefaultTopK),
		MaxConcurrentQuestions: envInt("MAX_CONCURRENT_QUESTIONS", 4),
		QuestionTimeout:        envDuration("QUESTION_TIMEOUT", 30*time.Second),
		FetchTimeout:           envDuration("FETCH_TIMEOUT", 30*time.Second),
		CacheEnabled:           envBool("CACHE_ENABLED", false),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
