package model

import "time"

// ----------------------------------------------------
// ================ Config ================

// LogConfig holds configuration for the global logger
type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	Format     string `envconfig:"LOG_FORMAT" default:"console"` // console | json
	Output     string `envconfig:"LOG_OUTPUT" default:"stdout"`  // stdout | stderr | file
	FilePath   string `envconfig:"LOG_FILE_PATH" default:"logs/dinner_planner.log"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"rfc3339"`
}

// LLMConfig holds configuration for the chat model backing every prompt
type LLMConfig struct {
	Provider    string        `envconfig:"LLM_PROVIDER" default:"openrouter"`
	APIKey      string        `envconfig:"LLM_API_KEY"`
	BaseURL     string        `envconfig:"LLM_BASE_URL"`
	Model       string        `envconfig:"LLM_MODEL" default:"meta-llama/llama-3.3-8b-instruct:free"`
	MaxTokens   int           `envconfig:"LLM_MAX_TOKENS" default:"1500"`
	Temperature float32       `envconfig:"LLM_TEMPERATURE" default:"0.7"`
	Timeout     time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
	// OpenRouterKey is read for compatibility with existing .env files
	OpenRouterKey string `envconfig:"OPENROUTER_API_KEY"`
}

// Key returns the configured API key, preferring LLM_API_KEY.
func (c LLMConfig) Key() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return c.OpenRouterKey
}

// SearchConfig holds configuration for the Tavily web search client
type SearchConfig struct {
	APIKey     string        `envconfig:"TAVILY_API_KEY"`
	BaseURL    string        `envconfig:"TAVILY_BASE_URL" default:"https://api.tavily.com"`
	Timeout    time.Duration `envconfig:"SEARCH_TIMEOUT" default:"15s"`
	MaxResults int           `envconfig:"SEARCH_MAX_RESULTS" default:"5"`
	Always     bool          `envconfig:"SEARCH_ALWAYS" default:"false"`
}

// ConversationConfig holds configuration for conversation and session persistence
type ConversationConfig struct {
	RedisURL        string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	ConversationTTL time.Duration `envconfig:"CONVERSATION_TTL" default:"24h"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"1h"`
	HistoryTurns    int           `envconfig:"HISTORY_TURNS" default:"10"`
}

// VocabularyConfig points to optional overrides for the keyword tables
type VocabularyConfig struct {
	File  string `envconfig:"VOCABULARY_FILE"`
	Watch bool   `envconfig:"VOCABULARY_WATCH" default:"false"`
}

// ServerConfig holds configuration for the HTTP API
type ServerConfig struct {
	Addr           string        `envconfig:"SERVER_ADDR" default:":8080"`
	Mode           string        `envconfig:"GIN_MODE" default:"release"`
	ReadinessDelay time.Duration `envconfig:"READINESS_DELAY" default:"2s"`
}
