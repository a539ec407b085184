// Package llm builds the chat model shared by every prompt and holds the
// helpers for turning raw model text into JSON.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"dinner_planner/src/logger"
	"dinner_planner/src/model"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/ollama/ollama/api"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderDeepSeek   = "deepseek"
	ProviderArk        = "ark"
	ProviderOllama     = "ollama"

	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	ollamaBaseURL     = "http://localhost:11434"

	appReferer = "https://dinner-date-navigator.vercel.app"
	appTitle   = "Smart Dinner Planner"
)

// NewChatModel creates the configured chat model.
// Hosted providers without an API key return model.ErrLLMNotConfigured.
func NewChatModel(ctx context.Context, cfg model.LLMConfig) (einomodel.BaseChatModel, error) {
	provider := strings.ToLower(cfg.Provider)
	if provider != ProviderOllama && cfg.Key() == "" {
		return nil, model.ErrLLMNotConfigured
	}

	maxTokens := cfg.MaxTokens
	temperature := cfg.Temperature

	switch provider {
	case ProviderOpenRouter, "":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = OpenRouterBaseURL
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      cfg.Key(),
			BaseURL:     baseURL,
			Model:       cfg.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
			HTTPClient: &http.Client{
				Timeout:   cfg.Timeout,
				Transport: &headerTransport{base: http.DefaultTransport},
			},
		})

	case ProviderOpenAI:
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      cfg.Key(),
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
			Timeout:     cfg.Timeout,
		})

	case ProviderDeepSeek:
		return deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:      cfg.Key(),
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   maxTokens,
			Temperature: temperature,
			Timeout:     cfg.Timeout,
		})

	case ProviderArk:
		timeout := cfg.Timeout
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			APIKey:      cfg.Key(),
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
			Timeout:     &timeout,
		})

	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = ollamaBaseURL
		}
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
			Options: &api.Options{
				Temperature: temperature,
				NumPredict:  maxTokens,
			},
		})
	}

	return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
}

// MustChatModel returns the chat model or nil when it cannot be built.
// Missing configuration is logged once here; callers treat nil as "always fall back".
func MustChatModel(ctx context.Context, cfg model.LLMConfig) einomodel.BaseChatModel {
	chatModel, err := NewChatModel(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).
			Str("provider", cfg.Provider).
			Msg("Chat model unavailable, every prompt will use its fallback. Set LLM_API_KEY or OPENROUTER_API_KEY")
		return nil
	}
	logger.Info().Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("Chat model ready")
	return chatModel
}

// headerTransport adds the attribution headers OpenRouter uses for app rankings
type headerTransport struct {
	base http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", appReferer)
	req.Header.Set("X-Title", appTitle)
	return t.base.RoundTrip(req)
}
