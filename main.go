package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinner_planner/src"
	"dinner_planner/src/api"
	"dinner_planner/src/conversation"
	"dinner_planner/src/llm"
	"dinner_planner/src/llm/assistant"
	"dinner_planner/src/llm/preference"
	"dinner_planner/src/llm/recommend"
	"dinner_planner/src/logger"
	"dinner_planner/src/planner"
	"dinner_planner/src/readiness"
	"dinner_planner/src/search"
	"dinner_planner/src/storage"
	"dinner_planner/src/vocabulary"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("No .env file loaded, using process environment")
	}

	config, err := src.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.InitLogger(config.LogConfig); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := storage.NewRedisClient(ctx, config.ConversationConfig.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	vocab := vocabulary.NewStore(vocabulary.Default())
	if path := config.VocabularyConfig.File; path != "" {
		vocab, err = vocabulary.LoadStore(path)
		if err != nil {
			logger.Fatal().Err(err).Str("path", path).Msg("Failed to load vocabulary")
		}
		if config.VocabularyConfig.Watch {
			if err := vocab.Watch(ctx); err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("Vocabulary hot reload disabled")
			}
		}
	}

	chatModel := llm.MustChatModel(ctx, config.LLMConfig)

	responder, err := assistant.NewResponder(ctx, chatModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create assistant responder")
	}
	extractor, err := preference.NewExtractor(ctx, chatModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create preference extractor")
	}
	generator, err := recommend.NewGenerator(ctx, chatModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create recommendation generator")
	}

	sessions := storage.NewSessionStore(redisClient, config.ConversationConfig.SessionTTL)
	conversations := conversation.NewService(
		conversation.NewRedisRepository(redisClient, config.ConversationConfig.ConversationTTL),
	)

	dinnerPlanner, err := planner.New(ctx, planner.Components{
		Conversations: conversations,
		Sessions:      sessions,
		Responder:     responder,
		Classifier:    readiness.NewClassifier(vocab),
		Extractor:     extractor,
		Augmenter:     search.NewAugmenter(search.NewClient(config.SearchConfig), vocab, config.SearchConfig.MaxResults),
		Generator:     generator,
	}, planner.Config{
		SearchAlways:   config.SearchConfig.Always,
		ReadinessDelay: config.ServerConfig.ReadinessDelay,
		HistoryTurns:   config.ConversationConfig.HistoryTurns,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create planner")
	}

	router := api.NewRouter(config.ServerConfig.Mode, dinnerPlanner, sessions)
	server := &http.Server{
		Addr:              config.ServerConfig.Addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("Dinner planner listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
