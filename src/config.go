package src

import (
	"fmt"

	"dinner_planner/src/model"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LogConfig          model.LogConfig          `envconfig:""`
	LLMConfig          model.LLMConfig          `envconfig:""`
	SearchConfig       model.SearchConfig       `envconfig:""`
	ConversationConfig model.ConversationConfig `envconfig:""`
	VocabularyConfig   model.VocabularyConfig   `envconfig:""`
	ServerConfig       model.ServerConfig       `envconfig:""`
}

func LoadConfig() (*Config, error) {
	var config Config
	err := envconfig.Process("", &config)
	if err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}

	return &config, nil
}
