package model

import "errors"

var (
	ErrLLMNotConfigured    = errors.New("LLM_NOT_CONFIGURED")
	ErrSearchNotConfigured = errors.New("SEARCH_NOT_CONFIGURED")
	ErrSearchFailed        = errors.New("SEARCH_FAILED")
	ErrNoJSONFound         = errors.New("NO_JSON_FOUND")
	ErrEmptyModelOutput    = errors.New("EMPTY_MODEL_OUTPUT")
	ErrSessionNotFound     = errors.New("SESSION_NOT_FOUND")
)
