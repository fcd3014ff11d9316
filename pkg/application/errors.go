package application

import "errors"

var (
	errMissingAPIKey = errors.New("OPENROUTER_API_KEY is not set")

	// ErrPublishNotConfigured indicates publishing lacks a token, repository
	// or commit SHA.
	ErrPublishNotConfigured = errors.New("publishing is not configured")
)
