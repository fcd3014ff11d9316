package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/reqgate/pkg/application"
	"github.com/felixgeelhaar/reqgate/pkg/domain/document"
	"github.com/felixgeelhaar/reqgate/pkg/infrastructure/health"
	"github.com/felixgeelhaar/reqgate/pkg/storage"
)

// Verdict errors returned by commands whose check ran but did not pass. The
// console output already explains the failure.
var (
	ErrValidationFailed = errors.New("document validation failed")
	ErrGateFailed       = errors.New("quality gate failed")
	ErrEnvCheckFailed   = errors.New("environment check failed")
	ErrGradeFailed      = errors.New("document grading failed")
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
	// Reported is set when the command already printed the failure.
	Reported bool
}

func (e *CLIError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var missing *storage.MissingInputError
	if errors.As(err, &missing) {
		return NewCLIError(
			missing.Error(),
			"Run the prompt evaluations first (promptfoo eval -o test-results/latest.json) or pass --results",
			err,
		)
	}

	var parseErr *document.ParseError
	if errors.As(err, &parseErr) {
		return NewCLIError("requirement document could not be parsed", "Fix the YAML syntax and field types, then retry", err)
	}

	var netErr *health.NetworkError
	if errors.As(err, &netErr) {
		hint := "Check network access and OPENROUTER_BASE_URL"
		if netErr.Timeout {
			hint = "Increase HEALTH_TIMEOUT or check network access"
		}
		return NewCLIError("model gateway unreachable", hint, err)
	}

	switch {
	case errors.Is(err, application.ErrPublishNotConfigured):
		return NewCLIError("publishing is not configured", "Set GITHUB_TOKEN, GITHUB_REPOSITORY and GITHUB_SHA (or pass --sha)", err)
	case errors.Is(err, ErrGateFailed):
		return reported(err, "See test-results/quality-report.md for improvement suggestions")
	case errors.Is(err, ErrValidationFailed):
		return reported(err, "See test-results/validation/validation-report.md for per-document recommendations")
	case errors.Is(err, ErrEnvCheckFailed):
		return reported(err, "Set the missing variables in .env or the CI secrets")
	case errors.Is(err, ErrGradeFailed):
		return reported(err, "")
	}

	return err
}

func reported(err error, hint string) *CLIError {
	e := NewCLIError(err.Error(), hint, err)
	e.Reported = true
	return e
}
