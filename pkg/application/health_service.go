package application

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/reqgate/pkg/infrastructure/health"
)

// HealthReport is the outcome of an environment check.
type HealthReport struct {
	Variables []health.VariableStatus `json:"variables"`
	Models    *health.ModelsResult    `json:"models,omitempty"`
	ProbeErr  error                   `json:"-"`
	Passed    bool                    `json:"passed"`
}

// MissingVariables lists required variables that are unset.
func (r *HealthReport) MissingVariables() []string {
	var out []string
	for _, v := range r.Variables {
		if !v.Present {
			out = append(out, v.Name)
		}
	}
	return out
}

// HealthService verifies the evaluation environment.
type HealthService struct {
	prober ModelProber
	lookup func(string) string
	logger *slog.Logger
}

func NewHealthService(prober ModelProber, lookup func(string) string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{prober: prober, lookup: lookup, logger: logger}
}

// Check reports missing variables and probes the model gateway. The probe
// needs OPENROUTER_API_KEY; it is not attempted without one.
func (s *HealthService) Check(ctx context.Context) *HealthReport {
	rep := &HealthReport{Variables: health.CheckVariables(s.lookup)}

	apiKey := s.lookup("OPENROUTER_API_KEY")
	if apiKey == "" {
		rep.ProbeErr = &health.NetworkError{URL: health.DefaultBaseURL, Err: errMissingAPIKey}
		s.logger.Warn("skipping gateway probe", "reason", "OPENROUTER_API_KEY not set")
		return rep
	}

	baseURL := s.lookup("OPENROUTER_BASE_URL")
	if baseURL == "" {
		baseURL = health.DefaultBaseURL
	}

	models, err := s.prober.ProbeModels(ctx, baseURL, apiKey)
	if err != nil {
		rep.ProbeErr = err
		s.logger.Warn("gateway probe failed", "url", baseURL, "error", err)
		return rep
	}
	rep.Models = models
	s.logger.Debug("gateway probe succeeded", "url", models.URL, "models", models.ModelCount, "latency", models.Latency)

	rep.Passed = len(rep.MissingVariables()) == 0
	return rep
}
