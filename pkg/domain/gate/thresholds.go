package gate

import "fmt"

// Default minimum scores (percent) per gated metric.
const (
	DefaultAgentConsistency   = 90.0
	DefaultDocQuality         = 85.0
	DefaultToolUsage          = 95.0
	DefaultTemplateCompliance = 100.0
	DefaultOverallSuccessRate = 90.0
)

// Thresholds are the minimum scores each gated metric must reach.
type Thresholds struct {
	AgentConsistency   float64 `json:"agent_consistency" yaml:"agent_consistency"`
	DocQuality         float64 `json:"doc_quality" yaml:"doc_quality"`
	ToolUsage          float64 `json:"tool_usage" yaml:"tool_usage"`
	TemplateCompliance float64 `json:"template_compliance" yaml:"template_compliance"`
	OverallSuccessRate float64 `json:"overall_success_rate" yaml:"overall_success_rate"`
}

// DefaultThresholds returns the built-in gate thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AgentConsistency:   DefaultAgentConsistency,
		DocQuality:         DefaultDocQuality,
		ToolUsage:          DefaultToolUsage,
		TemplateCompliance: DefaultTemplateCompliance,
		OverallSuccessRate: DefaultOverallSuccessRate,
	}
}

// For returns the threshold of a gated metric.
func (t Thresholds) For(c Category) float64 {
	switch c {
	case AgentConsistency:
		return t.AgentConsistency
	case DocQuality:
		return t.DocQuality
	case ToolUsage:
		return t.ToolUsage
	case TemplateCompliance:
		return t.TemplateCompliance
	case OverallSuccessRate:
		return t.OverallSuccessRate
	}
	return 0
}

// EmptyCategoryPolicy decides how a metric without samples is gated.
type EmptyCategoryPolicy string

const (
	// EmptyFail scores an empty metric 0, failing it unless its threshold is 0.
	EmptyFail EmptyCategoryPolicy = "fail"
	// EmptySkip marks an empty metric as skipped and leaves it out of the verdict.
	EmptySkip EmptyCategoryPolicy = "skip"
)

// ParseEmptyCategoryPolicy validates a policy name. The empty string maps to
// EmptyFail.
func ParseEmptyCategoryPolicy(s string) (EmptyCategoryPolicy, error) {
	switch EmptyCategoryPolicy(s) {
	case "", EmptyFail:
		return EmptyFail, nil
	case EmptySkip:
		return EmptySkip, nil
	}
	return "", fmt.Errorf("unknown empty-category policy %q (want %q or %q)", s, EmptyFail, EmptySkip)
}
