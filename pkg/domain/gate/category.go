package gate

import "strings"

// Category is a quality dimension used to bucket test outcomes.
type Category string

const (
	AgentConsistency   Category = "agent_consistency"
	DocQuality         Category = "doc_quality"
	ToolUsage          Category = "tool_usage"
	TemplateCompliance Category = "template_compliance"
	OverallSuccessRate Category = "overall_success_rate"

	// Uncategorized collects outcomes no category claims. They are kept in
	// the report details but never scored.
	Uncategorized Category = "uncategorized"
)

// TestCategories are the outcome categories in evaluation order.
var TestCategories = []Category{AgentConsistency, DocQuality, ToolUsage, TemplateCompliance}

// GateCategories are every gated metric in report order.
var GateCategories = []Category{AgentConsistency, DocQuality, ToolUsage, TemplateCompliance, OverallSuccessRate}

// categoryKeywords are matched case-insensitively against descriptions; the
// first category with a hit wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{AgentConsistency, []string{"consistency", "一致性"}},
	{DocQuality, []string{"quality", "completeness", "format", "品質", "完整性", "格式"}},
	{ToolUsage, []string{"tool", "工具"}},
	{TemplateCompliance, []string{"template", "模板"}},
}

var displayNames = map[Category]string{
	AgentConsistency:   "Agent Consistency",
	DocQuality:         "Doc Quality",
	ToolUsage:          "Tool Usage",
	TemplateCompliance: "Template Compliance",
	OverallSuccessRate: "Overall Success Rate",
	Uncategorized:      "Uncategorized",
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// ParseCategory resolves an explicit category tag.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range TestCategories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Classify assigns an outcome to a category. An explicit metadata tag naming
// a known category wins over keyword inference on the description.
func Classify(o TestOutcome) Category {
	if c, ok := ParseCategory(o.TestCase.Metadata.Category); ok {
		return c
	}

	desc := strings.ToLower(o.TestCase.Description)
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(desc, kw) {
				return ck.category
			}
		}
	}
	return Uncategorized
}
