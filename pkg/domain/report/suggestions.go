package report

import "github.com/felixgeelhaar/reqgate/pkg/domain/gate"

var genericSuggestions = []string{"Review the related configuration and implementation."}

var suggestions = map[gate.Category][]string{
	gate.AgentConsistency: {
		"Check the prompt template for consistency so the same input yields similar output.",
		"Lower the model temperature to reduce output randomness.",
		"Run the tests more times to get more stable statistics.",
		"Check whether test inputs are too vague and destabilise the output.",
	},
	gate.DocQuality: {
		"Make sure every required template field is filled in.",
		"Check the YAML for correct formatting and completeness.",
		"Make requirement descriptions more detailed and precise.",
		"Make acceptance criteria concrete and testable.",
		"Add quantified metrics to non-functional requirements.",
	},
	gate.ToolUsage: {
		"Make sure the sequential-thinking tool is called at the right stage.",
		"Check that todo-list tool usage follows the workflow.",
		"Verify the order and logic of tool calls.",
		"Make tool usage more consistent.",
	},
	gate.TemplateCompliance: {
		"Follow the requirement template format strictly.",
		"Check that all required fields are present.",
		"Make sure IDs follow the F-001 and NFR-P-001 formats.",
		"Verify priority and type fields hold valid values.",
		"Make sure the YAML syntax is valid.",
	},
	gate.OverallSuccessRate: {
		"Analyse the failing test cases for common problems.",
		"Check the test environment and configuration.",
		"Refine the prompt design and the test cases.",
		"Consider adjusting the quality thresholds.",
	},
}

// Suggestions returns the improvement suggestions for a category. Unknown
// categories get a generic suggestion.
func Suggestions(c gate.Category) []string {
	if s, ok := suggestions[c]; ok {
		return s
	}
	return genericSuggestions
}
