package health

import "strings"

// RequiredVariables are the environment variables the prompt evaluations need.
var RequiredVariables = []string{
	"OPENROUTER_API_KEY",
	"OPENROUTER_BASE_URL",
	"ANTHROPIC_API_KEY",
	"ANTHROPIC_BASE_URL",
}

const maskPrefix = 10

// VariableStatus is the check outcome of one environment variable.
type VariableStatus struct {
	Name    string `json:"name"`
	Present bool   `json:"present"`
	Display string `json:"display,omitempty"`
}

// CheckVariables reports which required variables are set. Values of key
// variables are masked.
func CheckVariables(lookup func(string) string) []VariableStatus {
	out := make([]VariableStatus, 0, len(RequiredVariables))
	for _, name := range RequiredVariables {
		v := lookup(name)
		st := VariableStatus{Name: name, Present: v != ""}
		if st.Present {
			if strings.HasSuffix(name, "_KEY") {
				st.Display = Mask(v)
			} else {
				st.Display = v
			}
		}
		out = append(out, st)
	}
	return out
}

// Mask keeps the first ten characters of a secret.
func Mask(s string) string {
	r := []rune(s)
	if len(r) <= maskPrefix {
		return strings.Repeat("*", len(r))
	}
	return string(r[:maskPrefix]) + "..."
}
