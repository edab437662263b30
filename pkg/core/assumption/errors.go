package assumption

import (
	"fmt"
	"strings"
)

// ConfigError is one invalid or missing input field.
// PropertyID is empty for global assumptions.
type ConfigError struct {
	PropertyID string      `json:"property_id,omitempty"`
	Field      string      `json:"field"`
	Value      interface{} `json:"value,omitempty"`
	Reason     string      `json:"reason"`
}

func (e ConfigError) Error() string {
	scope := "global"
	if e.PropertyID != "" {
		scope = "property '" + e.PropertyID + "'"
	}
	if e.Value == nil {
		return fmt.Sprintf("%s: %s %s", scope, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s (got %v)", scope, e.Field, e.Reason, e.Value)
}

// ConfigErrors collects every problem found in one record
type ConfigErrors []ConfigError

func (es ConfigErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Fields lists the offending field names in order
func (es ConfigErrors) Fields() []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Field
	}
	return out
}
