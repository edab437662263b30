package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"
)

// Decode parses a scenario in the given format. Unknown fields are rejected
// so misspelled assumptions do not silently fall back to defaults.
func Decode(data []byte, format Format) (*Scenario, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		var s Scenario
		if err := yaml.UnmarshalStrict(data, &s); err != nil {
			return nil, fmt.Errorf("YAML_PARSE_ERROR: %w", err)
		}
		return &s, nil
	case FormatHJSON:
		converted, err := HJSONToJSON(data)
		if err != nil {
			return nil, err
		}
		return strictJSON(converted)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// decodeJSON tries the input as-is, then once more after repair.
// Hand-edited files often carry trailing commas or comments.
func decodeJSON(data []byte) (*Scenario, error) {
	s, err := strictJSON(data)
	if err == nil {
		return s, nil
	}
	repaired, rerr := RepairJSON(string(data))
	if rerr != nil {
		return nil, fmt.Errorf("JSON_STRUCTURAL_ERROR: %w", err)
	}
	s, rerr = strictJSON([]byte(repaired))
	if rerr != nil {
		return nil, fmt.Errorf("JSON_STRUCTURAL_ERROR: %w", err)
	}
	return s, nil
}

func strictJSON(data []byte) (*Scenario, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RepairJSON fixes common hand-editing mistakes: missing quotes around keys,
// single quotes, trailing commas, comments, unclosed brackets.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// HJSONToJSON parses Hjson and re-encodes it as standard JSON
func HJSONToJSON(data []byte) ([]byte, error) {
	var tree interface{}
	if err := hjson.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}
	out, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	return out, nil
}
