// Package scenario loads the engine input: one global assumption record and
// the properties of the portfolio.
package scenario

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hospitality_proforma/pkg/core/assumption"
)

// Scenario is one complete set of engine inputs
type Scenario struct {
	Name       string                            `json:"name" yaml:"name"`
	Global     assumption.GlobalAssumptions      `json:"global" yaml:"global"`
	Properties []assumption.PropertyAssumptions `json:"properties" yaml:"properties"`
}

// Format is a scenario file encoding
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatHJSON Format = "hjson"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder
var ErrUnsupportedFormat = errors.New("unsupported scenario format")

// FormatFromPath picks the decoder from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hjson":
		return FormatHJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads and decodes a scenario file
func Load(path string) (*Scenario, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Property returns the property with the given ID
func (s *Scenario) Property(id string) (*assumption.PropertyAssumptions, bool) {
	for i := range s.Properties {
		if s.Properties[i].ID == id {
			return &s.Properties[i], true
		}
	}
	return nil, false
}

// Fingerprint is the SHA-256 of the scenario's canonical JSON. Identical
// inputs always share a fingerprint.
func (s *Scenario) Fingerprint() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
