package profiles

import (
	"fmt"
	"os"

	"resume-site/resume/model"
)

// LoadFile reads and validates a YAML or JSON résumé file.
func LoadFile(path string) (model.ResumeData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.ResumeData{}, fmt.Errorf("read profile file: %w", err)
	}
	data, err := Decode(raw, path)
	if err != nil {
		return model.ResumeData{}, fmt.Errorf("profile file %s: %w", path, err)
	}
	return data, nil
}

// NewFile parses path once and serves the result.
func NewFile(path string) (*Static, error) {
	data, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &Static{data: data}, nil
}
