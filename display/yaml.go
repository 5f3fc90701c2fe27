package display

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// MarshalYAML marshals v as YAML with two-space indentation
func MarshalYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
