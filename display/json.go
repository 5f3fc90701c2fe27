package display

import "encoding/json"

// MarshalJSON marshals v as indented JSON for human-readable reports
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
