package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/teranos/rs2ts/errors"
)

// Format names a machine-readable output encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat accepts json, yaml or toml, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	}
	return "", errors.WithHint(
		errors.Newf("unknown output format %q", s),
		"use json, yaml or toml")
}

// Marshal encodes v in format
func Marshal(format Format, v interface{}) ([]byte, error) {
	switch format {
	case FormatJSON:
		return MarshalJSON(v)
	case FormatYAML:
		return MarshalYAML(v)
	case FormatTOML:
		return gotoml.Marshal(v)
	}
	return nil, errors.Newf("unknown output format %q", format)
}

// ShouldOutputJSON reports whether --json was set on cmd or on the root
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		on, _ := cmd.Flags().GetBool("json")
		return on
	}
	on, _ := cmd.Root().PersistentFlags().GetBool("json")
	return on
}

// Fprint writes v to w in format, terminated by a newline
func Fprint(w io.Writer, format Format, v interface{}) error {
	data, err := Marshal(format, v)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", format)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

// Output writes v to stdout in the named format
func Output(format string, v interface{}) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	return Fprint(os.Stdout, f, v)
}

// OutputJSON marshals and prints JSON using display.MarshalJSON
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
