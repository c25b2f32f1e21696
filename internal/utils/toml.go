package utils

import "github.com/BurntSushi/toml"

// Table is an untyped TOML table, used to salvage the well-formed values of a
// file that does not decode into its struct.
type Table map[string]any

// ReadTable decodes path without a target type.
func ReadTable(path string) (Table, error) {
	var t Table
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// Sub returns the table nested under key.
func (t Table) Sub(key string) (Table, bool) {
	sub, ok := t[key].(map[string]any)
	return sub, ok
}

// IntTo stores the integer under key in dst. Other types leave dst alone.
func (t Table) IntTo(key string, dst *int) {
	if v, ok := t[key].(int64); ok {
		*dst = int(v)
	}
}

// BoolTo stores the bool under key in dst.
func (t Table) BoolTo(key string, dst *bool) {
	if v, ok := t[key].(bool); ok {
		*dst = v
	}
}

// StringTo stores the string under key in dst.
func (t Table) StringTo(key string, dst *string) {
	if v, ok := t[key].(string); ok {
		*dst = v
	}
}
