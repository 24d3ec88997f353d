package cnm

import (
	"github.com/tidwall/gjson"
)

// String reads a required scalar at path and returns it as a string. Numbers and
// booleans are accepted in their JSON text form.
func String(r gjson.Result, path string) (string, error) {
	v := r.Get(path)
	if !v.Exists() {
		return "", missing(path)
	}
	switch v.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return v.String(), nil
	}
	return "", mismatch(path, "string")
}

// Object reads a required JSON object at path
func Object(r gjson.Result, path string) (gjson.Result, error) {
	v := r.Get(path)
	if !v.Exists() {
		return v, missing(path)
	}
	if !v.IsObject() {
		return v, mismatch(path, "object")
	}
	return v, nil
}

// Raw returns the JSON text at path, or nil when the field is absent. A
// present null comes back as the text "null".
func Raw(r gjson.Result, path string) *string {
	v := r.Get(path)
	if !v.Exists() {
		return nil
	}
	raw := v.Raw
	return &raw
}
