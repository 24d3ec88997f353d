package adapter

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// a config value of exactly "{$.some.path}" is replaced by the value at that path
var templateRe = regexp.MustCompile(`^\{(\$[^{}]*)\}$`)

// bracketRe matches JSONPath index and quoted key selectors
var bracketRe = regexp.MustCompile(`\[(?:'([^']*)'|"([^"]*)"|(\d+))\]`)

// gjsonPath converts a simple JSONPath such as $.meta.files[0]['name'] to gjson syntax
func gjsonPath(jsonPath string) string {
	p := strings.TrimPrefix(jsonPath, "$")
	p = bracketRe.ReplaceAllStringFunc(p, func(m string) string {
		sub := bracketRe.FindStringSubmatch(m)
		for _, s := range sub[1:] {
			if s != "" {
				return "." + escape(s)
			}
		}
		return m
	})
	return strings.TrimPrefix(p, ".")
}

func escape(key string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(key)
}

// lookup returns the raw JSON at a JSONPath, or null when nothing is there
func lookup(event, jsonPath string) json.RawMessage {
	p := gjsonPath(jsonPath)
	if p == "" {
		return json.RawMessage(event)
	}
	v := gjson.Get(event, p)
	if !v.Exists() {
		return json.RawMessage("null")
	}
	return json.RawMessage(v.Raw)
}

// resolveTemplates replaces every templated string in config with the value it points at in event
func resolveTemplates(config, event string) (json.RawMessage, error) {

	dec := json.NewDecoder(bytes.NewReader([]byte(config)))
	dec.UseNumber()

	var tree interface{}
	if err := dec.Decode(&tree); err != nil {
		return nil, errors.Wrap(ErrMalformedMessage, "failed to decode task_config: "+err.Error())
	}

	out, err := json.Marshal(resolve(tree, event))
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal task_config")
	}
	return out, nil
}

func resolve(v interface{}, event string) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, e := range t {
			t[k] = resolve(e, event)
		}
		return t
	case []interface{}:
		for i, e := range t {
			t[i] = resolve(e, event)
		}
		return t
	case string:
		m := templateRe.FindStringSubmatch(t)
		if m == nil {
			return t
		}
		return lookup(event, m[1])
	default:
		return v
	}
}
