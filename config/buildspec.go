package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// BuildspecKind reports which representation a Buildspec holds.
type BuildspecKind int

const (
	BuildspecAbsent BuildspecKind = iota
	BuildspecString
	BuildspecObject
)

func (k BuildspecKind) String() string {
	switch k {
	case BuildspecString:
		return "string"
	case BuildspecObject:
		return "object"
	default:
		return "default"
	}
}

func (k BuildspecKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *BuildspecKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "string":
		*k = BuildspecString
	case "object":
		*k = BuildspecObject
	case "default", "":
		*k = BuildspecAbsent
	default:
		return fmt.Errorf("unknown buildspec source %q", text)
	}
	return nil
}

// Buildspec holds the codebuildBuildspec option: absent, a string (a
// filename or inline spec), or a structured object.
type Buildspec struct {
	kind   BuildspecKind
	text   string
	object map[string]any
}

func BuildspecFromString(s string) Buildspec {
	return Buildspec{kind: BuildspecString, text: s}
}

func BuildspecFromObject(obj map[string]any) Buildspec {
	if obj == nil {
		obj = map[string]any{}
	}
	return Buildspec{kind: BuildspecObject, object: obj}
}

func (b Buildspec) Kind() BuildspecKind { return b.kind }

func (b Buildspec) String() string { return b.text }

func (b Buildspec) Object() map[string]any { return b.object }

// cloneObject deep copies the maps and slices of a decoded buildspec.
func cloneObject(obj map[string]any) map[string]any {
	if obj == nil {
		return nil
	}
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneObject(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func (b Buildspec) IsZero() bool { return b.kind == BuildspecAbsent }

func (b *Buildspec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*b = Buildspec{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = BuildspecFromString(s)
		return nil
	case data[0] == '{':
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*b = BuildspecFromObject(obj)
		return nil
	default:
		return ErrBuildspecType
	}
}

func (b Buildspec) MarshalJSON() ([]byte, error) {
	switch b.kind {
	case BuildspecString:
		return json.Marshal(b.text)
	case BuildspecObject:
		return json.Marshal(b.object)
	default:
		return []byte("null"), nil
	}
}

func (b *Buildspec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*b = Buildspec{}
			return nil
		}
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*b = BuildspecFromString(s)
		return nil
	case yaml.MappingNode:
		var obj map[string]any
		if err := node.Decode(&obj); err != nil {
			return err
		}
		*b = BuildspecFromObject(obj)
		return nil
	default:
		return ErrBuildspecType
	}
}

func (b Buildspec) MarshalYAML() (any, error) {
	switch b.kind {
	case BuildspecString:
		return b.text, nil
	case BuildspecObject:
		return b.object, nil
	default:
		return nil, nil
	}
}

// PassthroughBuildspec returns the default buildspec. It prints the build
// environment and hands every file through as the build artifact.
func PassthroughBuildspec() map[string]any {
	return map[string]any{
		"version": "0.2",
		"phases": map[string]any{
			"build": map[string]any{
				"commands": []any{"env"},
			},
		},
		"artifacts": map[string]any{
			"files": []any{"**/*"},
		},
	}
}

// PassthroughBuildspecText is the canonical text of PassthroughBuildspec.
func PassthroughBuildspecText() string {
	text, err := CanonicalText(PassthroughBuildspec())
	if err != nil {
		panic(err)
	}
	return text
}

// CanonicalText renders a buildspec object as two-space indented JSON with
// sorted keys and no HTML escaping. JSON is valid YAML, so CodeBuild accepts
// the result as an inline buildspec.
//
// The same form is used for the passthrough spec and for user objects, so
// key order in the options file does not show up in the template. Stacks
// that previously carried compact, insertion-ordered text get a one-time
// BuildSpec diff on the CodeBuild project.
func CanonicalText(obj map[string]any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(obj); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBuildspec, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
