package driver

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// ParameterType is the value type of a driver parameter.
type ParameterType int

const (
	TypeString ParameterType = iota
	TypeInt
	TypeBool
	TypeFloat
	TypeDuration
)

func (t ParameterType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeFloat:
		return "float"
	case TypeDuration:
		return "duration"
	default:
		return fmt.Sprintf("ParameterType(%d)", int(t))
	}
}

// Condition checks a converted parameter value.
type Condition func(value any) error

// Parameter describes one option a driver accepts when it is opened.
type Parameter struct {
	Identifier  string
	Name        string
	Description string
	Type        ParameterType
	Optional    bool
	Default     any
	Conditions  []Condition
}

// convert coerces v to the parameter type. Strings are parsed so values can
// come straight from flags or the environment.
func (p Parameter) convert(v any) (any, error) {
	s, isString := v.(string)
	switch p.Type {
	case TypeString:
		if isString {
			return s, nil
		}
	case TypeInt:
		switch n := v.(type) {
		case int:
			return n, nil
		case int32:
			return int(n), nil
		case int64:
			return int(n), nil
		case float64:
			if n == float64(int(n)) {
				return int(n), nil
			}
		case string:
			i, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil {
				return nil, InvalidParameter(p.Identifier, "%q is not an integer", n)
			}
			return i, nil
		}
	case TypeBool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			if err != nil {
				return nil, InvalidParameter(p.Identifier, "%q is not a boolean", b)
			}
			return parsed, nil
		}
	case TypeFloat:
		switch f := v.(type) {
		case float64:
			return f, nil
		case float32:
			return float64(f), nil
		case int:
			return float64(f), nil
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, InvalidParameter(p.Identifier, "%q is not a number", f)
			}
			return parsed, nil
		}
	case TypeDuration:
		switch d := v.(type) {
		case time.Duration:
			return d, nil
		case string:
			parsed, err := time.ParseDuration(strings.TrimSpace(d))
			if err != nil {
				return nil, InvalidParameter(p.Identifier, "%q is not a duration", d)
			}
			return parsed, nil
		}
	}
	return nil, InvalidParameter(p.Identifier, "expected %s, got %T", p.Type, v)
}

// Format describes a driver: its identity, the file extensions it handles
// and the parameters it accepts.
type Format struct {
	Identifier string
	Name       string
	Version    string
	Extensions []string
	Parameters []Parameter
}

// Parameter returns the descriptor with the given identifier.
func (f Format) Parameter(identifier string) (Parameter, bool) {
	for _, p := range f.Parameters {
		if p.Identifier == identifier {
			return p, true
		}
	}
	return Parameter{}, false
}

// MatchesExtension reports whether path ends with one of the format
// extensions, ignoring case.
func (f Format) MatchesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range f.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// Validate converts values to the declared parameter types, fills in
// defaults and runs the conditions. Unknown keys and missing required
// parameters are rejected.
func (f Format) Validate(values map[string]any) (Parameters, error) {
	out := make(Parameters, len(f.Parameters))

	unknown := make([]string, 0)
	for k := range values {
		if _, ok := f.Parameter(k); !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, InvalidParameter(unknown[0], "not accepted by %s", f.Identifier)
	}

	for _, p := range f.Parameters {
		v, ok := values[p.Identifier]
		if !ok || v == nil {
			if p.Default != nil {
				out[p.Identifier] = p.Default
				continue
			}
			if !p.Optional {
				return nil, InvalidParameter(p.Identifier, "required by %s", f.Identifier)
			}
			continue
		}
		converted, err := p.convert(v)
		if err != nil {
			return nil, err
		}
		for _, check := range p.Conditions {
			if err := check(converted); err != nil {
				return nil, InvalidParameter(p.Identifier, "%v", err)
			}
		}
		out[p.Identifier] = converted
	}
	return out, nil
}

// NotEmpty rejects empty strings.
func NotEmpty() Condition {
	return func(v any) error {
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			return errors.New("must not be empty")
		}
		return nil
	}
}

// Between rejects integers outside [lo, hi].
func Between(lo, hi int) Condition {
	return func(v any) error {
		if n, ok := v.(int); ok && (n < lo || n > hi) {
			return errors.Newf("%d is outside [%d, %d]", n, lo, hi)
		}
		return nil
	}
}

// Positive rejects durations and numbers that are not greater than zero.
func Positive() Condition {
	return func(v any) error {
		switch n := v.(type) {
		case int:
			if n <= 0 {
				return errors.Newf("%d must be positive", n)
			}
		case float64:
			if !(n > 0) {
				return errors.Newf("%v must be positive", n)
			}
		case time.Duration:
			if n <= 0 {
				return errors.Newf("%v must be positive", n)
			}
		}
		return nil
	}
}

// HasExtension rejects paths without one of the given extensions.
func HasExtension(exts ...string) Condition {
	return func(v any) error {
		s, _ := v.(string)
		if (Format{Extensions: exts}).MatchesExtension(s) {
			return nil
		}
		return errors.Newf("%q must end with one of %v", s, exts)
	}
}

// Parameters are resolved parameter values keyed by identifier.
type Parameters map[string]any

// String returns the string parameter, or "" if unset.
func (p Parameters) String(identifier string) string {
	s, _ := p[identifier].(string)
	return s
}

func (p Parameters) Int(identifier string) int {
	n, _ := p[identifier].(int)
	return n
}

func (p Parameters) Bool(identifier string) bool {
	b, _ := p[identifier].(bool)
	return b
}

func (p Parameters) Float(identifier string) float64 {
	f, _ := p[identifier].(float64)
	return f
}

func (p Parameters) Duration(identifier string) time.Duration {
	d, _ := p[identifier].(time.Duration)
	return d
}
