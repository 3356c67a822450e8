package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Violation describes a single point where a value failed the schema.
type Violation struct {
	Path     string // dotted path to the failing value, "$" for the root
	Message  string
	Expected string
	Actual   string
}

// ValidationError reports a schema rejection. It carries the first
// violation in its fields plus the full list, so callers can log
// everything while error text stays one line.
type ValidationError struct {
	Path       string
	Message    string
	Expected   string
	Actual     string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	path := e.Path
	if path == "" {
		path = "$"
	}
	msg := fmt.Sprintf("validation failed at %s: %s", path, e.Message)
	if e.Expected != "" {
		msg += fmt.Sprintf(" (expected %s, got %s)", e.Expected, e.Actual)
	}
	if n := len(e.Violations); n > 1 {
		msg += fmt.Sprintf("; %d violations total", n)
	}
	return msg
}

// Validate parses data as JSON and checks it against the schema.
// A non-nil return is always a *ValidationError, except when the bytes
// are not JSON at all, in which case the parse error is returned.
func (s *Schema) Validate(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to parse candidate JSON: %w", err)
	}
	return s.ValidateValue(value)
}

// ValidateValue checks an already-decoded value against the schema.
func (s *Schema) ValidateValue(value any) error {
	violations := s.Check(value)
	if len(violations) == 0 {
		return nil
	}
	first := violations[0]
	return &ValidationError{
		Path:       first.Path,
		Message:    first.Message,
		Expected:   first.Expected,
		Actual:     first.Actual,
		Violations: violations,
	}
}

// Check walks the value and collects every violation instead of stopping
// at the first.
func (s *Schema) Check(value any) []Violation {
	var violations []Violation
	checkValue(s, value, "", &violations)
	return violations
}

func checkValue(s *Schema, value any, path string, out *[]Violation) {
	if s == nil {
		return
	}

	if s.Type != "" {
		actual := valueType(value)
		if !typeCompatible(s.Type, actual, value) {
			add(out, path, "unexpected type", s.Type, actual)
			return
		}
	}

	switch v := value.(type) {
	case map[string]any:
		checkObject(s, v, path, out)
	case []any:
		checkArray(s, v, path, out)
	case string:
		checkString(s, v, path, out)
	case float64:
		checkNumber(s, v, path, out)
	}
}

func checkObject(s *Schema, obj map[string]any, path string, out *[]Violation) {
	for _, name := range s.Required {
		if _, ok := obj[name]; !ok {
			expected := "value"
			if child := s.Properties[name]; child != nil && child.Type != "" {
				expected = child.Type
			}
			add(out, joinPath(path, name), "required field missing", expected, "nothing")
		}
	}

	for name, child := range s.Properties {
		if v, ok := obj[name]; ok {
			checkValue(child, v, joinPath(path, name), out)
		}
	}

	if s.AdditionalProperties != nil && !*s.AdditionalProperties {
		for name := range obj {
			if _, ok := s.Properties[name]; !ok {
				add(out, joinPath(path, name), "unexpected field", "", "")
			}
		}
	}
}

func checkArray(s *Schema, arr []any, path string, out *[]Violation) {
	if s.Items == nil {
		return
	}
	for i, item := range arr {
		checkValue(s.Items, item, fmt.Sprintf("%s[%d]", path, i), out)
	}
}

func checkString(s *Schema, v string, path string, out *[]Violation) {
	if len(s.Enum) > 0 && !containsString(s.Enum, v) {
		add(out, path, "value not in enum", fmt.Sprintf("one of %v", s.Enum), v)
	}
	if s.MinLength != nil && len(v) < *s.MinLength {
		add(out, path, "string too short", fmt.Sprintf("at least %d chars", *s.MinLength), fmt.Sprintf("%d chars", len(v)))
	}
	if s.MaxLength != nil && len(v) > *s.MaxLength {
		add(out, path, "string too long", fmt.Sprintf("at most %d chars", *s.MaxLength), fmt.Sprintf("%d chars", len(v)))
	}
	if s.Pattern != "" {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			add(out, path, "invalid pattern in schema", "", "")
		} else if !re.MatchString(v) {
			add(out, path, "value does not match pattern", s.Pattern, v)
		}
	}
	checkFormat(s, v, path, out)
}

func checkFormat(s *Schema, v string, path string, out *[]Violation) {
	switch s.Format {
	case "uuid":
		if _, err := uuid.Parse(v); err != nil {
			add(out, path, "not a valid UUID", "uuid", v)
		}
	case "date-time":
		if _, err := time.Parse(time.RFC3339, v); err != nil {
			add(out, path, "not a valid RFC 3339 timestamp", "date-time", v)
		}
	case "email":
		if !emailRe.MatchString(v) {
			add(out, path, "not a valid email address", "email", v)
		}
	}
}

func checkNumber(s *Schema, v float64, path string, out *[]Violation) {
	if s.Minimum != nil && v < *s.Minimum {
		add(out, path, "number below minimum", fmt.Sprintf(">= %v", *s.Minimum), fmt.Sprintf("%v", v))
	}
	if s.Maximum != nil && v > *s.Maximum {
		add(out, path, "number above maximum", fmt.Sprintf("<= %v", *s.Maximum), fmt.Sprintf("%v", v))
	}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func add(out *[]Violation, path, message, expected, actual string) {
	*out = append(*out, Violation{Path: path, Message: message, Expected: expected, Actual: actual})
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// valueType names the JSON type of a decoded value.
func valueType(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// typeCompatible reports whether a decoded value of actual type satisfies
// the declared type. JSON numbers with no fractional part count as
// integers.
func typeCompatible(declared, actual string, value any) bool {
	if declared == actual {
		return true
	}
	if declared == "integer" && actual == "number" {
		f, ok := value.(float64)
		return ok && f == math.Trunc(f)
	}
	return false
}
