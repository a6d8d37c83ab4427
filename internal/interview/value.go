package interview

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Value is a captured answer. It is a tagged union resolved at the point
// of capture: a single string for single-choice, yes-no, rating and
// free-text questions, or a set of strings for multi-choice questions.
type Value struct {
	multi bool
	str   string
	set   map[string]struct{}
}

// StringValue wraps a single-string answer.
func StringValue(s string) Value {
	return Value{str: s}
}

// SetValue wraps a multi-choice answer. Duplicates collapse.
func SetValue(options ...string) Value {
	set := make(map[string]struct{}, len(options))
	for _, o := range options {
		set[o] = struct{}{}
	}
	return Value{multi: true, set: set}
}

// IsSet reports whether the value is a multi-choice set.
func (v Value) IsSet() bool {
	return v.multi
}

// Text returns the single-string answer, or "" for set values.
func (v Value) Text() string {
	return v.str
}

// Members returns the set members in sorted order. Nil for string values.
func (v Value) Members() []string {
	if !v.multi {
		return nil
	}
	members := make([]string, 0, len(v.set))
	for o := range v.set {
		members = append(members, o)
	}
	sort.Strings(members)
	return members
}

// Has reports whether option is a member of a set value.
func (v Value) Has(option string) bool {
	if !v.multi {
		return false
	}
	_, ok := v.set[option]
	return ok
}

// Toggle returns a set value with option added if absent, or removed if
// present. Toggling a zero or string value starts from an empty set, so
// the first toggle yields a one-element set. Toggling the last member
// off yields an empty set, not an absent answer.
func (v Value) Toggle(option string) Value {
	next := SetValue(v.Members()...)
	if _, ok := next.set[option]; ok {
		delete(next.set, option)
	} else {
		next.set[option] = struct{}{}
	}
	return next
}

// Equals reports exact equality against a single string value. Set
// values never match, even when the string is one of their members;
// visibility conditions are equality-only.
func (v Value) Equals(s string) bool {
	return !v.multi && v.str == s
}

// Blank reports whether the value counts as unanswered for required
// checks. An empty string is blank; an empty set is a recorded answer
// and is not blank.
func (v Value) Blank() bool {
	return !v.multi && v.str == ""
}

// MarshalJSON encodes string values as JSON strings and set values as
// sorted JSON arrays, matching the wire shape of captured answers.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.multi {
		return json.Marshal(v.Members())
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*v = SetValue(arr...)
		return nil
	}
	return fmt.Errorf("answer value must be a string or an array of strings")
}
