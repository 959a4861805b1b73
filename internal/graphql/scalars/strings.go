package scalars

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/zatekoja/projectapi-e2e/internal/scenario"
)

// UnmarshalString applies the built-in String coercion
func UnmarshalString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New(scenario.NonStringReason(v))
	}
	return s, nil
}

// UnmarshalInt applies the built-in Int coercion
func UnmarshalInt(v interface{}) (int, error) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("Int cannot represent non-integer value: %s", scenario.Inspect(v))
	}
	return int(f), nil
}

// UnmarshalBoolean applies the built-in Boolean coercion
func UnmarshalBoolean(v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("Boolean cannot represent a non boolean value: %s", scenario.Inspect(v))
	}
	return b, nil
}

var constraintPattern = regexp.MustCompile(`^[A-Za-z0-9]+_String(_NotNull)?_minLength_(\d+)_maxLength_(\d+)$`)

// StringConstraint is a length-constrained String scalar such as
// name_String_minLength_1_maxLength_128
type StringConstraint struct {
	Name    string
	NotNull bool
	Min     int
	Max     int
}

// ParseStringConstraint recognises constrained scalar names
func ParseStringConstraint(name string) (StringConstraint, bool) {
	m := constraintPattern.FindStringSubmatch(name)
	if m == nil {
		return StringConstraint{}, false
	}
	lo, _ := strconv.Atoi(m[2])
	hi, _ := strconv.Atoi(m[3])
	return StringConstraint{Name: name, NotNull: m[1] != "", Min: lo, Max: hi}, true
}

// Unmarshal coerces v and enforces the length bounds
func (c StringConstraint) Unmarshal(v interface{}) (string, error) {
	s, err := UnmarshalString(v)
	if err != nil {
		return "", err
	}
	n := utf8.RuneCountInString(s)
	if n < c.Min {
		return "", errors.New(scenario.MinLengthReason(c.Name, c.Min))
	}
	if n > c.Max {
		return "", errors.New(scenario.MaxLengthReason(c.Name, c.Max))
	}
	return s, nil
}
