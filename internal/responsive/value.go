package responsive

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stylebag/internal/calc"
)

// digitsOnly matches unit-less sizes. It also matches "", which is
// rejected earlier as an empty value; signs and decimals do not match.
var digitsOnly = regexp.MustCompile(`^\d*$`)

// ParseValue turns a raw size into a string ready for a style rule.
// Numbers and digit-only strings get a px suffix; the keywords auto,
// initial and inherit and other strings are returned unchanged.
func ParseValue(value any) (string, error) {
	switch v := value.(type) {
	case nil, undefined:
		return "", ErrEmptyValue
	case string:
		switch {
		case v == "":
			return "", ErrEmptyValue
		case v == "auto", v == "initial", v == "inherit":
			return v, nil
		case digitsOnly.MatchString(v):
			return v + "px", nil
		default:
			return v, nil
		}
	case int:
		return strconv.FormatInt(int64(v), 10) + "px", nil
	case int8:
		return strconv.FormatInt(int64(v), 10) + "px", nil
	case int16:
		return strconv.FormatInt(int64(v), 10) + "px", nil
	case int32:
		return strconv.FormatInt(int64(v), 10) + "px", nil
	case int64:
		return strconv.FormatInt(v, 10) + "px", nil
	case uint:
		return strconv.FormatUint(uint64(v), 10) + "px", nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10) + "px", nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10) + "px", nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10) + "px", nil
	case uint64:
		return strconv.FormatUint(v, 10) + "px", nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32) + "px", nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64) + "px", nil
	case json.Number:
		return v.String() + "px", nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnparsable, value)
	}
}

// Calculate composes sizes into a single calc() expression. Each size goes
// through ParseValue first.
func Calculate(sizes ...any) (string, error) {
	terms := make([]string, 0, len(sizes))
	for i, size := range sizes {
		term, err := ParseValue(size)
		if err != nil {
			return "", fmt.Errorf("size %d: %w", i, err)
		}
		terms = append(terms, term)
	}

	expr := calc.New()
	expr.SetTerms(terms...)
	return expr.String(), nil
}

var colorPassthrough = map[string]bool{
	"transparent":  true,
	"currentcolor": true,
	"inherit":      true,
	"initial":      true,
	"unset":        true,
}

// NormalizeColor converts a named or hex color to #rrggbb. CSS keywords and
// functional notations (rgb(), hsl(), var()) are returned unchanged.
func NormalizeColor(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", ErrEmptyValue
	}
	if colorPassthrough[v] || strings.HasSuffix(v, ")") {
		return v, nil
	}

	// #rgb shorthand
	if len(v) == 4 && v[0] == '#' {
		v = string([]byte{'#', v[1], v[1], v[2], v[2], v[3], v[3]})
	}

	c := tcell.GetColor(v)
	if c == tcell.ColorDefault || c.Hex() < 0 {
		return "", fmt.Errorf("%w: color %q", ErrUnparsable, value)
	}
	return fmt.Sprintf("#%06x", c.Hex()), nil
}
