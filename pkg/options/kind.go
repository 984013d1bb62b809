package options

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-searchdown/pkg/candidates"
)

// Kind is the expected type of a setting.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "string"
	}
}

var errNotCoercible = errors.New("options: value not coercible")

// Coerce converts raw into the Go representation of kind: string, float64,
// bool, []string or candidates.Set.
func Coerce(kind Kind, raw any) (any, error) {
	switch kind {
	case KindString:
		return coerceString(raw)
	case KindNumber:
		return coerceNumber(raw)
	case KindBoolean:
		return coerceBool(raw)
	case KindArray:
		return coerceArray(raw)
	case KindObject:
		set, err := candidates.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errNotCoercible, err)
		}
		return set, nil
	default:
		return nil, errNotCoercible
	}
}

func coerceString(raw any) (any, error) {
	if s, ok := raw.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotCoercible, err)
	}
	return string(data), nil
}

var (
	decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	prefixedBases  = map[string]int{"0x": 16, "0o": 8, "0b": 2}
)

func coerceNumber(raw any) (any, error) {
	switch v := raw.(type) {
	case float64:
		return nanCheck(v)
	case float32:
		return nanCheck(float64(v))
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case bool:
		if v {
			return float64(1), nil
		}
		return float64(0), nil
	case json.Number:
		return coerceNumber(string(v))
	case string:
		return parseNumber(v)
	default:
		return nil, errNotCoercible
	}
}

func parseNumber(raw string) (any, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return float64(0), nil
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	if len(s) > 2 {
		if base, ok := prefixedBases[strings.ToLower(s[:2])]; ok {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return nil, errNotCoercible
			}
			return float64(n), nil
		}
	}
	if !decimalLiteral.MatchString(s) {
		return nil, errNotCoercible
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, nil
		}
		return nil, errNotCoercible
	}
	return f, nil
}

func nanCheck(f float64) (any, error) {
	if math.IsNaN(f) {
		return nil, errNotCoercible
	}
	return f, nil
}

func coerceBool(raw any) (any, error) {
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	switch strings.ToLower(fmt.Sprint(raw)) {
	case "true", "t", "yes", "y":
		return true, nil
	case "false", "f", "no", "n":
		return false, nil
	}
	return nil, errNotCoercible
}

func coerceArray(raw any) (any, error) {
	switch v := raw.(type) {
	case []string:
		return append([]string{}, v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, candidates.Stringify(item))
		}
		return out, nil
	case string:
		var items []any
		if err := json.Unmarshal([]byte(v), &items); err != nil || items == nil {
			return nil, errNotCoercible
		}
		return coerceArray(items)
	default:
		return nil, errNotCoercible
	}
}
