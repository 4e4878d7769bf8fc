package fields

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/BaSui01/ocrflow/types"
)

// errNotDecimal 供应商偶尔返回 "NaN" 之类的占位值, ParseFloat 会接受它们, 但结果无法编码成 JSON.
var errNotDecimal = errors.New("not a finite decimal number")

// Number is the set of kinds ToNumber can produce.
type Number interface {
	int64 | float64
}

// ToNumber parses raw into T. nil or blank input yields nil; anything else
// that is not a number is a CONVERSION_ERROR.
func ToNumber[T Number](raw *string) (*T, error) {
	if raw == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil, nil
	}

	var zero T
	switch any(zero).(type) {
	case int64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, types.NewConversionError("int", *raw, err)
		}
		out := T(v)
		return &out, nil
	default:
		if !decimalLiteral(s) {
			return nil, types.NewConversionError("float", *raw, errNotDecimal)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, types.NewConversionError("float", *raw, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, types.NewConversionError("float", *raw, errNotDecimal)
		}
		out := T(v)
		return &out, nil
	}
}

// decimalLiteral 只允许十进制数字, 小数点, 符号和指数. 排除 NaN, Inf 与十六进制浮点.
func decimalLiteral(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9', c == '.', c == '-', c == '+', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}

var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"02.01.2006",
}

var clockLayouts = []string{
	"15:04",
	time.TimeOnly,
	"15:04:05.999999999",
}

// CombineDateAndTime merges a provider date and an optional time of day.
// A nil date yields nil. A missing time means midnight. Results are in UTC
// unless the date itself carries an offset.
func CombineDateAndTime(date, clock *string) (*time.Time, error) {
	if date == nil || strings.TrimSpace(*date) == "" {
		return nil, nil
	}

	d, err := parseWithLayouts(strings.TrimSpace(*date), dateLayouts)
	if err != nil {
		return nil, types.NewConversionError("date", *date, err)
	}

	if clock == nil || strings.TrimSpace(*clock) == "" {
		return &d, nil
	}

	c, err := parseWithLayouts(strings.TrimSpace(*clock), clockLayouts)
	if err != nil {
		return nil, types.NewConversionError("time", *clock, err)
	}

	out := time.Date(d.Year(), d.Month(), d.Day(),
		c.Hour(), c.Minute(), c.Second(), c.Nanosecond(), d.Location())
	return &out, nil
}

func parseWithLayouts(value string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no known layout matches %q", value)
}
