package calc

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// ErrorMarker is the display value for undefined results.
	ErrorMarker = "Error"

	// MaxDisplayLen bounds the display buffer while digits are typed and
	// the plain rendering of results.
	MaxDisplayLen = 12

	maxDigits    = 10
	sciPrecision = 5
)

// numberPrefix matches the leading numeral of a display string.
var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Number renders v in its default decimal form: the shortest string that
// round-trips, plain between 1e-6 and 1e21 and exponential outside it.
// NaN renders as ErrorMarker.
func Number(v float64) string {
	switch {
	case math.IsNaN(v):
		return ErrorMarker
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return trimExponent(strconv.FormatFloat(v, 'e', -1, 64))
}

// Format maps a value to its bounded display string. Values whose default
// form carries more than ten digits or more than twelve characters are shown
// in scientific notation with five fractional digits.
func Format(v float64) string {
	if math.IsNaN(v) {
		return ErrorMarker
	}

	s := Number(v)
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}

	if digits > maxDigits || len(s) > MaxDisplayLen {
		return toExponential(v, sciPrecision)
	}
	return s
}

// exactDigits is enough fractional digits to print any float64 exactly.
const exactDigits = 800

// toExponential formats finite v in scientific notation with frac
// fractional digits. Exact halfway values round away from zero.
func toExponential(v float64, frac int) string {
	exact := strconv.FormatFloat(v, 'e', exactDigits, 64)
	mantissa, exp, _ := strings.Cut(exact, "e")
	neg := strings.HasPrefix(mantissa, "-")
	digits := strings.Replace(strings.TrimPrefix(mantissa, "-"), ".", "", 1)

	tail := digits[frac+1:]
	if tail[0] != '5' || strings.TrimRight(tail[1:], "0") != "" {
		return trimExponent(strconv.FormatFloat(v, 'e', frac, 64))
	}

	e, _ := strconv.Atoi(exp)
	head := []byte(digits[:frac+1])
	i := len(head) - 1
	for ; i >= 0 && head[i] == '9'; i-- {
		head[i] = '0'
	}
	if i < 0 {
		head = append([]byte{'1'}, head[:frac]...)
		e++
	} else {
		head[i]++
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte(head[0])
	if frac > 0 {
		b.WriteByte('.')
		b.Write(head[1:])
	}
	fmt.Fprintf(&b, "e%+d", e)
	return b.String()
}

// FormatResult formats an evaluator result, substituting ErrorMarker when
// the evaluation failed.
func FormatResult(v float64, err error) string {
	if err != nil {
		return ErrorMarker
	}
	return Format(v)
}

// Parse reads the leading numeral of s, ignoring any trailing text. A string
// with no leading numeral, such as ErrorMarker, yields NaN.
func Parse(s string) float64 {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "Infinity"), strings.HasPrefix(s, "+Infinity"):
		return math.Inf(1)
	case strings.HasPrefix(s, "-Infinity"):
		return math.Inf(-1)
	}

	m := numberPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Overflow still yields the signed infinity.
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}

// trimExponent drops leading zeros from the exponent ("1e-07" -> "1e-7").
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mantissa, sign, exp := s[:i], s[i+1:i+2], s[i+2:]
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "e" + sign + exp
}
