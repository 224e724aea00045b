package value

import (
	"math"
	"strconv"
	"strings"
)

const listSeparator = ", "

// Encode converts v into the text shown in a tree cell.
//
// Strings are returned as-is, lists are joined with ", ", booleans use the
// legacy "True"/"False" spelling and null uses "None". Objects only appear
// here as list elements and are rendered as compact JSON.
func Encode(v Value) string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return formatFloat(v.flt)
	case KindBool:
		if v.bln {
			return "True"
		}
		return "False"
	case KindNull:
		return "None"
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			if item.kind == KindList || item.kind == KindObject {
				parts[i] = string(appendValue(nil, item))
				continue
			}
			parts[i] = Encode(item)
		}
		return strings.Join(parts, listSeparator)
	case KindObject:
		return string(appendValue(nil, v))
	default:
		return ""
	}
}

// Decode converts tree-cell text back into a Value using the legacy
// heuristic, in order:
//
//	"True"/"False"                  -> Bool
//	all ASCII digits                -> Int
//	exactly one "." and digits      -> Float
//	contains ","                    -> List of trimmed Strings
//	anything else                   -> String
//
// Digit strings that would not survive Int formatting (leading zeros,
// int64 overflow) stay Strings.
func Decode(text string) Value {
	switch text {
	case "True":
		return Bool(true)
	case "False":
		return Bool(false)
	}

	if isDigits(text) {
		if i, ok := parseCanonicalInt(text); ok {
			return Int(i)
		}
		return String(text)
	}

	if strings.Count(text, ".") == 1 && isDigits(strings.Replace(text, ".", "", 1)) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return Float(f)
		}
	}

	if strings.Contains(text, ",") {
		parts := strings.Split(text, ",")
		items := make([]Value, len(parts))
		for i, p := range parts {
			items[i] = String(strings.TrimSpace(p))
		}
		return List(items...)
	}

	return String(text)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseCanonicalInt(s string) (int64, bool) {
	if len(s) > 1 && s[0] == '0' {
		return 0, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// formatFloat renders f the way the legacy files spell floats: integral
// values keep a trailing ".0" and very small or large magnitudes switch to
// exponent notation.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
