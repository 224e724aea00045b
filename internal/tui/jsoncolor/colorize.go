// Package jsoncolor renders case documents as syntax-colored JSON.
package jsoncolor

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/caseedit/internal/core/styles"
	"github.com/colonyops/caseedit/internal/core/value"
)

// Document marshals o with the given indent and colorizes the result.
func Document(o *value.Object, indent int) (string, error) {
	data, err := value.MarshalIndent(o, indent)
	if err != nil {
		return "", err
	}
	return Colorize(strings.TrimRight(string(data), "\n")), nil
}

// Colorize colors already formatted JSON text. Layout is kept as is; input
// that is not JSON is colored token by token without validation.
func Colorize(src string) string {
	var out strings.Builder
	out.Grow(len(src) * 2)

	for i := 0; i < len(src); {
		ch := src[i]
		switch {
		case ch == '"':
			end := stringEnd(src, i)
			style := styles.JSONStringStyle
			if isKey(src[end:]) {
				style = styles.JSONKeyStyle
			}
			out.WriteString(style.Render(src[i:end]))
			i = end

		case ch == '-' || isDigit(ch):
			end := i + 1
			for end < len(src) && isNumberByte(src[end]) {
				end++
			}
			out.WriteString(styles.JSONNumberStyle.Render(src[i:end]))
			i = end

		case strings.HasPrefix(src[i:], "true"):
			i += writeLiteral(&out, "true", styles.JSONBoolStyle)
		case strings.HasPrefix(src[i:], "false"):
			i += writeLiteral(&out, "false", styles.JSONBoolStyle)
		case strings.HasPrefix(src[i:], "null"):
			i += writeLiteral(&out, "null", styles.JSONNullStyle)

		case strings.IndexByte("{}[]:,", ch) >= 0:
			out.WriteString(styles.JSONPunctStyle.Render(string(ch)))
			i++

		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

func writeLiteral(out *strings.Builder, lit string, style lipgloss.Style) int {
	out.WriteString(style.Render(lit))
	return len(lit)
}

// stringEnd returns the index just past the closing quote of the string
// starting at pos, or len(s) if it is unterminated.
func stringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}

func isKey(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return rest != "" && rest[0] == ':'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isNumberByte(b byte) bool {
	return isDigit(b) || b == '.' || b == 'e' || b == 'E' || b == '+' || b == '-'
}
