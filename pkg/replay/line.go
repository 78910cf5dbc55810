package replay

import "strings"

// isCommentLine reports whether the first non-space character is '#'.
func isCommentLine(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	return strings.HasPrefix(trimmed, "#")
}

// isBlankLine reports whether the line has no non-whitespace character.
func isBlankLine(line string) bool {
	return strings.TrimLeft(line, " \t\r\n") == ""
}

// splitFields splits one line on commas outside double-quoted regions.
// Quote characters toggle the quoted state and are stripped from the
// field text; there is no escaped-quote handling and an unterminated
// quote consumes to the end of the line. The result always has at
// least one field.
func splitFields(line string) []string {
	fields := make([]string, 0, 8)
	var b strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}

	return append(fields, b.String())
}
