package analyzer

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// ExtractJSON locates the JSON object inside a model response, handling
// markdown code fences and leading/trailing prose. Returns false when no
// object can be located at all.
func ExtractJSON(text string) (string, bool) {
	if matches := fenceRe.FindStringSubmatch(text); len(matches) > 1 {
		text = matches[1]
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// SanitizeJSON strips // and /* */ comments and trailing commas so that
// almost-JSON model output survives encoding/json. String contents are left
// untouched.
func SanitizeJSON(input string) string {
	var sb strings.Builder
	sb.Grow(len(input))

	inString := false
	escaped := false
	i := 0
	for i < len(input) {
		c := input[i]

		if inString {
			sb.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			i++
			continue
		}

		switch {
		case c == '"':
			inString = true
			sb.WriteByte(c)
			i++
		case c == '/' && i+1 < len(input) && input[i+1] == '/':
			for i < len(input) && input[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(input) && input[i+1] == '*':
			i += 2
			for i+1 < len(input) && !(input[i] == '*' && input[i+1] == '/') {
				i++
			}
			i += 2
		case c == ',':
			// Drop the comma if the next non-whitespace byte closes the
			// containing object or array.
			j := i + 1
			for j < len(input) && (input[j] == ' ' || input[j] == '\t' || input[j] == '\n' || input[j] == '\r') {
				j++
			}
			if j < len(input) && (input[j] == '}' || input[j] == ']') {
				i++
				continue
			}
			sb.WriteByte(c)
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}

	return sb.String()
}
