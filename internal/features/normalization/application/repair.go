package application

import (
	"regexp"
	"strings"

	"json-prompt-generator/backend/internal/features/normalization/domain"
)

// repairPass is one syntactic correction applied to near-JSON text.
type repairPass struct {
	name  string
	apply func(string) string
}

// repairPasses run in order; the text is re-parsed after each one.
var repairPasses = []repairPass{
	{name: "trailing_commas", apply: RemoveTrailingCommas},
	{name: "adjacent_structures", apply: InsertCommasBetweenStructures},
	{name: "adjacent_strings", apply: InsertCommasBetweenStrings},
}

var (
	openingFenceRe = regexp.MustCompile("^\\s*```[A-Za-z0-9_-]*[ \\t]*\\r?\\n?")
	closingFenceRe = regexp.MustCompile("\\r?\\n?[ \\t]*```\\s*$")

	// greedyObjectRe spans the first '{' to the last '}'.
	greedyObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// RepairAndParse turns raw backend output into a StructuredPrompt, or reports
// it as malformed. It never panics on any input.
func RepairAndParse(raw string) (outcome domain.GenerationOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = domain.Malformed(raw)
		}
	}()

	text := strings.TrimSpace(StripFences(raw))
	if p, ok := parseObject(text); ok {
		return domain.Succeeded(p)
	}

	repaired := text
	for _, pass := range repairPasses {
		repaired = pass.apply(repaired)
		if p, ok := parseObject(repaired); ok {
			return domain.Succeeded(p)
		}
	}

	for _, candidate := range ExtractCandidates(text) {
		if p, ok := parseObject(candidate); ok {
			return domain.Succeeded(p)
		}
		if p, ok := parseObject(applyRepairs(candidate)); ok {
			return domain.Succeeded(p)
		}
	}
	return domain.Malformed(raw)
}

func parseObject(text string) (*domain.StructuredPrompt, bool) {
	if text == "" {
		return nil, false
	}
	p, err := domain.ParseStructuredPrompt([]byte(text))
	if err != nil {
		return nil, false
	}
	return p, true
}

func applyRepairs(text string) string {
	for _, pass := range repairPasses {
		text = pass.apply(text)
	}
	return text
}

// StripFences removes a leading ```lang line and a trailing ``` marker.
func StripFences(s string) string {
	s = openingFenceRe.ReplaceAllString(s, "")
	return closingFenceRe.ReplaceAllString(s, "")
}

// ExtractCandidates returns substrings of s that may hold a JSON object:
// every outermost balanced object first, then the span from the first '{' to
// the last '}'. Duplicates are dropped.
func ExtractCandidates(s string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(m string) {
		if m != "" && !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	for _, m := range BalancedObjects(s) {
		add(m)
	}
	add(greedyObjectRe.FindString(s))
	return out
}

// BalancedObjects returns the outermost brace-balanced spans of s, at any
// nesting depth. Braces inside string literals are ignored; quotes are only
// tracked inside a span, so stray quotes in surrounding prose are harmless.
func BalancedObjects(s string) []string {
	var spans []string
	depth, start := 0, 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = depth > 0
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				spans = append(spans, s[start:i+1])
			}
		}
	}
	return spans
}

// RemoveTrailingCommas drops commas that directly precede '}' or ']'.
func RemoveTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	scanOutsideStrings(s, func(i int, c byte) bool {
		if c == ',' {
			if next := nextNonSpace(s, i+1); next == '}' || next == ']' {
				return false
			}
		}
		return true
	}, &b)
	return b.String()
}

// InsertCommasBetweenStructures adds the comma missing between a closing
// '}' or ']' and an opening '{' or '['.
func InsertCommasBetweenStructures(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	scanOutsideStrings(s, func(i int, c byte) bool {
		b.WriteByte(c)
		if c == '}' || c == ']' {
			if next := nextNonSpace(s, i+1); next == '{' || next == '[' {
				b.WriteByte(',')
			}
		}
		return false
	}, &b)
	return b.String()
}

// InsertCommasBetweenStrings adds the comma missing between a closing quote
// and the opening quote of the next string.
func InsertCommasBetweenStrings(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		b.WriteByte(c)
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
				if nextNonSpace(s, i+1) == '"' {
					b.WriteByte(',')
				}
			}
			continue
		}
		if c == '"' {
			inString = true
		}
	}
	return b.String()
}

// scanOutsideStrings copies s into b. Bytes inside string literals are always
// copied; bytes outside are passed to keep, which copies them when it returns true.
func scanOutsideStrings(s string, keep func(i int, c byte) bool, b *strings.Builder) {
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if keep(i, c) {
			b.WriteByte(c)
		}
	}
}

func nextNonSpace(s string, from int) byte {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return s[i]
		}
	}
	return 0
}
