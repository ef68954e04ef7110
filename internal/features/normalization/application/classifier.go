package application

import (
	"strings"
	"unicode"

	"json-prompt-generator/backend/internal/features/normalization/domain"
)

// categoryRule lists the keywords of one category. Rules are evaluated in order.
type categoryRule struct {
	category domain.Category
	words    []string
	phrases  []string
}

var categoryRules = []categoryRule{
	{
		category: domain.CategoryCode,
		words:    []string{"function", "code", "script", "program", "algorithm", "api"},
	},
	{
		category: domain.CategoryImage,
		words:    []string{"image", "picture", "photo", "painting", "drawing", "artwork"},
		phrases:  []string{"generate art", "create art"},
	},
	{
		category: domain.CategoryWriting,
		words:    []string{"write", "essay", "article", "blog", "story", "letter", "email"},
	},
	{
		category: domain.CategoryData,
		words:    []string{"analyze", "data", "chart", "graph", "statistics", "report"},
	},
}

type language struct {
	token   string
	display string
	// weak names are too common in prose to imply code without a
	// code-context word.
	weak bool
}

var languages = []language{
	{token: "python", display: "Python"},
	{token: "javascript", display: "JavaScript"},
	{token: "typescript", display: "TypeScript"},
	{token: "java", display: "Java"},
	{token: "c++", display: "C++"},
	{token: "c#", display: "C#"},
	{token: "golang", display: "Go"},
	{token: "rust", display: "Rust"},
	{token: "ruby", display: "Ruby"},
	{token: "php", display: "PHP"},
	{token: "kotlin", display: "Kotlin"},
	{token: "scala", display: "Scala"},
	{token: "sql", display: "SQL"},
	{token: "html", display: "HTML"},
	{token: "css", display: "CSS"},
	{token: "bash", display: "Bash"},
	{token: "swift", display: "Swift", weak: true},
	{token: "go", display: "Go", weak: true},
}

// codeContextWords make a weak language name count as code.
var codeContextWords = []string{
	"goroutine", "compile", "library", "debug", "syntax", "struct", "concurrency",
	"concurrent", "implement", "refactor", "framework", "pointer", "variable", "method",
}

var taskPrefixes = []string{
	"give me", "write", "create", "make", "build", "develop",
	"generate", "show me", "help me", "i need", "can you",
}

var articles = []string{"a", "an", "the"}

// Classify maps raw text to a task category, language tag and keyword evidence.
// It is pure and total: every input, including an empty one, yields a result.
func Classify(text string) domain.ClassificationResult {
	normalized := strings.ToLower(strings.TrimSpace(text))
	tokens := tokenize(normalized)

	result := domain.ClassificationResult{
		Category:    domain.CategoryGeneral,
		Description: ExtractTaskPhrase(text),
	}

	lang, langWeak := detectLanguage(tokens)
	if langWeak && hasAnyKeyword(tokens, codeContextWords) {
		langWeak = false
	}

	for _, rule := range categoryRules {
		evidence := rule.match(tokens)
		if rule.category == domain.CategoryCode && lang != "" && !langWeak {
			evidence = append(evidence, strings.ToLower(lang))
		}
		if len(evidence) == 0 {
			continue
		}
		result.Category = rule.category
		result.Evidence = evidence
		if rule.category == domain.CategoryCode {
			result.Language = lang
		}
		break
	}
	return result
}

func (r categoryRule) match(tokens []string) []string {
	var evidence []string
	for _, w := range r.words {
		if hasKeyword(tokens, w) {
			evidence = append(evidence, w)
		}
	}
	padded := " " + strings.Join(tokens, " ") + " "
	for _, p := range r.phrases {
		if strings.Contains(padded, " "+p+" ") {
			evidence = append(evidence, p)
		}
	}
	return evidence
}

// detectLanguage returns the first language named in tokens, in list order.
func detectLanguage(tokens []string) (string, bool) {
	for _, l := range languages {
		for _, t := range tokens {
			if t == l.token {
				return l.display, l.weak
			}
		}
	}
	return "", false
}

// ExtractTaskPhrase strips one leading request phrase ("write", "can you", ...) and then
// one article from text, preserving the caller's casing in the remainder.
func ExtractTaskPhrase(text string) string {
	rest := strings.TrimSpace(text)
	rest = stripWordPrefix(rest, taskPrefixes)
	rest = stripWordPrefix(rest, articles)
	return rest
}

func stripWordPrefix(s string, prefixes []string) string {
	for _, p := range prefixes {
		if len(s) < len(p) || !strings.EqualFold(s[:len(p)], p) {
			continue
		}
		if len(s) > len(p) && s[len(p)] != ' ' {
			continue
		}
		return strings.TrimSpace(s[len(p):])
	}
	return s
}

// tokenize splits lowercased text into words. '+' and '#' stay attached so
// "c++" and "c#" survive as tokens.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#')
	})
}

// containsWord matches w as a whole token, allowing a plural suffix.
func containsWord(tokens []string, w string) bool {
	for _, t := range tokens {
		if t == w || t == w+"s" || t == w+"es" {
			return true
		}
		if strings.HasSuffix(w, "y") && t == strings.TrimSuffix(w, "y")+"ies" {
			return true
		}
	}
	return false
}

// hasKeyword matches tokens that begin with w ("programming", "photography",
// "database") as well as the plural forms accepted by containsWord.
func hasKeyword(tokens []string, w string) bool {
	for _, t := range tokens {
		if strings.HasPrefix(t, w) {
			return true
		}
	}
	return containsWord(tokens, w)
}

func hasAnyKeyword(tokens []string, words []string) bool {
	for _, w := range words {
		if hasKeyword(tokens, w) {
			return true
		}
	}
	return false
}

// firstWord returns the first candidate found in tokens.
func firstWord(tokens []string, candidates ...string) string {
	for _, c := range candidates {
		if containsWord(tokens, c) {
			return c
		}
	}
	return ""
}
