package application

import (
	"strings"

	"json-prompt-generator/backend/internal/features/normalization/domain"
)

var (
	codeOutputFormats = []string{"function", "class", "script", "program", "api", "module", "library"}

	imageStyles = []struct{ word, style string }{
		{"painting", "painting"},
		{"watercolor", "watercolor"},
		{"drawing", "drawing"},
		{"sketch", "sketch"},
		{"illustration", "illustration"},
		{"cartoon", "cartoon"},
		{"anime", "anime"},
		{"photo", "photograph"},
		{"photograph", "photograph"},
		{"artwork", "artwork"},
	}
	imageSubjects = []string{
		"landscape", "portrait", "cityscape", "seascape", "skyline", "still life",
		"animal", "character", "logo", "icon", "building", "abstract",
	}

	writingTypes = []struct{ word, contentType string }{
		{"essay", "essay"},
		{"article", "article"},
		{"blog", "blog post"},
		{"story", "story"},
		{"letter", "letter"},
		{"email", "email"},
		{"poem", "poem"},
		{"report", "report"},
	}

	analysisTypes = []struct{ word, analysis string }{
		{"chart", "visualization"},
		{"graph", "visualization"},
		{"statistics", "statistical"},
		{"report", "report"},
	}

	lengthModifiers = []struct{ word, length string }{
		{"short", "short"},
		{"brief", "short"},
		{"concise", "short"},
		{"detailed", "detailed"},
		{"long", "detailed"},
		{"thorough", "detailed"},
	}
	toneModifiers = []string{"professional", "casual", "formal", "friendly", "persuasive", "humorous"}
)

// HeuristicPrompt builds a structured prompt from text using only the keyword
// classifier and the parameter table. The result always has a non-empty task
// and is not bounded in size.
func HeuristicPrompt(text string) *domain.StructuredPrompt {
	c := Classify(text)
	tokens := tokenize(strings.ToLower(text))

	description := c.Description
	if description == "" {
		description = strings.TrimSpace(text)
	}

	prompt := domain.NewStructuredPrompt()
	switch c.Category {
	case domain.CategoryCode:
		prompt.Set("task", "write code")
		if c.Language != "" {
			prompt.Set("language", c.Language)
		}
		prompt.Set("functionality", afterWord(description, "to"))
		if f := firstWord(tokens, codeOutputFormats...); f != "" {
			prompt.Set("output_format", f)
		}

	case domain.CategoryImage:
		prompt.Set("task", "generate image")
		for _, s := range imageStyles {
			if hasKeyword(tokens, s.word) {
				prompt.Set("style", s.style)
				break
			}
		}
		subject := findPhrase(tokens, imageSubjects)
		if subject == "" {
			subject = description
		}
		prompt.Set("subject", subject)
		if description != subject {
			prompt.Set("description", description)
		}

	case domain.CategoryWriting:
		prompt.Set("task", "write content")
		for _, w := range writingTypes {
			if containsWord(tokens, w.word) {
				prompt.Set("content_type", w.contentType)
				break
			}
		}
		topic := afterWord(description, "about")
		if topic == description {
			topic = afterWord(description, "on")
		}
		prompt.Set("topic", topic)
		applyModifiers(prompt, tokens)

	case domain.CategoryData:
		prompt.Set("task", "analyze data")
		analysis := "exploratory"
		for _, a := range analysisTypes {
			if containsWord(tokens, a.word) {
				analysis = a.analysis
				break
			}
		}
		prompt.Set("analysis_type", analysis)
		prompt.Set("subject", description)

	default:
		prompt.Set("task", description)
		applyModifiers(prompt, tokens)
	}

	prompt.Merge(BuildParameters(c.Category))
	return prompt
}

func applyModifiers(prompt *domain.StructuredPrompt, tokens []string) {
	for _, m := range lengthModifiers {
		if containsWord(tokens, m.word) {
			prompt.Set("length", m.length)
			break
		}
	}
	if tone := firstWord(tokens, toneModifiers...); tone != "" {
		prompt.Set("tone", tone)
	}
}

// afterWord returns the part of s following the first standalone occurrence of
// word, or s itself when word does not occur or nothing follows it.
func afterWord(s, word string) string {
	lower := strings.ToLower(s)
	marker := " " + word + " "
	i := strings.Index(lower, marker)
	if i < 0 {
		return s
	}
	rest := strings.TrimSpace(s[i+len(marker):])
	if rest == "" {
		return s
	}
	return rest
}

// findPhrase returns the first candidate present in tokens, matching
// multi-word candidates as consecutive tokens.
func findPhrase(tokens []string, candidates []string) string {
	padded := " " + strings.Join(tokens, " ") + " "
	for _, c := range candidates {
		if strings.Contains(c, " ") {
			if strings.Contains(padded, " "+c+" ") {
				return c
			}
			continue
		}
		if containsWord(tokens, c) {
			return c
		}
	}
	return ""
}
