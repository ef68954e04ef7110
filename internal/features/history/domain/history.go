package domain

import "encoding/json"

// Entry is one recorded conversion.
type Entry struct {
	ID           int64           `json:"id"`
	OriginalText string          `json:"original_text"`
	JSONPrompt   json.RawMessage `json:"json_prompt"`
	Path         string          `json:"path"`
	Status       string          `json:"status"`
	CreatedAt    string          `json:"created_at"`
}

// Page is one page of history, newest first.
type Page struct {
	Entries []Entry `json:"entries"`
	Page    int     `json:"page"`
	Pages   int     `json:"pages"`
	Total   int     `json:"total"`
}
