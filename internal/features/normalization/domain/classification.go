package domain

// Category is the task category assigned by the intent classifier.
type Category string

const (
	CategoryCode    Category = "code_generation"
	CategoryImage   Category = "image_generation"
	CategoryWriting Category = "content_writing"
	CategoryData    Category = "data_analysis"
	CategoryGeneral Category = "general"
)

// ClassificationResult is the output of the heuristic intent classifier.
type ClassificationResult struct {
	Category Category `json:"category"`
	Language string   `json:"language,omitempty"` // display name, e.g. "Python"
	Evidence []string `json:"evidence,omitempty"` // matched keywords, for debugging
	// Description is the request with a leading verb phrase and article removed.
	Description string `json:"description"`
}
