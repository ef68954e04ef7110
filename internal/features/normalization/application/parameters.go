package application

import "json-prompt-generator/backend/internal/features/normalization/domain"

// parameterDefaults is the only place category defaults are defined.
var parameterDefaults = map[domain.Category][]domain.Field{
	domain.CategoryCode: {
		{Key: "style", Value: "clean"},
		{Key: "comments", Value: true},
		{Key: "examples", Value: true},
	},
	domain.CategoryImage: {
		{Key: "style", Value: "realistic"},
		{Key: "quality", Value: "high"},
		{Key: "size", Value: "1024x1024"},
		{Key: "format", Value: "PNG"},
	},
	domain.CategoryWriting: {
		{Key: "tone", Value: "informative"},
		{Key: "length", Value: "medium"},
		{Key: "format", Value: "markdown"},
	},
	domain.CategoryData: {
		{Key: "output_format", Value: "report"},
		{Key: "visualizations", Value: true},
		{Key: "detail_level", Value: "detailed"},
	},
	domain.CategoryGeneral: {
		{Key: "format", Value: "structured_response"},
		{Key: "detail_level", Value: "moderate"},
	},
}

// BuildParameters returns a fresh parameter skeleton for category.
// Unknown categories get the general skeleton.
func BuildParameters(category domain.Category) *domain.StructuredPrompt {
	fields, ok := parameterDefaults[category]
	if !ok {
		fields = parameterDefaults[domain.CategoryGeneral]
	}
	params := domain.NewStructuredPrompt()
	for _, f := range fields {
		params.Set(f.Key, f.Value)
	}
	return params
}
