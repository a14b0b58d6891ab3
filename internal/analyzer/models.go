package analyzer

import "context"

// TextModel is the text-analysis model collaborator: prompt in, raw text out.
// Responses are assumed to usually contain JSON, possibly wrapped in markdown
// fences or containing comments and trailing commas.
type TextModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// VisionModel is the vision-capable model collaborator, with the same
// response tolerance assumptions as TextModel.
type VisionModel interface {
	CompleteWithImage(ctx context.Context, prompt, imageBase64, mediaType string) (string, error)
}
