package quizgen

// Sampling parameters shared by every completion backend.
const (
	Temperature     = 0.7
	TopP            = 1.0
	TopK            = 1
	MaxOutputTokens = 8192
)
