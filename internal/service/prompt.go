package service

import (
	"fmt"

	"github.com/tmc/langchaingo/prompts"
)

const quizPromptTemplate = `Using the following context about {{.subject}} - {{.unit}}, generate {{.count}} quiz questions.

Context:
{{.context}}

Guidelines:
1. The questions should be relevant to {{.unit}} in {{.subject}}.
2. Include exactly 4 options per question.
3. Only one option should be correct.
4. Provide a detailed explanation for the correct answer.
5. Mark difficulty as 'Easy', 'Medium', or 'Hard'.
6. Include a short hint that helps guide towards the answer without giving it away.

Return response in this exact JSON format:
{
    "questions": [
        {
            "question": "Question text here",
            "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
            "correct_answer": "Option X",
            "explanation": "Explanation here",
            "difficulty": "Easy/Medium/Hard",
            "hint": "A helpful hint here"
        }
    ]
}

Rules:
1. Generate exactly {{.count}} questions
2. Make questions progressively harder
3. Base questions on the provided context
4. Ensure hints don't directly give away the answer
5. Make questions appropriate for university-level learning

Return only valid JSON without any additional text or markdown.`

// PromptBuilder renders the quiz generation instructions for a subject and unit.
type PromptBuilder struct {
	template      prompts.PromptTemplate
	questionCount int
}

// NewPromptBuilder creates a builder asking the model for questionCount questions.
func NewPromptBuilder(questionCount int) *PromptBuilder {
	return &PromptBuilder{
		template:      prompts.NewPromptTemplate(quizPromptTemplate, []string{"subject", "unit", "context", "count"}),
		questionCount: questionCount,
	}
}

// Build substitutes subject, unit and the fetched context into the template.
// The context is embedded verbatim.
func (b *PromptBuilder) Build(subject, unit, context string) (string, error) {
	prompt, err := b.template.Format(map[string]any{
		"subject": subject,
		"unit":    unit,
		"context": context,
		"count":   b.questionCount,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render quiz prompt: %w", err)
	}
	return prompt, nil
}
