package service

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"quiz-forge/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

var (
	// Fences must sit on their own lines. Encoded JSON strings cannot contain a raw
	// newline, so backticks quoted inside question text are never matched.
	codeFencePattern = regexp.MustCompile("(?sm)^[ \t]*```(?:json|JSON)?[ \t]*\r?\n(.*?)\r?\n[ \t]*```[ \t]*\r?$")

	requiredQuestionFields = []string{"question", "options", "correct_answer", "explanation", "difficulty", "hint"}
)

// ResponseValidator turns untrusted completion text into a validated quiz.
type ResponseValidator struct {
	expectedCount int
	schema        *gojsonschema.Schema
}

// NewResponseValidator builds a validator. expectedCount of 0 accepts any non-empty
// number of questions; strictDifficulty restricts difficulty to Easy, Medium or Hard.
func NewResponseValidator(expectedCount int, strictDifficulty bool) (*ResponseValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(questionSchema(strictDifficulty)))
	if err != nil {
		return nil, fmt.Errorf("failed to compile question schema: %w", err)
	}
	return &ResponseValidator{expectedCount: expectedCount, schema: schema}, nil
}

func questionSchema(strictDifficulty bool) map[string]any {
	str := map[string]any{"type": "string"}
	difficulty := map[string]any{"type": "string"}
	if strictDifficulty {
		enum := make([]any, 0, len(domain.Difficulties))
		for _, d := range domain.Difficulties {
			enum = append(enum, d)
		}
		difficulty["enum"] = enum
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question":       str,
			"options":        map[string]any{"type": "array", "items": str},
			"correct_answer": str,
			"explanation":    str,
			"difficulty":     difficulty,
			"hint":           str,
		},
	}
}

// StripCodeFences replaces every line-delimited fenced code block with its content.
func StripCodeFences(text string) string {
	return codeFencePattern.ReplaceAllString(text, "$1")
}

// ExtractJSONObject decodes the JSON object that starts at the first '{'.
// Decoding stops at the end of that object, so trailing prose is ignored.
// Text without a '{' followed somewhere by a '}' holds no object at all.
func ExtractJSONObject(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	if start == -1 || strings.LastIndex(text, "}") < start {
		return nil, domain.NewMalformedResponseError("No JSON object found in response")
	}

	var obj map[string]any
	dec := json.NewDecoder(strings.NewReader(text[start:]))
	if err := dec.Decode(&obj); err != nil {
		return nil, domain.NewMalformedResponseError("Invalid JSON in response: %v", err)
	}
	return obj, nil
}

// Validate extracts and checks the quiz contained in a raw completion.
func (v *ResponseValidator) Validate(raw string) (*domain.Quiz, error) {
	obj, err := ExtractJSONObject(StripCodeFences(raw))
	if err != nil {
		return nil, err
	}

	rawQuestions, ok := obj["questions"]
	if !ok {
		return nil, domain.NewMalformedResponseError("No questions array found in response")
	}
	items, ok := rawQuestions.([]any)
	if !ok || len(items) == 0 {
		return nil, domain.NewMalformedResponseError("Questions must be a non-empty array")
	}

	quiz := &domain.Quiz{Questions: make([]domain.Question, 0, len(items))}
	for i, item := range items {
		question, err := v.validateQuestion(i+1, item)
		if err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if v.expectedCount > 0 && len(quiz.Questions) != v.expectedCount {
		return nil, domain.NewMalformedResponseError("Expected %d questions, got %d", v.expectedCount, len(quiz.Questions))
	}
	return quiz, nil
}

func (v *ResponseValidator) validateQuestion(n int, item any) (domain.Question, error) {
	q, ok := item.(map[string]any)
	if !ok {
		return domain.Question{}, domain.NewMalformedResponseError("Question %d is not a valid object", n)
	}

	var missing []string
	for _, field := range requiredQuestionFields {
		if _, present := q[field]; !present {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return domain.Question{}, domain.NewMalformedResponseError("Question %d missing required fields: %s", n, strings.Join(missing, ", "))
	}

	options, ok := q["options"].([]any)
	if !ok || len(options) != domain.OptionCount {
		return domain.Question{}, domain.NewMalformedResponseError("Question %d options must be a list with %d items", n, domain.OptionCount)
	}

	matched := false
	for _, opt := range options {
		if reflect.DeepEqual(opt, q["correct_answer"]) {
			matched = true
			break
		}
	}
	if !matched {
		return domain.Question{}, domain.NewMalformedResponseError("Question %d correct_answer must be one of the options", n)
	}

	result, err := v.schema.Validate(gojsonschema.NewGoLoader(q))
	if err != nil {
		return domain.Question{}, domain.NewMalformedResponseError("Question %d could not be checked: %v", n, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return domain.Question{}, domain.NewMalformedResponseError("Question %d failed schema validation: %s", n, strings.Join(msgs, "; "))
	}

	question := domain.Question{
		Question:      q["question"].(string),
		Options:       make([]string, 0, len(options)),
		CorrectAnswer: q["correct_answer"].(string),
		Explanation:   q["explanation"].(string),
		Difficulty:    q["difficulty"].(string),
		Hint:          q["hint"].(string),
	}
	for _, opt := range options {
		question.Options = append(question.Options, opt.(string))
	}
	return question, nil
}
