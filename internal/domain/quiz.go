package domain

import "strings"

// Difficulty labels accepted for generated questions.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Difficulties lists the accepted difficulty labels in ascending order.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// QuizRequest identifies the unit a quiz is generated for.
// Subject and Unit are required; the remaining fields narrow the storage path.
type QuizRequest struct {
	College    string
	Department string
	Semester   string
	Subject    string
	Unit       string
}

// StoragePath returns the object prefix holding this unit's source text.
func (r QuizRequest) StoragePath(root string) string {
	return BuildStoragePath(root, r.College, r.Department, r.Semester, r.Subject, r.Unit)
}

// ManifestName is the file name the generated questions are published under.
func (r QuizRequest) ManifestName() string {
	return r.Subject + "_" + r.Unit + "_questions.json"
}

// Question is a single validated multiple-choice question.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Hint          string   `json:"hint"`
}

// HasCorrectOption reports whether CorrectAnswer matches one of the options exactly.
func (q *Question) HasCorrectOption() bool {
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return true
		}
	}
	return false
}

// IsKnownDifficulty reports whether d is one of Easy, Medium or Hard.
func IsKnownDifficulty(d string) bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// Quiz is the validated question set produced from a model completion.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Len returns the number of questions in the quiz.
func (q *Quiz) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Questions)
}

// CountByDifficulty tallies questions per difficulty label.
func (q *Quiz) CountByDifficulty() map[string]int {
	counts := make(map[string]int, len(Difficulties))
	if q == nil {
		return counts
	}
	for _, question := range q.Questions {
		counts[strings.TrimSpace(question.Difficulty)]++
	}
	return counts
}
