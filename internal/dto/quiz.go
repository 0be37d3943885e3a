package dto

import (
	"bytes"
	"encoding/json"

	"quiz-forge/internal/domain"
)

// QuizRequest identifies the storage folder whose text a quiz is generated from.
// @Description Request body for generating a quiz
type QuizRequest struct {
	College    string `json:"college" example:"Engineering"`
	Department string `json:"department" example:"CSE"`
	Semester   string `json:"semester" example:"3"`
	Subject    string `json:"subject" example:"Algorithms"`
	Unit       string `json:"unit" example:"Sorting"`
}

// ToDomain converts the request body to its domain form.
func (r QuizRequest) ToDomain() domain.QuizRequest {
	return domain.QuizRequest{
		College:    r.College,
		Department: r.Department,
		Semester:   r.Semester,
		Subject:    r.Subject,
		Unit:       r.Unit,
	}
}

// ManifestFile is one generated file, with its content serialized as JSON text.
type ManifestFile struct {
	Name    string `json:"name" example:"Algorithms_Sorting_questions.json"`
	Content string `json:"content"`
}

// QuizManifestResponse is the body returned for a generated quiz
// @Description Generated quiz files
type QuizManifestResponse struct {
	Files []ManifestFile `json:"files"`
}

type quizDocument struct {
	Questions []domain.Question `json:"questions"`
}

// NewQuizManifest wraps a quiz into the single-file manifest returned to clients.
func NewQuizManifest(req domain.QuizRequest, quiz *domain.Quiz) (*QuizManifestResponse, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(quizDocument{Questions: quiz.Questions}); err != nil {
		return nil, err
	}

	return &QuizManifestResponse{
		Files: []ManifestFile{{
			Name:    req.ManifestName(),
			Content: string(bytes.TrimRight(buf.Bytes(), "\n")),
		}},
	}, nil
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the liveness check
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
}
