package handler

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Builds multiple-choice questions from the text files stored for a unit
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Unit location"
// @Success 200 {object} dto.QuizManifestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, ok := middleware.QuizRequest(c)
	if !ok {
		return domain.NewInvalidInputError("Invalid request body")
	}

	manifest, err := h.service.GenerateQuiz(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(manifest)
}
