package middleware

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const quizRequestLocal = "validated_quiz_request"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateQuizRequest decodes the JSON body and checks the required fields.
// The decoded request is available to handlers through QuizRequest.
func (vm *ValidationMiddleware) ValidateQuizRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.QuizRequest
		if err := c.BodyParser(&body); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}

		req := body.ToDomain()
		if err := vm.validator.ValidateQuizRequest(req); err != nil {
			return err // This will be handled by ErrorHandler
		}

		// Store validated value in context for handlers to use
		c.Locals(quizRequestLocal, req)
		return c.Next()
	}
}

// QuizRequest returns the request stored by ValidateQuizRequest.
func QuizRequest(c *fiber.Ctx) (domain.QuizRequest, bool) {
	req, ok := c.Locals(quizRequestLocal).(domain.QuizRequest)
	return req, ok
}
