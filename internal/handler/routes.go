package handler

import (
	"quiz-forge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the quiz and health endpoints on app.
func RegisterRoutes(app fiber.Router, quizHandler *QuizHandler, validation *middleware.ValidationMiddleware) {
	app.Get("/health", HealthCheck)
	app.Post("/quiz", validation.ValidateQuizRequest(), quizHandler.GenerateQuiz)
}
