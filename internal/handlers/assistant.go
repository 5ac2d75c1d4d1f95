package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/projetakip/projetakip-backend/internal/middleware"
	"github.com/projetakip/projetakip-backend/internal/services"
)

// AssistantHandler exposes the conversational assistant
type AssistantHandler struct {
	assistant *services.Assistant
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistant *services.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Chat processes one conversation turn for the caller
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.ActorFrom(c)
	key := middleware.SessionKeyFrom(c)

	result := h.assistant.HandleMessage(c.Context(), actor, key, req.Message)
	return c.JSON(result)
}

// Reset clears every in-progress conversation for the caller
func (h *AssistantHandler) Reset(c *fiber.Ctx) error {
	h.assistant.Reset(middleware.SessionKeyFrom(c))
	return c.SendStatus(fiber.StatusOK)
}
