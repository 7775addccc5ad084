package api

import (
	"github.com/gofiber/fiber/v2"
)

type CheckHandler struct {
	llmConfigured bool
}

func NewCheckHandler(llmConfigured bool) *CheckHandler {
	return &CheckHandler{llmConfigured: llmConfigured}
}

func (h *CheckHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service":  "document-qa",
		"status":   "running",
		"endpoint": "/hackrx/run",
	})
}

func (h *CheckHandler) HandleHealthy(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "healthy",
		"llm_configured": h.llmConfigured,
	})
}
