package server

import (
	"log/slog"
	"strings"
	"time"

	"finplay/app/service/conversation"
	"finplay/app/service/rules"

	"github.com/gofiber/fiber/v2"
)

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string                  `json:"sessionId"`
	State     rules.State             `json:"state"`
	Messages  []conversation.Message  `json:"messages"`
	Catalog   *conversation.Directive `json:"catalog,omitempty"`
}

func (s *Service) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleChat resolves one turn. An unknown or absent session id starts a
// fresh conversation whose greeting is prepended to the response.
func (s *Service) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	message := strings.TrimSpace(req.Message)

	id, conv, created := s.session(req.SessionID)
	if !created && message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message is required"})
	}

	response := chatResponse{SessionID: id}

	if created {
		greeting := conv.Greeting()
		response.Messages = append(response.Messages, greeting.Messages...)
	}

	if message != "" {
		start := time.Now()
		result := conv.Submit(c.Context(), req.Message)

		slog.Info("Processed message",
			"session", id,
			"state", conv.State(),
			"duration", time.Since(start),
		)

		response.Messages = append(response.Messages, result.Messages...)
		response.Catalog = result.Catalog
	}

	response.State = conv.State()

	return c.JSON(response)
}

func (s *Service) handleState(c *fiber.Ctx) error {
	conv, ok := s.lookupSession(c.Query("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown session"})
	}

	return c.JSON(fiber.Map{"state": conv.State()})
}

func (s *Service) handleHistory(c *fiber.Ctx) error {
	id := c.Query("sessionId")

	if _, ok := s.lookupSession(id); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown session"})
	}

	records, err := s.transcriptSvc.Load(id)
	if err != nil {
		slog.Error("Failed to load transcript", "session", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load history"})
	}

	return c.JSON(fiber.Map{"records": records})
}
