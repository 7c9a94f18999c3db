package server

import (
	"log/slog"

	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createDebateRequest struct {
	Title string `json:"title"`
	SideA string `json:"side_a"`
	SideB string `json:"side_b"`
}

type postArgumentRequest struct {
	Content string `json:"content"`
}

// ListDebates returns a page of debates, newest first
func (s *Server) ListDebates(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)
	offset := (page - 1) * pageSize

	debates, err := s.debateService.ListDebates(c.UserContext(), pageSize, offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{
		"debates":   debates,
		"page":      page,
		"page_size": pageSize,
	})
}

// CreateDebate creates a debate with its two sides
func (s *Server) CreateDebate(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}

	var req createDebateRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	debate, err := s.debateService.CreateDebate(c.UserContext(), service.CreateDebateInput{
		Title:       req.Title,
		SideA:       req.SideA,
		SideB:       req.SideB,
		CreatedByID: userID,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "debate created",
		slog.Uint64("debate_id", uint64(debate.ID)))

	return c.Status(fiber.StatusCreated).JSON(debate)
}

// GetDebate returns a debate with its sides and arguments
func (s *Server) GetDebate(c *fiber.Ctx) error {
	debateID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	debate, err := s.debateService.GetDebate(c.UserContext(), debateID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	arguments, err := s.argumentService.ListArguments(c.UserContext(), debateID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{
		"debate":    debate,
		"arguments": arguments,
		"ready":     debate.Ready(),
	})
}

// CheckDebateStatus is the polling fallback for waiting-room clients
func (s *Server) CheckDebateStatus(c *fiber.Ctx) error {
	debateID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	status, err := s.debateService.CheckStatus(c.UserContext(), debateID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(status)
}

// JoinSide claims one side of a debate for the authenticated user
func (s *Server) JoinSide(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}

	debateID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	sideID, err := parseID(c, "sideId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	if err := s.debateService.JoinSide(c.UserContext(), debateID, sideID, userID); err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "side claimed",
		slog.Uint64("debate_id", uint64(debateID)),
		slog.Uint64("side_id", uint64(sideID)))

	debate, err := s.debateService.GetDebate(c.UserContext(), debateID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.JSON(fiber.Map{
		"debate": debate,
		"ready":  debate.Ready(),
	})
}

// PostArgument appends an argument to a debate
func (s *Server) PostArgument(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}

	debateID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	var req postArgumentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	argument, err := s.argumentService.PostArgument(c.UserContext(), debateID, userID, req.Content)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(argument)
}
