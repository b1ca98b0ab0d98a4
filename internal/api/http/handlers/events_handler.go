package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gamification-service/internal/api/dto"
	"github.com/spec-kit/gamification-service/internal/domain"
	"github.com/spec-kit/gamification-service/internal/service"
)

// EventsHandler exposes the internal lifecycle ingest surface consumed by
// the ticketing subsystem.
type EventsHandler struct {
	gamification *service.GamificationService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(gamificationService *service.GamificationService) *EventsHandler {
	return &EventsHandler{gamification: gamificationService}
}

// TicketCreated handles POST /internal/v1/events/ticket-created.
func (h *EventsHandler) TicketCreated(c *fiber.Ctx) error {
	var req dto.TicketCreatedRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	result, err := h.gamification.OnTicketCreated(c.UserContext(), req.UserID, req.TicketID, service.TicketCreatedInput{
		Priority:   req.Priority,
		Category:   req.Category,
		OccurredAt: timeOrZero(req.OccurredAt),
	})
	if err != nil {
		return err
	}
	return writeResult(c, result)
}

// TicketAssigned handles POST /internal/v1/events/ticket-assigned.
func (h *EventsHandler) TicketAssigned(c *fiber.Ctx) error {
	var req dto.TicketAssignedRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	result, err := h.gamification.OnTicketAssigned(c.UserContext(), req.UserID, req.TicketID, req.AssignedTo, timeOrZero(req.OccurredAt))
	if err != nil {
		return err
	}
	return writeResult(c, result)
}

// TicketResolved handles POST /internal/v1/events/ticket-resolved.
func (h *EventsHandler) TicketResolved(c *fiber.Ctx) error {
	var req dto.TicketResolvedRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	result, err := h.gamification.OnTicketResolved(c.UserContext(), req.UserID, req.TicketID, service.ResolvedInput{
		ResolutionTimeMinutes: req.ResolutionTimeMinutes,
		Rating:                req.Rating,
		Reopened:              req.Reopened,
		OccurredAt:            timeOrZero(req.OccurredAt),
	})
	if err != nil {
		return err
	}
	return writeResult(c, result)
}

// CommentAdded handles POST /internal/v1/events/comment-added.
func (h *EventsHandler) CommentAdded(c *fiber.Ctx) error {
	var req dto.CommentAddedRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	result, err := h.gamification.OnCommentAdded(c.UserContext(), req.UserID, req.TicketID, req.CommentID, timeOrZero(req.OccurredAt))
	if err != nil {
		return err
	}
	return writeResult(c, result)
}

// TeamworkBonus handles POST /internal/v1/events/teamwork-bonus.
func (h *EventsHandler) TeamworkBonus(c *fiber.Ctx) error {
	var req dto.TeamworkBonusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	result, err := h.gamification.AwardTeamworkBonus(c.UserContext(), req.UserID, req.HelpfulCommentCount, timeOrZero(req.OccurredAt))
	if err != nil {
		return err
	}
	return writeResult(c, result)
}

func writeResult(c *fiber.Ctx, result *domain.ActivityResult) error {
	resp := dto.ActivityResultResponse{
		ActivityID:      result.Activity.ID,
		Duplicate:       result.Duplicate,
		PointsGranted:   result.PointsGranted,
		Awards:          make([]dto.AwardItem, 0, len(result.Awards)),
		NewAchievements: result.NewAchievements,
	}
	if resp.NewAchievements == nil {
		resp.NewAchievements = []string{}
	}
	for _, award := range result.Awards {
		resp.Awards = append(resp.Awards, dto.AwardItem{Reason: string(award.Reason), Points: award.Points})
	}
	if result.Streak != nil {
		resp.Streak = &dto.StreakItem{
			CurrentLength:    result.Streak.CurrentLength,
			LongestLength:    result.Streak.LongestLength,
			LastActivityDate: result.Streak.LastActivityDate,
		}
	}
	for _, warning := range result.Warnings {
		resp.Warnings = append(resp.Warnings, warning.String())
	}
	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{"data": resp})
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
