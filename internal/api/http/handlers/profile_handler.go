package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gamification-service/internal/api/dto"
	"github.com/spec-kit/gamification-service/internal/service"
)

// ProfileHandler exposes the dashboard-facing gamification read API.
type ProfileHandler struct {
	gamification *service.GamificationService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(gamificationService *service.GamificationService) *ProfileHandler {
	return &ProfileHandler{gamification: gamificationService}
}

// Get handles GET /api/v1/users/:userID/profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID := c.Params("userID")
	profile, err := h.gamification.GetUserGamificationProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	titles := make(map[string]string)
	for _, def := range h.gamification.Evaluator().Definitions() {
		titles[def.Code] = def.Title
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(profile, titles)})
}

// Init handles POST /api/v1/users/:userID/init. Seeds a zeroed profile for a
// new agent; repeat calls are no-ops.
func (h *ProfileHandler) Init(c *fiber.Ctx) error {
	userID := c.Params("userID")
	if err := h.gamification.InitializeUserGamification(c.UserContext(), userID); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"user_id": userID}})
}

// Achievements handles GET /api/v1/users/:userID/achievements. Lists the
// full catalog annotated with the user's unlock state.
func (h *ProfileHandler) Achievements(c *fiber.Ctx) error {
	userID := c.Params("userID")
	profile, err := h.gamification.GetUserGamificationProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	type achievementStatus struct {
		Code        string `json:"code"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Unlocked    bool   `json:"unlocked"`
	}
	catalog := h.gamification.Evaluator().Definitions()
	statuses := make([]achievementStatus, 0, len(catalog))
	for _, def := range catalog {
		statuses = append(statuses, achievementStatus{
			Code:        def.Code,
			Title:       def.Title,
			Description: def.Description,
			Unlocked:    profile.HasUnlocked(def.Code),
		})
	}
	return c.JSON(fiber.Map{"data": statuses})
}

// Activities handles GET /api/v1/users/:userID/activities.
func (h *ProfileHandler) Activities(c *fiber.Ctx) error {
	userID := c.Params("userID")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	activities, err := h.gamification.ListUserActivities(c.UserContext(), userID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": activities})
}
