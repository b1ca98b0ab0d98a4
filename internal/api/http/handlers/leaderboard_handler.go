package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gamification-service/internal/api/dto"
	"github.com/spec-kit/gamification-service/internal/service"
)

// LeaderboardHandler exposes the points leaderboard.
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

// NewLeaderboardHandler constructs handler.
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboardService}
}

// Top handles GET /api/v1/leaderboard.
func (h *LeaderboardHandler) Top(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	entries, err := h.leaderboard.Top(c.UserContext(), limit)
	if err != nil {
		return err
	}
	resp := dto.LeaderboardResponse{Entries: make([]dto.LeaderboardEntryItem, 0, len(entries))}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, dto.LeaderboardEntryItem{
			Rank:   entry.Rank,
			UserID: entry.UserID,
			Points: entry.Points,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}
