package handlers

import (
	"errors"

	"github.com/faisal420-png/bdcinema/internal/dto"
	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/faisal420-png/bdcinema/internal/services"
	"github.com/faisal420-png/bdcinema/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ListHandler struct {
	lists *services.ListService
}

func NewListHandler(lists *services.ListService) *ListHandler {
	return &ListHandler{lists: lists}
}

// userAndTitle parses the toggle request. When it returns false the error
// response has already been written.
func (h *ListHandler) userAndTitle(c *fiber.Ctx) (uuid.UUID, uint, bool) {
	userID, err := session.GetUserID(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid session",
		})
		return uuid.Nil, 0, false
	}

	var req dto.ToggleTitleRequest
	if err := c.BodyParser(&req); err != nil || req.TitleID == 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "title_id is required",
		})
		return uuid.Nil, 0, false
	}
	return userID, req.TitleID, true
}

// ToggleWatchlist handles POST /watchlist/toggle. The response reports the
// state after the flip.
func (h *ListHandler) ToggleWatchlist(c *fiber.Ctx) error {
	userID, titleID, ok := h.userAndTitle(c)
	if !ok {
		return nil
	}

	added, err := h.lists.ToggleWatchlist(userID, titleID)
	if err != nil {
		if errors.Is(err, services.ErrTitleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Title not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update watchlist",
		})
	}

	return c.JSON(fiber.Map{"in_watchlist": added})
}

// WatchlistStatus handles GET /watchlist/status?title_id=N.
func (h *ListHandler) WatchlistStatus(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid session",
		})
	}

	titleID := c.QueryInt("title_id")
	if titleID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "title_id is required",
		})
	}

	in, err := h.lists.IsInWatchlist(userID, uint(titleID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to check watchlist",
		})
	}
	return c.JSON(fiber.Map{"in_watchlist": in})
}

// Watchlist handles GET /watchlist - the caller's saved titles, newest first.
func (h *ListHandler) Watchlist(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid session",
		})
	}

	entries, err := h.lists.Watchlist(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch watchlist",
		})
	}

	out := make([]dto.WatchlistItemResponse, len(entries))
	for i, e := range entries {
		out[i] = watchlistItem(e)
	}
	return c.JSON(out)
}

func watchlistItem(e models.WatchlistEntry) dto.WatchlistItemResponse {
	return dto.WatchlistItemResponse{
		TitleID: e.TitleID,
		AddedAt: e.CreatedAt,
		Title:   titleResponse(e.Title),
	}
}

// ToggleWatched handles POST /watched/toggle.
func (h *ListHandler) ToggleWatched(c *fiber.Ctx) error {
	userID, titleID, ok := h.userAndTitle(c)
	if !ok {
		return nil
	}

	watched, err := h.lists.ToggleWatched(userID, titleID)
	if err != nil {
		if errors.Is(err, services.ErrTitleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Title not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update watched list",
		})
	}

	return c.JSON(fiber.Map{"watched": watched})
}

// WatchedStatus handles GET /watched/status?title_id=N.
func (h *ListHandler) WatchedStatus(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid session",
		})
	}

	titleID := c.QueryInt("title_id")
	if titleID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "title_id is required",
		})
	}

	watched, err := h.lists.IsWatched(userID, uint(titleID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to check watched list",
		})
	}
	return c.JSON(fiber.Map{"watched": watched})
}

// ToggleInterested handles POST /interested/toggle. Interest is keyed on the
// provider id so it works for titles not yet in the local catalog.
func (h *ListHandler) ToggleInterested(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid session",
		})
	}

	var req dto.ToggleInterestedRequest
	if err := c.BodyParser(&req); err != nil || req.TMDBID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "tmdb_id is required",
		})
	}

	interested, err := h.lists.ToggleInterested(userID, req.TMDBID, req.MediaType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update interested list",
		})
	}

	return c.JSON(fiber.Map{"interested": interested})
}

// InterestedStatus handles GET /interested/status?tmdb_id=N.
func (h *ListHandler) InterestedStatus(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid session",
		})
	}

	tmdbID := c.QueryInt("tmdb_id")
	if tmdbID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "tmdb_id is required",
		})
	}

	interested, err := h.lists.IsInterested(userID, tmdbID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to check interested list",
		})
	}
	return c.JSON(fiber.Map{"interested": interested})
}
