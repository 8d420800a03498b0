package handlers

import (
	"errors"

	"github.com/faisal420-png/bdcinema/internal/dto"
	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/faisal420-png/bdcinema/internal/services"
	"github.com/faisal420-png/bdcinema/internal/session"
	"github.com/faisal420-png/bdcinema/internal/tmdb"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func reviewResponse(r models.Review) dto.ReviewResponse {
	resp := dto.ReviewResponse{
		ID:        r.ID,
		TitleID:   r.TitleID,
		UserID:    r.UserID.String(),
		Rating:    r.Rating,
		Body:      r.Body,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.User.ID != uuid.Nil {
		resp.UserName = r.User.Name
		resp.UserAvatarURL = r.User.AvatarURL
	}
	return resp
}

// Submit handles POST /reviews. A second submission from the same user for
// the same title replaces the first one.
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid session",
		})
	}

	var req dto.SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	review, err := h.reviews.Submit(c.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating),
			errors.Is(err, services.ErrReviewTooLong),
			errors.Is(err, services.ErrTargetRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrTitleNotFound), errors.Is(err, tmdb.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Title not found",
			})
		case errors.Is(err, tmdb.ErrUpstream):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Title data is temporarily unavailable",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save review",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(reviewResponse(*review))
}

// ForTitle handles GET /titles/:id/reviews - all reviews for one title,
// newest first, with reviewer names.
func (h *ReviewHandler) ForTitle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid title ID",
		})
	}

	reviews, err := h.reviews.ForTitle(uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reviews",
		})
	}

	out := make([]dto.ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = reviewResponse(r)
	}
	return c.JSON(out)
}

// Mine handles GET /titles/:id/reviews/me - the caller's own review for a
// title, used by the edit form.
func (h *ReviewHandler) Mine(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid session",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid title ID",
		})
	}

	review, err := h.reviews.ByUserAndTitle(userID, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Review not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch review",
		})
	}

	return c.JSON(reviewResponse(*review))
}
