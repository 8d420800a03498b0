package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faisal420-png/bdcinema/internal/dto"
	"github.com/faisal420-png/bdcinema/internal/services"
	"github.com/faisal420-png/bdcinema/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxAvatarSize = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type ProfileHandler struct {
	auth      *services.AuthService
	reviews   *services.ReviewService
	lists     *services.ListService
	uploadDir string
}

func NewProfileHandler(auth *services.AuthService, reviews *services.ReviewService, lists *services.ListService, uploadDir string) *ProfileHandler {
	return &ProfileHandler{auth: auth, reviews: reviews, lists: lists, uploadDir: uploadDir}
}

// Get handles GET /profile - the caller's account, review history, and
// watchlist in one payload.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid session",
		})
	}

	user, err := h.auth.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch profile",
		})
	}

	reviews, err := h.reviews.ByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reviews",
		})
	}

	entries, err := h.lists.Watchlist(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch watchlist",
		})
	}

	resp := dto.ProfileResponse{
		User: dto.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			AvatarURL: user.AvatarURL,
		},
		Reviews:   make([]dto.ReviewWithTitleResponse, len(reviews)),
		Watchlist: make([]dto.WatchlistItemResponse, len(entries)),
	}
	for i, r := range reviews {
		resp.Reviews[i] = dto.ReviewWithTitleResponse{
			ReviewResponse: reviewResponse(r),
			Title:          titleResponse(r.Title),
		}
	}
	for i, e := range entries {
		resp.Watchlist[i] = watchlistItem(e)
	}
	return c.JSON(resp)
}

// UploadAvatar handles POST /profile/avatar - multipart form with an "avatar"
// file field. The stored filename is randomized so uploads never collide or
// leak the original name.
func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid session",
		})
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "avatar file is required",
		})
	}
	if file.Size > maxAvatarSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "File too large (max 5MB)",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unsupported file type",
		})
	}

	dir := filepath.Join(h.uploadDir, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store avatar",
		})
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store avatar",
		})
	}

	url := "/uploads/avatars/" + filename
	if err := h.auth.UpdateAvatar(userID, url); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update avatar",
		})
	}

	return c.JSON(dto.UploadResponse{URL: url})
}
