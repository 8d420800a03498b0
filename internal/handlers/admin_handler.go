package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faisal420-png/bdcinema/internal/dto"
	"github.com/faisal420-png/bdcinema/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxPosterSize = 10 * 1024 * 1024

type AdminHandler struct {
	sync      *services.SyncService
	uploadDir string
}

func NewAdminHandler(sync *services.SyncService, uploadDir string) *AdminHandler {
	return &AdminHandler{sync: sync, uploadDir: uploadDir}
}

// Sync handles POST /admin/sync - pulls the configured regional discover
// feeds into the local catalog. The provider can be slow across two feeds
// per region, so callers should expect it to take a while.
func (h *AdminHandler) Sync(c *fiber.Ctx) error {
	result, err := h.sync.SyncRegions(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Sync failed: " + err.Error(),
		})
	}

	return c.JSON(dto.SyncResponse{
		Success: true,
		Synced:  result.Synced,
		Movies:  result.Movies,
		Series:  result.Series,
	})
}

// UploadPoster handles POST /admin/upload - multipart form with a "poster"
// file field, used when curating custom titles that have no provider art.
func (h *AdminHandler) UploadPoster(c *fiber.Ctx) error {
	file, err := c.FormFile("poster")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "poster file is required",
		})
	}
	if file.Size > maxPosterSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "File too large (max 10MB)",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unsupported file type",
		})
	}

	dir := filepath.Join(h.uploadDir, "posters")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store poster",
		})
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store poster",
		})
	}

	return c.JSON(dto.UploadResponse{URL: "/uploads/posters/" + filename})
}
