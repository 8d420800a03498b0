package handlers

import (
	"encoding/json"
	"errors"

	"github.com/faisal420-png/bdcinema/internal/dto"
	"github.com/faisal420-png/bdcinema/internal/meter"
	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/faisal420-png/bdcinema/internal/services"
	"github.com/faisal420-png/bdcinema/internal/tmdb"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// maxCastSize caps how many cast credits a detail response carries.
const maxCastSize = 12

type TitleHandler struct {
	catalog *services.CatalogService
	reviews *services.ReviewService
	gateway *tmdb.Client
}

func NewTitleHandler(catalog *services.CatalogService, reviews *services.ReviewService, gateway *tmdb.Client) *TitleHandler {
	return &TitleHandler{catalog: catalog, reviews: reviews, gateway: gateway}
}

func titleResponse(t models.Title) dto.TitleResponse {
	var genres []string
	if len(t.Genres) > 0 {
		// A malformed genres column renders as no genres, not an error page.
		_ = json.Unmarshal(t.Genres, &genres)
	}
	return dto.TitleResponse{
		ID:            t.ID,
		TMDBID:        t.TMDBID,
		Title:         t.Title,
		OriginalTitle: t.OriginalTitle,
		Overview:      t.Overview,
		ReleaseYear:   t.ReleaseYear,
		PosterURL:     t.PosterURL,
		BackdropURL:   t.BackdropURL,
		Kind:          t.Kind,
		Source:        t.Source,
		Genres:        genres,
		CreatedAt:     t.CreatedAt,
	}
}

// List handles GET /titles - the full local catalog with review stats.
func (h *TitleHandler) List(c *fiber.Ctx) error {
	titles, err := h.catalog.ListTitles()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch titles",
		})
	}

	out := make([]dto.TitleWithStatsResponse, len(titles))
	for i, t := range titles {
		resp := dto.TitleWithStatsResponse{
			TitleResponse: titleResponse(t.Title),
			ReviewCount:   t.ReviewCount,
			Ratings:       t.Ratings,
		}
		if mode, ok := meter.Mode(meter.SplitList(t.Ratings)); ok {
			resp.ModeRating = string(mode)
		}
		out[i] = resp
	}
	return c.JSON(out)
}

// Get handles GET /titles/:id - the detail page payload. The local catalog is
// consulted first; provider metadata is merged in when available. An id with
// no local row is treated as a provider id, so remote-only titles still
// render. Provider failures only surface as errors when there is no local row
// to fall back on.
func (h *TitleHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid title ID",
		})
	}

	local, localErr := h.catalog.GetTitleByID(uint(id))
	if localErr != nil && !errors.Is(localErr, services.ErrTitleNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch title",
		})
	}

	kind := c.Query("kind")
	var tmdbID int
	if local != nil {
		kind = local.Kind
		if local.TMDBID != nil {
			tmdbID = *local.TMDBID
		}
	} else {
		tmdbID = id
		if kind == "" {
			kind = models.KindMovie
		}
	}

	var details *tmdb.Details
	if tmdbID != 0 {
		details, err = h.gateway.Details(c.Context(), tmdbID, kind)
		if err != nil && local == nil {
			if errors.Is(err, tmdb.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Error: true, Message: "Title not found",
				})
			}
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Title data is temporarily unavailable",
			})
		}
	}

	resp := h.mergeDetail(local, details, kind)

	if local != nil {
		stats, err := h.reviews.StatsForTitle(local.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to fetch rating stats",
			})
		}
		resp.Stats = stats
	} else {
		resp.Stats = dto.RatingStatsResponse{Counts: emptyCounts()}
	}

	return c.JSON(resp)
}

func emptyCounts() map[string]int {
	counts := make(map[string]int, len(meter.All))
	for _, r := range meter.All {
		counts[string(r)] = 0
	}
	return counts
}

// mergeDetail prefers local catalog fields and fills gaps from the provider.
func (h *TitleHandler) mergeDetail(local *models.Title, details *tmdb.Details, kind string) dto.TitleDetailResponse {
	var resp dto.TitleDetailResponse
	if local != nil {
		resp.TitleResponse = titleResponse(*local)
	} else {
		resp.Kind = kind
		resp.Source = models.SourceTMDB
	}

	if details == nil {
		return resp
	}

	if resp.ID == 0 {
		resp.ID = uint(details.TMDBID)
		tmdbID := details.TMDBID
		resp.TMDBID = &tmdbID
	}
	if resp.Title == "" {
		resp.Title = details.Title
	}
	if resp.OriginalTitle == "" {
		resp.OriginalTitle = details.OriginalTitle
	}
	if resp.Overview == "" {
		resp.Overview = details.Overview
	}
	if resp.ReleaseYear == nil {
		resp.ReleaseYear = details.ReleaseYear
	}
	if resp.PosterURL == "" {
		resp.PosterURL = h.gateway.ImageURL(details.PosterPath, "")
	}
	if resp.BackdropURL == "" {
		resp.BackdropURL = h.gateway.BackdropURL(details.BackdropPath)
	}
	if len(resp.Genres) == 0 {
		resp.Genres = details.Genres
	}

	resp.Runtime = details.Runtime
	for i, m := range details.Cast {
		if i >= maxCastSize {
			break
		}
		resp.Cast = append(resp.Cast, dto.CreditResponse{PersonID: m.PersonID, Name: m.Name, Character: m.Character})
	}
	for _, m := range details.Crew {
		if m.Job == "Director" || m.Job == "Writer" || m.Job == "Screenplay" {
			resp.Crew = append(resp.Crew, dto.CreditResponse{PersonID: m.PersonID, Name: m.Name, Job: m.Job})
		}
	}
	return resp
}

// Create handles POST /admin/titles - admin curation of a custom title.
func (h *TitleHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTitleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Title is required",
		})
	}

	kind := req.Kind
	if kind != models.KindMovie && kind != models.KindSeries {
		kind = models.KindMovie
	}
	genres, err := json.Marshal(req.Genres)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid genres",
		})
	}

	title := models.Title{
		Title:         req.Title,
		OriginalTitle: req.OriginalTitle,
		Overview:      req.Overview,
		ReleaseYear:   req.ReleaseYear,
		PosterURL:     req.PosterURL,
		Kind:          kind,
		Source:        models.SourceCustom,
		Genres:        datatypes.JSON(genres),
	}

	if err := h.catalog.CreateTitle(&title); err != nil {
		if errors.Is(err, services.ErrDuplicateTitle) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create title",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(titleResponse(title))
}

// Delete handles DELETE /admin/titles/:id - removes a title and cascades to
// its reviews and watch relations.
func (h *TitleHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid title ID",
		})
	}

	if err := h.catalog.DeleteTitle(uint(id)); err != nil {
		if errors.Is(err, services.ErrTitleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Title not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete title",
		})
	}

	return c.JSON(fiber.Map{"message": "Title deleted"})
}
