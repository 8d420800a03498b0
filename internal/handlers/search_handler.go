package handlers

import (
	"errors"

	"github.com/faisal420-png/bdcinema/internal/dto"
	"github.com/faisal420-png/bdcinema/internal/tmdb"
	"github.com/gofiber/fiber/v2"
)

// maxSearchResults keeps the typeahead dropdown short.
const maxSearchResults = 5

type SearchHandler struct {
	gateway *tmdb.Client
}

func NewSearchHandler(gateway *tmdb.Client) *SearchHandler {
	return &SearchHandler{gateway: gateway}
}

// Search handles GET /search?q=... - provider multi-search trimmed to films
// and series. Provider trouble degrades to an empty result set so the search
// box never breaks the page.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	results := h.gateway.SearchMulti(c.Context(), c.Query("q"))
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	out := dto.SearchResponse{Results: make([]dto.SearchResultResponse, len(results))}
	for i, r := range results {
		out.Results[i] = dto.SearchResultResponse{
			TMDBID:      r.TMDBID,
			MediaType:   r.MediaType,
			Title:       r.Title,
			Overview:    r.Overview,
			ReleaseYear: r.ReleaseYear,
			PosterURL:   h.gateway.ImageURL(r.PosterPath, "w185"),
		}
	}
	return c.JSON(out)
}

// Person handles GET /people/:id - a cast or crew member's profile.
func (h *SearchHandler) Person(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid person ID",
		})
	}

	person, err := h.gateway.Person(c.Context(), id)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Person not found",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Person data is temporarily unavailable",
		})
	}

	resp := dto.PersonResponse{
		ID:                 person.ID,
		Name:               person.Name,
		Biography:          person.Biography,
		ProfileURL:         h.gateway.ImageURL(person.ProfilePath, ""),
		KnownForDepartment: person.KnownForDepartment,
	}
	if person.Birthday != nil {
		resp.Birthday = *person.Birthday
	}
	if person.PlaceOfBirth != nil {
		resp.PlaceOfBirth = *person.PlaceOfBirth
	}

	// A failed credits fetch leaves the filmography empty, not the page broken.
	if credits, err := h.gateway.PersonCredits(c.Context(), id); err == nil {
		for _, cr := range credits {
			resp.Credits = append(resp.Credits, dto.SearchResultResponse{
				TMDBID:      cr.TMDBID,
				MediaType:   cr.MediaType,
				Title:       cr.Title,
				Overview:    cr.Overview,
				ReleaseYear: cr.ReleaseYear,
				PosterURL:   h.gateway.ImageURL(cr.PosterPath, "w185"),
			})
		}
	}
	return c.JSON(resp)
}
