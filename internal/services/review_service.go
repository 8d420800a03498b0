package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/faisal420-png/bdcinema/internal/dto"
	"github.com/faisal420-png/bdcinema/internal/meter"
	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/faisal420-png/bdcinema/internal/tmdb"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxReviewBody = 1000

var (
	ErrInvalidRating  = errors.New("invalid rating")
	ErrReviewTooLong  = errors.New("review body exceeds 1000 characters")
	ErrTargetRequired = errors.New("a title id or tmdb id is required")
	ErrReviewNotFound = errors.New("review not found")
)

// ReviewService owns verdict submission and the derived rating statistics.
type ReviewService struct {
	db      *gorm.DB
	catalog *CatalogService
	gateway *tmdb.Client
}

func NewReviewService(db *gorm.DB, catalog *CatalogService, gateway *tmdb.Client) *ReviewService {
	return &ReviewService{db: db, catalog: catalog, gateway: gateway}
}

// Submit records a user's verdict on a title. One user holds at most one live
// verdict per title: resubmission replaces the earlier rating and body. When
// the target is a provider id with no local row yet, the title is imported
// through the gateway first.
func (s *ReviewService) Submit(ctx context.Context, userID uuid.UUID, req *dto.SubmitReviewRequest) (*models.Review, error) {
	rating, ok := meter.Parse(req.Rating)
	if !ok {
		return nil, ErrInvalidRating
	}
	if len(req.Body) > maxReviewBody {
		return nil, ErrReviewTooLong
	}

	titleID, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var review models.Review
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Review
		findErr := tx.First(&existing, "title_id = ? AND user_id = ?", titleID, userID).Error
		if findErr == nil {
			// Edit, not a second opinion.
			existing.Rating = string(rating)
			existing.Body = req.Body
			existing.UpdatedAt = now
			review = existing
			return tx.Save(&existing).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		review = models.Review{
			TitleID: titleID,
			UserID:  userID,
			Rating:  string(rating),
			Body:    req.Body,
		}
		return tx.Create(&review).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}
	return &review, nil
}

// resolveTarget maps the request onto a local title id, auto-importing a
// provider title that nobody has catalogued yet.
func (s *ReviewService) resolveTarget(ctx context.Context, req *dto.SubmitReviewRequest) (uint, error) {
	if req.TitleID != 0 {
		title, err := s.catalog.GetTitleByID(req.TitleID)
		if err != nil {
			return 0, err
		}
		return title.ID, nil
	}

	if req.TMDBID == 0 {
		return 0, ErrTargetRequired
	}

	if title, err := s.catalog.GetTitleByTMDBID(req.TMDBID); err == nil {
		return title.ID, nil
	} else if !errors.Is(err, ErrTitleNotFound) {
		return 0, err
	}

	kind := req.Kind
	if kind == "" {
		kind = models.KindMovie
	}
	details, err := s.gateway.Details(ctx, req.TMDBID, kind)
	if err != nil {
		return 0, fmt.Errorf("failed to import title data: %w", err)
	}

	title, err := s.catalog.UpsertByTMDBID(s.titleFromDetails(details, kind))
	if err != nil {
		return 0, err
	}
	return title.ID, nil
}

func (s *ReviewService) titleFromDetails(d *tmdb.Details, kind string) *models.Title {
	genres, _ := json.Marshal(d.Genres)
	tmdbID := d.TMDBID
	return &models.Title{
		TMDBID:        &tmdbID,
		Title:         d.Title,
		OriginalTitle: d.OriginalTitle,
		Overview:      d.Overview,
		ReleaseYear:   d.ReleaseYear,
		PosterURL:     s.gateway.ImageURL(d.PosterPath, ""),
		BackdropURL:   s.gateway.BackdropURL(d.BackdropPath),
		Kind:          kind,
		Source:        models.SourceTMDB,
		Genres:        datatypes.JSON(genres),
	}
}

// ForTitle returns a title's reviews, newest first, with the reviewer loaded.
func (s *ReviewService) ForTitle(titleID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Preload("User").
		Where("title_id = ?", titleID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return reviews, nil
}

// ByUser returns a user's reviews joined with their titles, newest first.
// Reviews whose title has since been deleted are silently dropped.
func (s *ReviewService) ByUser(userID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Preload("Title").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	kept := reviews[:0]
	for _, r := range reviews {
		if r.Title.ID != 0 {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

func (s *ReviewService) ByUserAndTitle(userID uuid.UUID, titleID uint) (*models.Review, error) {
	var review models.Review
	err := s.db.First(&review, "user_id = ? AND title_id = ?", userID, titleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	return &review, nil
}

// StatsForTitle recomputes the verdict breakdown from the live review rows.
// Nothing is persisted; the tally is always derived on read.
func (s *ReviewService) StatsForTitle(titleID uint) (dto.RatingStatsResponse, error) {
	var reviews []models.Review
	if err := s.db.Where("title_id = ?", titleID).Order("created_at ASC").Find(&reviews).Error; err != nil {
		return dto.RatingStatsResponse{}, fmt.Errorf("failed to load reviews: %w", err)
	}

	ratings := make([]meter.Rating, 0, len(reviews))
	for _, r := range reviews {
		if rating, ok := meter.Parse(r.Rating); ok {
			ratings = append(ratings, rating)
		}
	}

	counts := meter.Counts(ratings)
	stats := dto.RatingStatsResponse{
		Total:  len(ratings),
		Counts: make(map[string]int, len(counts)),
	}
	for rating, n := range counts {
		stats.Counts[string(rating)] = n
	}
	if mode, ok := meter.Mode(ratings); ok {
		stats.ModeRating = string(mode)
	}
	return stats, nil
}
