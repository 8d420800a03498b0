package services

import (
	"errors"
	"fmt"

	"github.com/faisal420-png/bdcinema/internal/meter"
	"github.com/faisal420-png/bdcinema/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTitleNotFound  = errors.New("title not found")
	ErrDuplicateTitle = errors.New("a title with this tmdb id already exists")
)

// CatalogService owns the locally curated titles: reads, admin creation and
// deletion, and upserts keyed on the metadata provider id.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// TitleWithStats is a catalog row annotated with its review tally. Ratings is
// the comma-joined raw verdict list in submission order, empty when the title
// has no reviews.
type TitleWithStats struct {
	models.Title
	ReviewCount int
	Ratings     string
}

// ListTitles returns every catalogued title with review stats, newest first.
func (s *CatalogService) ListTitles() ([]TitleWithStats, error) {
	var titles []models.Title
	if err := s.db.Order("created_at DESC, id DESC").Find(&titles).Error; err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}

	var reviews []models.Review
	if err := s.db.Order("created_at ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	byTitle := make(map[uint][]meter.Rating, len(titles))
	for _, r := range reviews {
		if rating, ok := meter.Parse(r.Rating); ok {
			byTitle[r.TitleID] = append(byTitle[r.TitleID], rating)
		}
	}

	out := make([]TitleWithStats, len(titles))
	for i, t := range titles {
		ratings := byTitle[t.ID]
		out[i] = TitleWithStats{
			Title:       t,
			ReviewCount: len(ratings),
			Ratings:     meter.JoinList(ratings),
		}
	}
	return out, nil
}

func (s *CatalogService) GetTitleByID(id uint) (*models.Title, error) {
	var title models.Title
	if err := s.db.First(&title, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, fmt.Errorf("failed to load title: %w", err)
	}
	return &title, nil
}

func (s *CatalogService) GetTitleByTMDBID(tmdbID int) (*models.Title, error) {
	var title models.Title
	if err := s.db.First(&title, "tmdb_id = ?", tmdbID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, fmt.Errorf("failed to load title: %w", err)
	}
	return &title, nil
}

// CreateTitle inserts a curated title. A duplicate provider id surfaces as
// ErrDuplicateTitle; use UpsertByTMDBID for import paths.
func (s *CatalogService) CreateTitle(title *models.Title) error {
	if err := s.db.Create(title).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTitle
		}
		return fmt.Errorf("failed to create title: %w", err)
	}
	return nil
}

// UpsertByTMDBID inserts the title, or overwrites the existing row carrying
// the same provider id. The row keeps its local id and created_at; no history
// is kept.
func (s *CatalogService) UpsertByTMDBID(title *models.Title) (*models.Title, error) {
	if title.TMDBID == nil {
		return nil, errors.New("upsert requires a tmdb id")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Title
		err := tx.First(&existing, "tmdb_id = ?", *title.TMDBID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(title).Error
		}
		if err != nil {
			return err
		}

		title.ID = existing.ID
		title.CreatedAt = existing.CreatedAt
		return tx.Model(&existing).Updates(map[string]interface{}{
			"title":          title.Title,
			"original_title": title.OriginalTitle,
			"overview":       title.Overview,
			"release_year":   title.ReleaseYear,
			"poster_url":     title.PosterURL,
			"backdrop_url":   title.BackdropURL,
			"kind":           title.Kind,
			"source":         title.Source,
			"genres":         title.Genres,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert title: %w", err)
	}
	return title, nil
}

// DeleteTitle removes the title together with its reviews and watch relations
// in one transaction, so no dangling references survive.
func (s *CatalogService) DeleteTitle(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("title_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("title_id = ?", id).Delete(&models.WatchlistEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("title_id = ?", id).Delete(&models.WatchedEntry{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Title{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTitleNotFound
		}
		return nil
	})
}
