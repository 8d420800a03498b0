package services

import (
	"errors"
	"fmt"

	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListService owns the three membership relations: watchlist and watched
// (keyed on local titles) and interested (keyed on provider ids). Each is a
// toggle; repeated calls flip membership and report the new state.
type ListService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewListService(db *gorm.DB, catalog *CatalogService) *ListService {
	return &ListService{db: db, catalog: catalog}
}

// ToggleWatchlist flips watchlist membership and returns the resulting state,
// true when the title is now on the list.
func (s *ListService) ToggleWatchlist(userID uuid.UUID, titleID uint) (bool, error) {
	if _, err := s.catalog.GetTitleByID(titleID); err != nil {
		return false, err
	}

	var nowPresent bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.WatchlistEntry
		err := tx.First(&entry, "user_id = ? AND title_id = ?", userID, titleID).Error
		if err == nil {
			nowPresent = false
			return tx.Delete(&entry).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		nowPresent = true
		return tx.Create(&models.WatchlistEntry{UserID: userID, TitleID: titleID}).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle watchlist: %w", err)
	}
	return nowPresent, nil
}

func (s *ListService) IsInWatchlist(userID uuid.UUID, titleID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.WatchlistEntry{}).
		Where("user_id = ? AND title_id = ?", userID, titleID).
		Count(&count).Error
	return count > 0, err
}

// Watchlist returns the user's watchlist entries with titles, newest first.
func (s *ListService) Watchlist(userID uuid.UUID) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	err := s.db.Preload("Title").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Title.ID != 0 {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// ToggleWatched flips the seen-it marker and returns the resulting state.
func (s *ListService) ToggleWatched(userID uuid.UUID, titleID uint) (bool, error) {
	if _, err := s.catalog.GetTitleByID(titleID); err != nil {
		return false, err
	}

	var nowPresent bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.WatchedEntry
		err := tx.First(&entry, "user_id = ? AND title_id = ?", userID, titleID).Error
		if err == nil {
			nowPresent = false
			return tx.Delete(&entry).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		nowPresent = true
		return tx.Create(&models.WatchedEntry{UserID: userID, TitleID: titleID}).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle watched: %w", err)
	}
	return nowPresent, nil
}

func (s *ListService) IsWatched(userID uuid.UUID, titleID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.WatchedEntry{}).
		Where("user_id = ? AND title_id = ?", userID, titleID).
		Count(&count).Error
	return count > 0, err
}

// ToggleInterested flips interest in a remote title. The target may not exist
// in the local catalog, so it is keyed on the provider id.
func (s *ListService) ToggleInterested(userID uuid.UUID, tmdbID int, mediaType string) (bool, error) {
	if mediaType == "" {
		mediaType = models.KindMovie
	}

	var nowPresent bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.InterestedEntry
		err := tx.First(&entry, "user_id = ? AND tmdb_id = ?", userID, tmdbID).Error
		if err == nil {
			nowPresent = false
			return tx.Delete(&entry).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		nowPresent = true
		return tx.Create(&models.InterestedEntry{UserID: userID, TMDBID: tmdbID, MediaType: mediaType}).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle interested: %w", err)
	}
	return nowPresent, nil
}

func (s *ListService) IsInterested(userID uuid.UUID, tmdbID int) (bool, error) {
	var count int64
	err := s.db.Model(&models.InterestedEntry{}).
		Where("user_id = ? AND tmdb_id = ?", userID, tmdbID).
		Count(&count).Error
	return count > 0, err
}
