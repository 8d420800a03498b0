package models

import (
	"time"

	"github.com/google/uuid"
)

// WatchlistEntry marks a local title a user intends to watch. Presence of the
// row is the whole signal; toggling removes it again.
type WatchlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_watchlist_user_title" json:"user_id"`
	TitleID   uint      `gorm:"not null;uniqueIndex:idx_watchlist_user_title" json:"title_id"`
	CreatedAt time.Time `json:"created_at"`
	Title     Title     `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE" json:"-"`
}

// WatchedEntry marks a local title a user has seen.
type WatchedEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_watched_user_title" json:"user_id"`
	TitleID   uint      `gorm:"not null;uniqueIndex:idx_watched_user_title" json:"title_id"`
	CreatedAt time.Time `json:"created_at"`
	Title     Title     `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE" json:"-"`
}

// InterestedEntry marks interest in a title that may not be catalogued locally
// yet, so it is keyed on the provider id rather than a local title id.
type InterestedEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_interested_user_tmdb" json:"user_id"`
	TMDBID    int       `gorm:"column:tmdb_id;not null;uniqueIndex:idx_interested_user_tmdb" json:"tmdb_id"`
	MediaType string    `gorm:"size:10;not null;default:'movie'" json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
}
