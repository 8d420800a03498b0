package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	KindMovie  = "movie"
	KindSeries = "series"

	SourceTMDB   = "tmdb"
	SourceCustom = "custom"
)

// Title is a locally catalogued movie or series. TMDBID is the natural key
// against the metadata provider: when set, at most one local row may carry it
// and imports upsert in place instead of inserting a duplicate.
type Title struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	TMDBID        *int           `gorm:"column:tmdb_id;uniqueIndex" json:"tmdb_id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	OriginalTitle string         `gorm:"size:255" json:"original_title"`
	Overview      string         `gorm:"type:text" json:"overview"`
	ReleaseYear   *int           `json:"release_year"`
	PosterURL     string         `gorm:"type:text" json:"poster_url"`
	BackdropURL   string         `gorm:"type:text" json:"backdrop_url"`
	Kind          string         `gorm:"size:10;not null;default:'movie'" json:"kind"`
	Source        string         `gorm:"size:10;not null;default:'custom'" json:"source"`
	Genres        datatypes.JSON `json:"genres"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
}
