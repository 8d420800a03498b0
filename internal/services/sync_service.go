package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/faisal420-png/bdcinema/internal/tmdb"
	"gorm.io/datatypes"
)

// SyncService bulk-imports the discover feeds for the configured origin
// countries into the local catalog.
type SyncService struct {
	catalog *CatalogService
	gateway *tmdb.Client
	regions []string
}

func NewSyncService(catalog *CatalogService, gateway *tmdb.Client, regionsCSV string) *SyncService {
	var regions []string
	for _, r := range strings.Split(regionsCSV, ",") {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			regions = append(regions, trimmed)
		}
	}
	return &SyncService{catalog: catalog, gateway: gateway, regions: regions}
}

type SyncResult struct {
	Synced int
	Movies int
	Series int
}

// SyncRegions fetches the curated regions' movies and series and upserts each
// into the catalog by provider id. The operation is best-effort: individual
// upsert failures are logged and skipped, not retried or rolled back, and the
// result reports what was attempted.
func (s *SyncService) SyncRegions(ctx context.Context) (SyncResult, error) {
	var result SyncResult

	movieGenres, err := s.gateway.Genres(ctx, models.KindMovie)
	if err != nil {
		return result, fmt.Errorf("failed to load movie genres: %w", err)
	}
	seriesGenres, err := s.gateway.Genres(ctx, models.KindSeries)
	if err != nil {
		return result, fmt.Errorf("failed to load series genres: %w", err)
	}

	for _, region := range s.regions {
		movies, err := s.gateway.DiscoverMovies(ctx, region)
		if err != nil {
			return result, fmt.Errorf("failed to discover movies for %s: %w", region, err)
		}
		series, err := s.gateway.DiscoverSeries(ctx, region)
		if err != nil {
			return result, fmt.Errorf("failed to discover series for %s: %w", region, err)
		}

		result.Movies += len(movies)
		result.Series += len(series)

		for _, m := range movies {
			if s.upsertDiscovered(m, models.KindMovie, movieGenres) {
				result.Synced++
			}
		}
		for _, t := range series {
			if s.upsertDiscovered(t, models.KindSeries, seriesGenres) {
				result.Synced++
			}
		}
	}

	slog.Info("catalog sync completed",
		"regions", strings.Join(s.regions, ","),
		"synced", result.Synced,
		"movies", result.Movies,
		"series", result.Series,
	)
	return result, nil
}

func (s *SyncService) upsertDiscovered(d tmdb.Discovered, kind string, genreTable map[int]string) bool {
	names := make([]string, 0, len(d.GenreIDs))
	for _, id := range d.GenreIDs {
		if name, ok := genreTable[id]; ok {
			names = append(names, name)
		}
	}
	genres, _ := json.Marshal(names)

	tmdbID := d.TMDBID
	title := &models.Title{
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

	if _, err := s.catalog.UpsertByTMDBID(title); err != nil {
		slog.Error("sync upsert failed", "tmdb_id", d.TMDBID, "title", d.Title, "error", err)
		return false
	}
	return true
}
