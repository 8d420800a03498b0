package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/faisal420-png/bdcinema/internal/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeDiscoverServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/genre/movie/list", "/genre/tv/list":
			w.Write([]byte(`{"genres": [{"id": 18, "name": "Drama"}, {"id": 53, "name": "Thriller"}]}`))
		case "/discover/movie":
			require.Equal(t, "BD", r.URL.Query().Get("with_origin_country"))
			require.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))
			w.Write([]byte(`{"results": [
				{"id": 977790, "title": "Hawa", "original_title": "হাওয়া",
				 "release_date": "2022-07-29", "poster_path": "/hawa.jpg", "genre_ids": [18, 53]},
				{"id": 615635, "title": "Taqdeer", "original_title": "তাকদীর",
				 "release_date": "2020-12-18", "genre_ids": [53]}
			]}`))
		case "/discover/tv":
			w.Write([]byte(`{"results": [
				{"id": 86831, "name": "Mohanagar", "original_name": "মহানগর",
				 "first_air_date": "2021-06-25", "genre_ids": [18]}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestSyncRegionsImportsDiscoverFeeds(t *testing.T) {
	srv := fakeDiscoverServer(t)
	defer srv.Close()

	db := newTestDB(t)
	catalog := NewCatalogService(db)
	gateway := tmdb.NewClient("test-key", srv.URL, "https://image.test/t/p", 2*time.Second)
	svc := NewSyncService(catalog, gateway, "BD")

	result, err := svc.SyncRegions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Synced)
	assert.Equal(t, 2, result.Movies)
	assert.Equal(t, 1, result.Series)

	hawa, err := catalog.GetTitleByTMDBID(977790)
	require.NoError(t, err)
	assert.Equal(t, "Hawa", hawa.Title)
	assert.Equal(t, "হাওয়া", hawa.OriginalTitle)
	assert.Equal(t, models.KindMovie, hawa.Kind)
	assert.Equal(t, "https://image.test/t/p/w500/hawa.jpg", hawa.PosterURL)
	require.NotNil(t, hawa.ReleaseYear)
	assert.Equal(t, 2022, *hawa.ReleaseYear)

	var genres []string
	require.NoError(t, json.Unmarshal(hawa.Genres, &genres))
	assert.Equal(t, []string{"Drama", "Thriller"}, genres)

	mohanagar, err := catalog.GetTitleByTMDBID(86831)
	require.NoError(t, err)
	assert.Equal(t, models.KindSeries, mohanagar.Kind)
}

func TestSyncRegionsIsIdempotent(t *testing.T) {
	srv := fakeDiscoverServer(t)
	defer srv.Close()

	db := newTestDB(t)
	catalog := NewCatalogService(db)
	gateway := tmdb.NewClient("test-key", srv.URL, "https://image.test/t/p", 2*time.Second)
	svc := NewSyncService(catalog, gateway, "BD")

	_, err := svc.SyncRegions(context.Background())
	require.NoError(t, err)
	_, err = svc.SyncRegions(context.Background())
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Title{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestSyncRegionsFailsWhenProviderDown(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db)
	svc := NewSyncService(catalog, offlineGateway(), "BD")

	_, err := svc.SyncRegions(context.Background())
	assert.Error(t, err)
}
