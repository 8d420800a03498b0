package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/faisal420-png/bdcinema/internal/dto"
	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/faisal420-png/bdcinema/internal/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// offlineGateway returns a client whose requests all fail, for tests that
// must never reach the provider.
func offlineGateway() *tmdb.Client {
	return tmdb.NewClient("test-key", "http://127.0.0.1:1", "https://image.test/t/p", 50*time.Millisecond)
}

func newReviewService(db *gorm.DB, gateway *tmdb.Client) *ReviewService {
	return NewReviewService(db, NewCatalogService(db), gateway)
}

func TestSubmitCreatesReview(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db, offlineGateway())
	user := createTestUser(t, db, "alice@example.com")
	title := createTestTitle(t, db, "Hawa", intPtr(977790))

	review, err := svc.Submit(context.Background(), user.ID, &dto.SubmitReviewRequest{
		TitleID: title.ID,
		Rating:  "perfection",
		Body:    "Chanchal Chowdhury carries the whole film.",
	})
	require.NoError(t, err)
	assert.Equal(t, title.ID, review.TitleID)
	assert.Equal(t, "perfection", review.Rating)
}

func TestSubmitReplacesEarlierVerdict(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db, offlineGateway())
	user := createTestUser(t, db, "alice@example.com")
	title := createTestTitle(t, db, "Hawa", intPtr(977790))

	first, err := svc.Submit(context.Background(), user.ID, &dto.SubmitReviewRequest{
		TitleID: title.ID, Rating: "timepass", Body: "Second half drags.",
	})
	require.NoError(t, err)

	second, err := svc.Submit(context.Background(), user.ID, &dto.SubmitReviewRequest{
		TitleID: title.ID, Rating: "go_for_it", Body: "Grew on me on rewatch.",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "resubmission must edit, not append")

	var count int64
	require.NoError(t, db.Model(&models.Review{}).
		Where("title_id = ? AND user_id = ?", title.ID, user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	stored, err := svc.ByUserAndTitle(user.ID, title.ID)
	require.NoError(t, err)
	assert.Equal(t, "go_for_it", stored.Rating)
	assert.Equal(t, "Grew on me on rewatch.", stored.Body)
}

func TestSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db, offlineGateway())
	user := createTestUser(t, db, "alice@example.com")
	title := createTestTitle(t, db, "Hawa", nil)

	_, err := svc.Submit(context.Background(), user.ID, &dto.SubmitReviewRequest{
		TitleID: title.ID, Rating: "five_stars",
	})
	assert.ErrorIs(t, err, ErrInvalidRating)

	long := make([]byte, maxReviewBody+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Submit(context.Background(), user.ID, &dto.SubmitReviewRequest{
		TitleID: title.ID, Rating: "timepass", Body: string(long),
	})
	assert.ErrorIs(t, err, ErrReviewTooLong)

	_, err = svc.Submit(context.Background(), user.ID, &dto.SubmitReviewRequest{
		Rating: "timepass",
	})
	assert.ErrorIs(t, err, ErrTargetRequired)

	_, err = svc.Submit(context.Background(), user.ID, &dto.SubmitReviewRequest{
		TitleID: 999, Rating: "timepass",
	})
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestSubmitImportsProviderTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/615635" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 615635,
			"title": "Taqdeer",
			"original_title": "তাকদীর",
			"overview": "A freezer van driver finds a corpse that should not exist.",
			"release_date": "2020-12-18",
			"poster_path": "/taqdeer.jpg",
			"genres": [{"id": 80, "name": "Crime"}],
			"credits": {"cast": [], "crew": []}
		}`))
	}))
	defer srv.Close()

	db := newTestDB(t)
	gateway := tmdb.NewClient("test-key", srv.URL, "https://image.test/t/p", 2*time.Second)
	svc := newReviewService(db, gateway)
	user := createTestUser(t, db, "alice@example.com")

	review, err := svc.Submit(context.Background(), user.ID, &dto.SubmitReviewRequest{
		TMDBID: 615635, Rating: "go_for_it",
	})
	require.NoError(t, err)

	var title models.Title
	require.NoError(t, db.First(&title, "tmdb_id = ?", 615635).Error)
	assert.Equal(t, "Taqdeer", title.Title)
	assert.Equal(t, models.SourceTMDB, title.Source)
	assert.Equal(t, title.ID, review.TitleID)

	// A second reviewer reuses the imported row instead of refetching.
	bob := createTestUser(t, db, "bob@example.com")
	srv.Close()
	_, err = svc.Submit(context.Background(), bob.ID, &dto.SubmitReviewRequest{
		TMDBID: 615635, Rating: "perfection",
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Title{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStatsForTitle(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db, offlineGateway())
	title := createTestTitle(t, db, "Mohanagar", nil)

	for i, rating := range []string{"perfection", "perfection", "go_for_it", "disaster"} {
		user := createTestUser(t, db, fmt.Sprintf("viewer%d@example.com", i))
		_, err := svc.Submit(context.Background(), user.ID, &dto.SubmitReviewRequest{
			TitleID: title.ID, Rating: rating,
		})
		require.NoError(t, err)
	}

	stats, err := svc.StatsForTitle(title.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, map[string]int{
		"disaster":   1,
		"timepass":   0,
		"go_for_it":  1,
		"perfection": 2,
	}, stats.Counts)
	assert.Equal(t, "perfection", stats.ModeRating)
}

func TestStatsForTitleEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db, offlineGateway())
	title := createTestTitle(t, db, "Debi", nil)

	stats, err := svc.StatsForTitle(title.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.ModeRating)
	assert.Equal(t, map[string]int{
		"disaster":   0,
		"timepass":   0,
		"go_for_it":  0,
		"perfection": 0,
	}, stats.Counts)
}
