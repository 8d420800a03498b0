package services

import (
	"testing"

	"github.com/faisal420-png/bdcinema/internal/meter"
	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTitleDuplicateTMDBID(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	require.NoError(t, svc.CreateTitle(&models.Title{
		TMDBID: intPtr(977790), Title: "Hawa", Kind: models.KindMovie, Source: models.SourceTMDB,
	}))

	err := svc.CreateTitle(&models.Title{
		TMDBID: intPtr(977790), Title: "Hawa again", Kind: models.KindMovie, Source: models.SourceTMDB,
	})
	assert.ErrorIs(t, err, ErrDuplicateTitle)
}

func TestUpsertByTMDBIDIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	first, err := svc.UpsertByTMDBID(&models.Title{
		TMDBID: intPtr(86831), Title: "Mohanagar", Kind: models.KindSeries, Source: models.SourceTMDB,
	})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := svc.UpsertByTMDBID(&models.Title{
		TMDBID:   intPtr(86831),
		Title:    "Mohanagar",
		Overview: "A night shift at a Dhaka police station.",
		Kind:     models.KindSeries,
		Source:   models.SourceTMDB,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "reimport must keep the local id")

	var count int64
	require.NoError(t, db.Model(&models.Title{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	stored, err := svc.GetTitleByTMDBID(86831)
	require.NoError(t, err)
	assert.Equal(t, "A night shift at a Dhaka police station.", stored.Overview)
}

func TestUpsertRequiresTMDBID(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.UpsertByTMDBID(&models.Title{Title: "No provider id"})
	assert.Error(t, err)
}

func TestGetTitleNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.GetTitleByID(42)
	assert.ErrorIs(t, err, ErrTitleNotFound)

	_, err = svc.GetTitleByTMDBID(42)
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestDeleteTitleCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	user := createTestUser(t, db, "viewer@example.com")
	title := createTestTitle(t, db, "Taqdeer", nil)

	require.NoError(t, db.Create(&models.Review{
		TitleID: title.ID, UserID: user.ID, Rating: "go_for_it",
	}).Error)
	require.NoError(t, db.Create(&models.WatchlistEntry{UserID: user.ID, TitleID: title.ID}).Error)
	require.NoError(t, db.Create(&models.WatchedEntry{UserID: user.ID, TitleID: title.ID}).Error)

	require.NoError(t, svc.DeleteTitle(title.ID))

	var reviews, watchlist, watched int64
	db.Model(&models.Review{}).Where("title_id = ?", title.ID).Count(&reviews)
	db.Model(&models.WatchlistEntry{}).Where("title_id = ?", title.ID).Count(&watchlist)
	db.Model(&models.WatchedEntry{}).Where("title_id = ?", title.ID).Count(&watched)
	assert.Zero(t, reviews)
	assert.Zero(t, watchlist)
	assert.Zero(t, watched)

	_, err := svc.GetTitleByID(title.ID)
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestDeleteTitleNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	assert.ErrorIs(t, svc.DeleteTitle(999), ErrTitleNotFound)
}

func TestListTitlesWithStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	title := createTestTitle(t, db, "Hawa", intPtr(977790))
	createTestTitle(t, db, "Debi", nil)

	require.NoError(t, db.Create(&models.Review{TitleID: title.ID, UserID: alice.ID, Rating: "perfection"}).Error)
	require.NoError(t, db.Create(&models.Review{TitleID: title.ID, UserID: bob.ID, Rating: "go_for_it"}).Error)

	out, err := svc.ListTitles()
	require.NoError(t, err)
	require.Len(t, out, 2)

	byName := map[string]TitleWithStats{}
	for _, ts := range out {
		byName[ts.Title.Title] = ts
	}
	assert.Equal(t, 2, byName["Hawa"].ReviewCount)
	assert.ElementsMatch(t,
		[]meter.Rating{meter.Perfection, meter.GoForIt},
		meter.SplitList(byName["Hawa"].Ratings))
	assert.Zero(t, byName["Debi"].ReviewCount)
	assert.Empty(t, byName["Debi"].Ratings)
}
