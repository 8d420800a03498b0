package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleWatchlistFlips(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db, NewCatalogService(db))
	user := createTestUser(t, db, "alice@example.com")
	title := createTestTitle(t, db, "Hawa", nil)

	added, err := svc.ToggleWatchlist(user.ID, title.ID)
	require.NoError(t, err)
	assert.True(t, added)

	in, err := svc.IsInWatchlist(user.ID, title.ID)
	require.NoError(t, err)
	assert.True(t, in)

	removed, err := svc.ToggleWatchlist(user.ID, title.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	in, err = svc.IsInWatchlist(user.ID, title.ID)
	require.NoError(t, err)
	assert.False(t, in)
}

func TestToggleWatchlistUnknownTitle(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db, NewCatalogService(db))
	user := createTestUser(t, db, "alice@example.com")

	_, err := svc.ToggleWatchlist(user.ID, 999)
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestWatchlistIsPerUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db, NewCatalogService(db))
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	hawa := createTestTitle(t, db, "Hawa", nil)
	debi := createTestTitle(t, db, "Debi", nil)

	_, err := svc.ToggleWatchlist(alice.ID, hawa.ID)
	require.NoError(t, err)
	_, err = svc.ToggleWatchlist(alice.ID, debi.ID)
	require.NoError(t, err)
	_, err = svc.ToggleWatchlist(bob.ID, hawa.ID)
	require.NoError(t, err)

	entries, err := svc.Watchlist(alice.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = svc.Watchlist(bob.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Hawa", entries[0].Title.Title)
}

func TestToggleWatchedFlips(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db, NewCatalogService(db))
	user := createTestUser(t, db, "alice@example.com")
	title := createTestTitle(t, db, "Mohanagar", nil)

	watched, err := svc.ToggleWatched(user.ID, title.ID)
	require.NoError(t, err)
	assert.True(t, watched)

	watched, err = svc.ToggleWatched(user.ID, title.ID)
	require.NoError(t, err)
	assert.False(t, watched)
}

func TestToggleInterestedByProviderID(t *testing.T) {
	db := newTestDB(t)
	svc := NewListService(db, NewCatalogService(db))
	user := createTestUser(t, db, "alice@example.com")

	// No local catalog row needed for interest.
	interested, err := svc.ToggleInterested(user.ID, 86831, "tv")
	require.NoError(t, err)
	assert.True(t, interested)

	in, err := svc.IsInterested(user.ID, 86831)
	require.NoError(t, err)
	assert.True(t, in)

	interested, err = svc.ToggleInterested(user.ID, 86831, "tv")
	require.NoError(t, err)
	assert.False(t, interested)
}
