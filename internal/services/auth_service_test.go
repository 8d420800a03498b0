package services

import (
	"testing"
	"time"

	"github.com/faisal420-png/bdcinema/internal/config"
	"github.com/faisal420-png/bdcinema/internal/dto"
	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.RoleUser, resp.User.Role)

	login, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{
		Name: "Imposter", Email: "alice@example.com", Password: "hunter23",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(&dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The spent token is revoked and cannot be replayed.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(&dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: reg.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeleteAccountRemovesOwnedRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())
	title := createTestTitle(t, db, "Hawa", nil)

	reg, err := svc.Register(&dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	userID := reg.User.ID

	require.NoError(t, db.Create(&models.Review{
		TitleID: title.ID, UserID: userID, Rating: "go_for_it",
	}).Error)
	require.NoError(t, db.Create(&models.WatchlistEntry{UserID: userID, TitleID: title.ID}).Error)
	require.NoError(t, db.Create(&models.InterestedEntry{UserID: userID, TMDBID: 615635, MediaType: "movie"}).Error)

	require.NoError(t, svc.DeleteAccount(userID, "hunter22"))

	_, err = svc.GetUser(userID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var reviews, watchlist, interested, tokens int64
	db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&reviews)
	db.Model(&models.WatchlistEntry{}).Where("user_id = ?", userID).Count(&watchlist)
	db.Model(&models.InterestedEntry{}).Where("user_id = ?", userID).Count(&interested)
	db.Model(&models.RefreshToken{}).Where("user_id = ?", userID).Count(&tokens)
	assert.Zero(t, reviews)
	assert.Zero(t, watchlist)
	assert.Zero(t, interested)
	assert.Zero(t, tokens)

	// The reviewed title itself survives.
	var titleCount int64
	db.Model(&models.Title{}).Count(&titleCount)
	assert.EqualValues(t, 1, titleCount)
}

func TestDeleteAccountRequiresPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(&dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	err = svc.DeleteAccount(reg.User.ID, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.GetUser(reg.User.ID)
	require.NoError(t, err)
}
