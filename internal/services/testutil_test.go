package services

import (
	"encoding/json"
	"testing"

	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. The pool is pinned to
// one connection because each sqlite :memory: connection is its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Title{},
		&models.Review{},
		&models.WatchlistEntry{},
		&models.WatchedEntry{},
		&models.InterestedEntry{},
		&models.SystemLog{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestTitle(t *testing.T, db *gorm.DB, name string, tmdbID *int) *models.Title {
	t.Helper()

	genres, err := json.Marshal([]string{"Drama"})
	require.NoError(t, err)

	source := models.SourceCustom
	if tmdbID != nil {
		source = models.SourceTMDB
	}
	title := models.Title{
		TMDBID: tmdbID,
		Title:  name,
		Kind:   models.KindMovie,
		Source: source,
		Genres: datatypes.JSON(genres),
	}
	require.NoError(t, db.Create(&title).Error)
	return &title
}

func intPtr(v int) *int { return &v }
