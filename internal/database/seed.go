package database

import (
	"encoding/json"
	"log/slog"

	"github.com/faisal420-png/bdcinema/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type sampleTitle struct {
	Title         string
	OriginalTitle string
	Overview      string
	ReleaseYear   int
	PosterURL     string
	Kind          string
	Genres        []string
	TMDBID        *int
}

func intPtr(n int) *int { return &n }

var sampleTitles = []sampleTitle{
	{
		Title: "Hawa", OriginalTitle: "হাওয়া",
		Overview:    "A mysterious thriller about fishermen who encounter something supernatural at sea. One of Bangladesh's most celebrated films of 2022.",
		ReleaseYear: 2022,
		PosterURL:   "https://image.tmdb.org/t/p/w500/sPoWfySFNDCFAFPbcFvXcDjPrfV.jpg",
		Kind:        models.KindMovie,
		Genres:      []string{"Thriller", "Mystery", "Horror"},
		TMDBID:      intPtr(977790),
	},
	{
		Title: "Karagar", OriginalTitle: "কারাগার",
		Overview:    "A gripping Bangladeshi web series set inside a prison, exploring power, justice, corruption, and survival.",
		ReleaseYear: 2022,
		Kind:        models.KindSeries,
		Genres:      []string{"Drama", "Crime", "Thriller"},
	},
	{
		Title: "Mohanagar", OriginalTitle: "মহানগর",
		Overview:    "A critically acclaimed Bangladeshi crime thriller following a police detective navigating corruption in the big city.",
		ReleaseYear: 2021,
		Kind:        models.KindSeries,
		Genres:      []string{"Crime", "Drama", "Mystery"},
	},
	{
		Title: "Taqdeer", OriginalTitle: "তাকদীর",
		Overview:    "A high-octane Bangladeshi action thriller about a wrongfully accused man who must uncover the truth.",
		ReleaseYear: 2021,
		Kind:        models.KindSeries,
		Genres:      []string{"Action", "Thriller", "Crime"},
	},
	{
		Title: "Debi", OriginalTitle: "দেবী",
		Overview:    "A supernatural mystery based on Humayun Ahmed's novel. A landmark in Bangladeshi supernatural cinema.",
		ReleaseYear: 2018,
		Kind:        models.KindMovie,
		Genres:      []string{"Supernatural", "Mystery", "Drama"},
	},
	{
		Title: "Shonibar Bikel", OriginalTitle: "শনিবার বিকেল",
		Overview:    "A raw, harrowing single-take account inspired by the 2016 Holey Artisan Cafe attack in Dhaka.",
		ReleaseYear: 2019,
		Kind:        models.KindMovie,
		Genres:      []string{"Drama", "Historical", "Thriller"},
	},
}

// Seed inserts the bootstrap admin account and a starter set of Bangladeshi
// titles. It only runs against empty tables, so redeploys are no-ops.
func Seed(db *gorm.DB, adminPassword string) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 && adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.User{
			ID:       uuid.New(),
			Name:     "Admin",
			Email:    "admin@bdcinema.local",
			Password: string(hash),
			Role:     models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		slog.Info("seeded admin user", "email", admin.Email)
	}

	var titleCount int64
	if err := db.Model(&models.Title{}).Count(&titleCount).Error; err != nil {
		return err
	}
	if titleCount == 0 {
		for _, s := range sampleTitles {
			genres, err := json.Marshal(s.Genres)
			if err != nil {
				return err
			}
			year := s.ReleaseYear
			title := models.Title{
				TMDBID:        s.TMDBID,
				Title:         s.Title,
				OriginalTitle: s.OriginalTitle,
				Overview:      s.Overview,
				ReleaseYear:   &year,
				PosterURL:     s.PosterURL,
				Kind:          s.Kind,
				Source:        models.SourceCustom,
				Genres:        datatypes.JSON(genres),
			}
			if err := db.Create(&title).Error; err != nil {
				return err
			}
		}
		slog.Info("seeded sample titles", "count", len(sampleTitles))
	}

	return nil
}
