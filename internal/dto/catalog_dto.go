package dto

import "time"

type CreateTitleRequest struct {
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title"`
	Overview      string   `json:"overview"`
	ReleaseYear   *int     `json:"release_year"`
	PosterURL     string   `json:"poster_url"`
	Kind          string   `json:"kind"`
	Genres        []string `json:"genres"`
}

type TitleResponse struct {
	ID            uint      `json:"id"`
	TMDBID        *int      `json:"tmdb_id"`
	Title         string    `json:"title"`
	OriginalTitle string    `json:"original_title,omitempty"`
	Overview      string    `json:"overview,omitempty"`
	ReleaseYear   *int      `json:"release_year"`
	PosterURL     string    `json:"poster_url,omitempty"`
	BackdropURL   string    `json:"backdrop_url,omitempty"`
	Kind          string    `json:"kind"`
	Source        string    `json:"source"`
	Genres        []string  `json:"genres"`
	CreatedAt     time.Time `json:"created_at"`
}

// TitleWithStatsResponse annotates a catalogued title with its live review
// tally for list pages.
type TitleWithStatsResponse struct {
	TitleResponse
	ReviewCount int    `json:"review_count"`
	Ratings     string `json:"ratings,omitempty"`
	ModeRating  string `json:"mode_rating,omitempty"`
}

// RatingStatsResponse is the community verdict breakdown for one title.
type RatingStatsResponse struct {
	Total      int            `json:"total"`
	Counts     map[string]int `json:"counts"`
	ModeRating string         `json:"mode_rating,omitempty"`
}

type CreditResponse struct {
	PersonID  int    `json:"person_id"`
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
	Job       string `json:"job,omitempty"`
}

// TitleDetailResponse merges the local catalog row with fresh provider
// metadata for the detail page.
type TitleDetailResponse struct {
	TitleResponse
	Runtime int                 `json:"runtime,omitempty"`
	Cast    []CreditResponse    `json:"cast,omitempty"`
	Crew    []CreditResponse    `json:"crew,omitempty"`
	Stats   RatingStatsResponse `json:"stats"`
}

type SubmitReviewRequest struct {
	TitleID uint   `json:"title_id"`
	TMDBID  int    `json:"tmdb_id"`
	Kind    string `json:"kind"`
	Rating  string `json:"rating"`
	Body    string `json:"body"`
}

type ReviewResponse struct {
	ID            uint      `json:"id"`
	TitleID       uint      `json:"title_id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name,omitempty"`
	UserAvatarURL string    `json:"user_avatar_url,omitempty"`
	Rating        string    `json:"rating"`
	Body          string    `json:"body,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ReviewWithTitleResponse is a profile-page review joined with its title.
type ReviewWithTitleResponse struct {
	ReviewResponse
	Title TitleResponse `json:"title"`
}

type ToggleTitleRequest struct {
	TitleID uint `json:"title_id"`
}

type ToggleInterestedRequest struct {
	TMDBID    int    `json:"tmdb_id"`
	MediaType string `json:"media_type"`
}

type SearchResultResponse struct {
	TMDBID      int    `json:"tmdb_id"`
	MediaType   string `json:"media_type"`
	Title       string `json:"title"`
	Overview    string `json:"overview,omitempty"`
	ReleaseYear *int   `json:"release_year"`
	PosterURL   string `json:"poster_url,omitempty"`
}

type SearchResponse struct {
	Results []SearchResultResponse `json:"results"`
}

type SyncResponse struct {
	Success bool `json:"success"`
	Synced  int  `json:"synced"`
	Movies  int  `json:"movies"`
	Series  int  `json:"series"`
}

type WatchlistItemResponse struct {
	TitleID uint          `json:"title_id"`
	AddedAt time.Time     `json:"added_at"`
	Title   TitleResponse `json:"title"`
}

type ProfileResponse struct {
	User      UserResponse              `json:"user"`
	Reviews   []ReviewWithTitleResponse `json:"reviews"`
	Watchlist []WatchlistItemResponse   `json:"watchlist"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type PersonResponse struct {
	ID                 int                    `json:"id"`
	Name               string                 `json:"name"`
	Biography          string                 `json:"biography,omitempty"`
	ProfileURL         string                 `json:"profile_url,omitempty"`
	KnownForDepartment string                 `json:"known_for_department,omitempty"`
	Birthday           string                 `json:"birthday,omitempty"`
	PlaceOfBirth       string                 `json:"place_of_birth,omitempty"`
	Credits            []SearchResultResponse `json:"credits,omitempty"`
}
