// Package tmdb is a thin client for The Movie Database HTTP API. It
// normalizes the provider's separate movie and TV response shapes into one
// internal representation.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("title not found upstream")
	ErrUpstream = errors.New("metadata provider unavailable")
)

type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	client       *http.Client

	mu     sync.Mutex
	genres map[string]map[int]string // kind -> id -> name
}

func NewClient(apiKey, baseURL, imageBaseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:       apiKey,
		baseURL:      baseURL,
		imageBaseURL: imageBaseURL,
		client:       &http.Client{Timeout: timeout},
		genres:       make(map[string]map[int]string),
	}
}

// apiKind maps the catalog's kind vocabulary onto TMDB endpoint segments.
func apiKind(kind string) string {
	if kind == "series" || kind == "tv" {
		return "tv"
	}
	return "movie"
}

// Raw response shapes. Movies carry title/release_date, TV carries
// name/first_air_date; everything downstream works on the merged form.
type rawResult struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	GenreIDs      []int   `json:"genre_ids"`
	MediaType     string  `json:"media_type"`
	VoteAverage   float64 `json:"vote_average"`
}

type rawDetails struct {
	rawResult
	Runtime        int   `json:"runtime"`
	EpisodeRunTime []int `json:"episode_run_time"`
	Genres         []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Credits struct {
		Cast []struct {
			ID        int    `json:"id"`
			Name      string `json:"name"`
			Character string `json:"character"`
		} `json:"cast"`
		Crew []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
			Job  string `json:"job"`
		} `json:"crew"`
	} `json:"credits"`
}

type Credit struct {
	PersonID  int
	Name      string
	Character string
	Job       string
}

// Details is the normalized full record for one remote title.
type Details struct {
	TMDBID        int
	Kind          string
	Title         string
	OriginalTitle string
	Overview      string
	ReleaseYear   *int
	PosterPath    string
	BackdropPath  string
	Genres        []string
	Runtime       int
	Cast          []Credit
	Crew          []Credit
}

// SearchResult is one normalized multi-search hit.
type SearchResult struct {
	TMDBID      int
	MediaType   string
	Title       string
	Overview    string
	ReleaseYear *int
	PosterPath  string
}

// Discovered is one normalized discover-feed entry; genre ids are unresolved
// because the discover endpoints return ids only.
type Discovered struct {
	TMDBID        int
	Title         string
	OriginalTitle string
	Overview      string
	ReleaseYear   *int
	PosterPath    string
	BackdropPath  string
	GenreIDs      []int
}

type Person struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Biography          string  `json:"biography"`
	ProfilePath        string  `json:"profile_path"`
	KnownForDepartment string  `json:"known_for_department"`
	Birthday           *string `json:"birthday"`
	PlaceOfBirth       *string `json:"place_of_birth"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("bad endpoint %q: %w", path, err)
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", "en-US")
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode TMDB response: %w", err)
	}
	return nil
}

func yearOf(releaseDate, firstAirDate string) *int {
	date := releaseDate
	if date == "" {
		date = firstAirDate
	}
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	return &year
}

func pickTitle(title, name string) string {
	if title != "" {
		return title
	}
	if name != "" {
		return name
	}
	return "Unknown"
}

// Details fetches one title with credits appended. A non-success upstream
// status is an error; there is no local fallback at this layer.
func (c *Client) Details(ctx context.Context, tmdbID int, kind string) (*Details, error) {
	var raw rawDetails
	path := fmt.Sprintf("/%s/%d", apiKind(kind), tmdbID)
	if err := c.get(ctx, path, url.Values{"append_to_response": {"credits"}}, &raw); err != nil {
		return nil, err
	}

	d := &Details{
		TMDBID:        raw.ID,
		Kind:          kind,
		Title:         pickTitle(raw.Title, raw.Name),
		OriginalTitle: pickTitle(raw.OriginalTitle, raw.OriginalName),
		Overview:      raw.Overview,
		ReleaseYear:   yearOf(raw.ReleaseDate, raw.FirstAirDate),
		PosterPath:    raw.PosterPath,
		BackdropPath:  raw.BackdropPath,
		Runtime:       raw.Runtime,
	}
	if d.Runtime == 0 && len(raw.EpisodeRunTime) > 0 {
		d.Runtime = raw.EpisodeRunTime[0]
	}
	for _, g := range raw.Genres {
		d.Genres = append(d.Genres, g.Name)
	}
	for _, m := range raw.Credits.Cast {
		d.Cast = append(d.Cast, Credit{PersonID: m.ID, Name: m.Name, Character: m.Character})
	}
	for _, m := range raw.Credits.Crew {
		d.Crew = append(d.Crew, Credit{PersonID: m.ID, Name: m.Name, Job: m.Job})
	}
	return d, nil
}

// SearchMulti searches movies and TV in one call. The search path degrades
// gracefully: an empty query or a failing upstream yields an empty result
// list, never an error.
func (c *Client) SearchMulti(ctx context.Context, query string) []SearchResult {
	if query == "" {
		return nil
	}

	var raw struct {
		Results []rawResult `json:"results"`
	}
	q := url.Values{"query": {query}, "include_adult": {"false"}, "page": {"1"}}
	if err := c.get(ctx, "/search/multi", q, &raw); err != nil {
		slog.Warn("title search degraded to empty results", "error", err)
		return nil
	}

	var results []SearchResult
	for _, r := range raw.Results {
		if r.MediaType != "movie" && r.MediaType != "tv" {
			continue
		}
		results = append(results, SearchResult{
			TMDBID:      r.ID,
			MediaType:   r.MediaType,
			Title:       pickTitle(r.Title, r.Name),
			Overview:    r.Overview,
			ReleaseYear: yearOf(r.ReleaseDate, r.FirstAirDate),
			PosterPath:  r.PosterPath,
		})
	}
	return results
}

func (c *Client) discover(ctx context.Context, kind, originCountry string) ([]Discovered, error) {
	var raw struct {
		Results []rawResult `json:"results"`
	}
	q := url.Values{
		"with_origin_country": {originCountry},
		"sort_by":             {"popularity.desc"},
		"page":                {"1"},
	}
	if err := c.get(ctx, "/discover/"+kind, q, &raw); err != nil {
		return nil, err
	}

	out := make([]Discovered, 0, len(raw.Results))
	for _, r := range raw.Results {
		out = append(out, Discovered{
			TMDBID:        r.ID,
			Title:         pickTitle(r.Title, r.Name),
			OriginalTitle: pickTitle(r.OriginalTitle, r.OriginalName),
			Overview:      r.Overview,
			ReleaseYear:   yearOf(r.ReleaseDate, r.FirstAirDate),
			PosterPath:    r.PosterPath,
			BackdropPath:  r.BackdropPath,
			GenreIDs:      r.GenreIDs,
		})
	}
	return out, nil
}

// DiscoverMovies lists popular movies originating from the given country.
func (c *Client) DiscoverMovies(ctx context.Context, originCountry string) ([]Discovered, error) {
	return c.discover(ctx, "movie", originCountry)
}

// DiscoverSeries lists popular series originating from the given country.
func (c *Client) DiscoverSeries(ctx context.Context, originCountry string) ([]Discovered, error) {
	return c.discover(ctx, "tv", originCountry)
}

// Genres returns the id-to-name genre table for a kind. The table is fetched
// once per process and cached; TMDB genre ids are stable.
func (c *Client) Genres(ctx context.Context, kind string) (map[int]string, error) {
	k := apiKind(kind)

	c.mu.Lock()
	if cached, ok := c.genres[k]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	var raw struct {
		Genres []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := c.get(ctx, "/genre/"+k+"/list", nil, &raw); err != nil {
		return nil, err
	}

	table := make(map[int]string, len(raw.Genres))
	for _, g := range raw.Genres {
		table[g.ID] = g.Name
	}

	c.mu.Lock()
	c.genres[k] = table
	c.mu.Unlock()
	return table, nil
}

// Person fetches a person's public profile.
func (c *Client) Person(ctx context.Context, personID int) (*Person, error) {
	var p Person
	if err := c.get(ctx, fmt.Sprintf("/person/%d", personID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PersonCredits lists the films and series a person appeared in or worked on,
// normalized like search results and sorted as the provider returns them.
func (c *Client) PersonCredits(ctx context.Context, personID int) ([]SearchResult, error) {
	var raw struct {
		Cast []rawResult `json:"cast"`
		Crew []rawResult `json:"crew"`
	}
	if err := c.get(ctx, fmt.Sprintf("/person/%d/combined_credits", personID), nil, &raw); err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var credits []SearchResult
	for _, r := range append(raw.Cast, raw.Crew...) {
		if seen[r.ID] || (r.MediaType != "movie" && r.MediaType != "tv") {
			continue
		}
		seen[r.ID] = true
		credits = append(credits, SearchResult{
			TMDBID:      r.ID,
			MediaType:   r.MediaType,
			Title:       pickTitle(r.Title, r.Name),
			Overview:    r.Overview,
			ReleaseYear: yearOf(r.ReleaseDate, r.FirstAirDate),
			PosterPath:  r.PosterPath,
		})
	}
	return credits, nil
}

// ImageURL builds a fully qualified CDN URL for a poster path fragment.
// An absent path yields an absent URL.
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "w500"
	}
	return c.imageBaseURL + "/" + size + path
}

// BackdropURL builds the wide-format CDN URL for a backdrop path fragment.
func (c *Client) BackdropURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + "/w1280" + path
}
