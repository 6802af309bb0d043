package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	TmdbBaseURL      = "https://api.themoviedb.org/3"
	TmdbImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

type TmdbConfig struct {
	APIKey      string
	BearerToken string
	BaseURL     string
	HTTPClient  *http.Client
}

type TmdbClient struct {
	apiKey  string
	bearer  string
	baseURL string
	fetch   *fetcher
}

var _ MovieCatalog = &TmdbClient{}

type tmdbSearchResponse struct {
	Results []tmdbResult `json:"results"`
}

// movie results carry title/release_date, tv results name/first_air_date
type tmdbResult struct {
	Id           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
}

func NewTmdbClient(cfg TmdbConfig) *TmdbClient {
	base := cfg.BaseURL
	if base == "" {
		base = TmdbBaseURL
	}
	return &TmdbClient{
		apiKey:  cfg.APIKey,
		bearer:  cfg.BearerToken,
		baseURL: strings.TrimRight(base, "/"),
		fetch:   newFetcher("tmdb", cfg.HTTPClient),
	}
}

// Configured reports whether any credential is present.
func (c *TmdbClient) Configured() bool {
	return c.apiKey != "" || c.bearer != ""
}

func (c *TmdbClient) SearchMovies(ctx context.Context, query string, page int) ([]Item, error) {
	return c.search(ctx, "/search/movie", "film", query, page)
}

func (c *TmdbClient) SearchSeries(ctx context.Context, query string, page int) ([]Item, error) {
	return c.search(ctx, "/search/tv", "dizi", query, page)
}

func (c *TmdbClient) search(ctx context.Context, path, kind, query string, page int) ([]Item, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("language", "tr-TR")

	headers := map[string]string{}
	if c.bearer != "" {
		headers["Authorization"] = "Bearer " + c.bearer
	} else if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}

	var resp tmdbSearchResponse
	if err := c.fetch.getJSON(ctx, c.baseURL+path+"?"+q.Encode(), headers, &resp); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.Id == 0 {
			continue
		}
		title := r.Title
		if title == "" {
			title = r.Name
		}
		date := r.ReleaseDate
		if date == "" {
			date = r.FirstAirDate
		}
		item := Item{
			ExternalId:  strconv.FormatInt(r.Id, 10),
			Source:      SourceTmdb,
			Kind:        kind,
			Title:       title,
			Synopsis:    r.Overview,
			ReleaseDate: date,
			Rating:      r.VoteAverage,
			VoteCount:   r.VoteCount,
		}
		if r.PosterPath != nil && *r.PosterPath != "" {
			item.PosterUrl = TmdbImageBaseURL + *r.PosterPath
		}
		items = append(items, item)
	}
	return items, nil
}
