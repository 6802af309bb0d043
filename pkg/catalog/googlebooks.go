package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const GoogleBooksBaseURL = "https://www.googleapis.com/books/v1"

type GoogleBooksClient struct {
	apiKey  string
	baseURL string
	fetch   *fetcher
}

var _ BookCatalog = &GoogleBooksClient{}

type googleVolumesResponse struct {
	Items []struct {
		Id         string `json:"id"`
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Description   string   `json:"description"`
			PublishedDate string   `json:"publishedDate"`
			PageCount     *int     `json:"pageCount"`
			Categories    []string `json:"categories"`
			AverageRating float64  `json:"averageRating"`
			RatingsCount  int      `json:"ratingsCount"`
			ImageLinks    *struct {
				Thumbnail      string `json:"thumbnail"`
				SmallThumbnail string `json:"smallThumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func NewGoogleBooksClient(apiKey, baseURL string, httpClient *http.Client) *GoogleBooksClient {
	if baseURL == "" {
		baseURL = GoogleBooksBaseURL
	}
	return &GoogleBooksClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		fetch:   newFetcher("google_books", httpClient),
	}
}

func (c *GoogleBooksClient) SearchBooks(ctx context.Context, query string, limit int) ([]Item, error) {
	if limit <= 0 || limit > 40 {
		limit = 20
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("startIndex", "0")
	q.Set("maxResults", strconv.Itoa(limit))
	q.Set("orderBy", "relevance")
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	var resp googleVolumesResponse
	if err := c.fetch.getJSON(ctx, c.baseURL+"/volumes?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(resp.Items))
	for _, v := range resp.Items {
		info := v.VolumeInfo
		if v.Id == "" || info.Title == "" {
			continue
		}
		item := Item{
			ExternalId:  v.Id,
			Source:      SourceGoogleBooks,
			Kind:        "kitap",
			Title:       info.Title,
			Authors:     info.Authors,
			Synopsis:    info.Description,
			ReleaseDate: info.PublishedDate,
			Rating:      info.AverageRating,
			VoteCount:   info.RatingsCount,
			PageCount:   info.PageCount,
			Categories:  info.Categories,
		}
		if info.ImageLinks != nil {
			thumb := info.ImageLinks.Thumbnail
			if thumb == "" {
				thumb = info.ImageLinks.SmallThumbnail
			}
			item.PosterUrl = strings.Replace(thumb, "http://", "https://", 1)
		}
		items = append(items, item)
	}
	return items, nil
}
