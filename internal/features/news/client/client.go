package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "loyalty-platform-backend/internal/common/errors"
	"loyalty-platform-backend/internal/features/news/models"
)

const baseURL = "https://min-api.cryptocompare.com/data/v2"

// Client fetches English-language crypto news from the CryptoCompare API.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// New fails when apiKey is empty; the service cannot run without it.
func New(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("CRYPTO_NEWS_API_KEY is required")
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type newsResponse struct {
	Data []struct {
		Title       string `json:"title"`
		Body        string `json:"body"`
		Source      string `json:"source"`
		URL         string `json:"url"`
		ImageURL    string `json:"imageurl"`
		Categories  string `json:"categories"`
		PublishedOn int64  `json:"published_on"`
	} `json:"Data"`
}

// FetchLatest returns the latest articles mapped into local rows.
func (c *Client) FetchLatest(ctx context.Context) ([]*models.News, error) {
	url := fmt.Sprintf("%s/news/?lang=EN", baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewExternalAPIError("cryptocompare", err)
	}
	req.Header.Set("Authorization", "Apikey "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalAPIError("cryptocompare", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewExternalAPIError("cryptocompare",
			fmt.Errorf("failed to fetch news: %s", resp.Status))
	}

	var body newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.NewExternalAPIError("cryptocompare", err)
	}

	articles := make([]*models.News, 0, len(body.Data))
	for _, a := range body.Data {
		articles = append(articles, &models.News{
			Title:       a.Title,
			Content:     a.Body,
			Source:      a.Source,
			URL:         a.URL,
			ImageURL:    a.ImageURL,
			Category:    a.Categories,
			PublishedAt: time.Unix(a.PublishedOn, 0).UTC(),
		})
	}

	return articles, nil
}
