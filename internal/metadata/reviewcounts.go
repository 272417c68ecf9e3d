// Package metadata fetches aggregate review data for books from an
// external review-aggregation service. Lookups are best-effort: callers
// are expected to render without the data when a fetch fails.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/bookclub/internal/config"
)

// ReviewCounts contains aggregate review figures for one ISBN as reported
// by the external service.
type ReviewCounts struct {
	ISBN             string  `json:"isbn"`
	RatingsCount     int     `json:"ratings_count"`
	ReviewsCount     int     `json:"reviews_count"`
	TextReviewsCount int     `json:"text_reviews_count"`
	AverageRating    float64 `json:"average_rating"`
}

// ReviewCountsClient fetches review aggregates from the external service.
type ReviewCountsClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewReviewCountsClient creates a new client for the review-aggregation
// service with rate limiting and a request timeout.
func NewReviewCountsClient(cfg config.Reviews) *ReviewCountsClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &ReviewCountsClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		rateLimiter: newRateLimiter(time.Second), // 1 request per second
	}
}

// wire format of the review_counts endpoint; average_rating arrives as a
// decimal string
type reviewCountsResponse struct {
	Books []struct {
		ISBN             string `json:"isbn"`
		RatingsCount     int    `json:"ratings_count"`
		ReviewsCount     int    `json:"reviews_count"`
		TextReviewsCount int    `json:"text_reviews_count"`
		AverageRating    string `json:"average_rating"`
	} `json:"books"`
}

// GetReviewCounts looks up aggregate review data for an ISBN.
func (c *ReviewCountsClient) GetReviewCounts(ctx context.Context, isbn string) (*ReviewCounts, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, fmt.Errorf("isbn is required")
	}

	c.rateLimiter.wait()

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("isbns", isbn)
	reqURL := fmt.Sprintf("%s/book/review_counts.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "BookClub/1.0 (https://github.com/mrlokans/bookclub)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch review counts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("ISBN not found: %s", isbn)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var body reviewCountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(body.Books) == 0 {
		return nil, fmt.Errorf("no review data for ISBN %s", isbn)
	}

	book := body.Books[0]
	average, _ := strconv.ParseFloat(book.AverageRating, 64)

	return &ReviewCounts{
		ISBN:             book.ISBN,
		RatingsCount:     book.RatingsCount,
		ReviewsCount:     book.ReviewsCount,
		TextReviewsCount: book.TextReviewsCount,
		AverageRating:    average,
	}, nil
}
