package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/MGTheTrain/book-organiser/internal/pkg/config"
	"github.com/MGTheTrain/book-organiser/internal/pkg/logger"
	"github.com/MGTheTrain/book-organiser/internal/pkg/metrics"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// ErrUpstream is returned when Google Books answers with a non-success status
var ErrUpstream = errors.New("google books request failed")

// fields trims the volume payload to what the library stores
const volumeFields = "id,volumeInfo(title,subtitle,authors,publisher,publishedDate,description,industryIdentifiers,pageCount,categories,imageLinks,infoLink)"

// GoogleBooksClient queries the Google Books volumes API
type GoogleBooksClient struct {
	client     *resty.Client
	limiter    *rate.Limiter
	apiKey     string
	maxResults int
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewGoogleBooksClient creates a client with request throttling and retries on 429 and 5xx
func NewGoogleBooksClient(settings *config.CatalogSettings, logger logger.Logger, m *metrics.Metrics) (*GoogleBooksClient, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(settings.BaseURL, "/")).
		SetTimeout(settings.Timeout).
		SetRetryCount(settings.RetryCount).
		SetRetryWaitTime(250 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	burst := int(settings.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	return &GoogleBooksClient{
		client:     client,
		limiter:    rate.NewLimiter(rate.Limit(settings.RequestsPerSecond), burst),
		apiKey:     settings.APIKey,
		maxResults: settings.MaxResults,
		logger:     logger,
		metrics:    m,
	}, nil
}

// SearchByTitle returns volumes whose title matches query
func (c *GoogleBooksClient) SearchByTitle(ctx context.Context, query string) ([]*books.Book, error) {
	return c.search(ctx, string(books.SearchByTitle), "intitle:"+query, c.maxResults)
}

// SearchByAuthor returns volumes whose author matches query
func (c *GoogleBooksClient) SearchByAuthor(ctx context.Context, query string) ([]*books.Book, error) {
	return c.search(ctx, string(books.SearchByAuthor), "inauthor:"+query, c.maxResults)
}

// GetByISBN returns the first volume with the given ISBN
func (c *GoogleBooksClient) GetByISBN(ctx context.Context, isbn string) (*books.Book, error) {
	isbn = strings.ReplaceAll(strings.TrimSpace(isbn), "-", "")
	results, err := c.search(ctx, string(books.SearchByISBN), "isbn:"+isbn, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("isbn %s: %w", isbn, books.ErrNoResults)
	}
	return results[0], nil
}

// GetByUpstreamID returns a single volume by its Google Books ID
func (c *GoogleBooksClient) GetByUpstreamID(ctx context.Context, upstreamID string) (*books.Book, error) {
	var vol volume
	start := time.Now()
	resp, err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&vol).
			SetPathParam("id", upstreamID).
			Get("/volumes/{id}")
	})
	c.metrics.ObserveCatalogRequest("volume", err, time.Since(start))
	if err != nil {
		if resp != nil && resp.StatusCode() == http.StatusNotFound {
			return nil, fmt.Errorf("volume %s: %w", upstreamID, books.ErrNotFound)
		}
		return nil, err
	}
	return vol.toBook(), nil
}

func (c *GoogleBooksClient) search(ctx context.Context, kind, q string, maxResults int) ([]*books.Book, error) {
	var result volumesResponse
	start := time.Now()
	_, err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&result).
			SetQueryParams(map[string]string{
				"q":          q,
				"orderBy":    "relevance",
				"maxResults": strconv.Itoa(maxResults),
				"fields":     "totalItems,items(" + volumeFields + ")",
			}).
			Get("/volumes")
	})
	c.metrics.ObserveCatalogRequest(kind, err, time.Since(start))
	if err != nil {
		return nil, err
	}

	found := make([]*books.Book, 0, len(result.Items))
	for i := range result.Items {
		found = append(found, result.Items[i].toBook())
	}

	c.logger.Debug("Catalog query", q, "returned", len(found), "volumes")
	return found, nil
}

// do throttles, sends and checks one request. The returned response is set
// whenever the server answered, also on error.
func (c *GoogleBooksClient) do(ctx context.Context, send func(r *resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("catalog throttle: %w", err)
	}

	var apiErr errorResponse
	req := c.client.R().SetContext(ctx).SetError(&apiErr)
	if c.apiKey != "" {
		req.SetQueryParam("key", c.apiKey)
	}

	resp, err := send(req)
	if err != nil {
		c.logger.Warn("Google Books request failed:", err)
		return resp, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if resp.IsError() {
		c.logger.Warn("Google Books returned", resp.StatusCode(), apiErr.Error.Message)
		return resp, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode(), apiErr.Error.Message)
	}
	return resp, nil
}
