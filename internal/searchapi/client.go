package searchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultPageSize = 30
	DefaultOrdering = "-publication_date"
	articlesPath    = "search/articles/"
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	PageSize   int
	Ordering   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the article search endpoint.
type Client struct {
	base     *url.URL
	pageSize int
	ordering string
	client   *http.Client
}

func New(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("API url scheme must be http or https, got %q", base.Scheme)
	}

	c := &Client{
		base:     base,
		pageSize: opts.PageSize,
		ordering: opts.Ordering,
		client:   opts.HTTPClient,
	}
	if c.pageSize <= 0 {
		c.pageSize = DefaultPageSize
	}
	if c.ordering == "" {
		c.ordering = DefaultOrdering
	}
	if c.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		c.client = &http.Client{Timeout: timeout}
	}
	return c, nil
}

// PageSize reports how many results each request asks for.
func (c *Client) PageSize() int { return c.pageSize }

// SearchURL builds the first-page URL for term. An empty term lists all
// articles in the configured ordering.
func (c *Client) SearchURL(term string) string {
	u := c.base.JoinPath(articlesPath)
	q := url.Values{}
	q.Set("ordering", c.ordering)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(c.pageSize))
	if term != "" {
		q.Set("search", term)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Search fetches the first page of results for term.
func (c *Client) Search(ctx context.Context, term string) (Page, error) {
	return c.get(ctx, c.SearchURL(term))
}

// Next fetches the page a cursor points at. The cursor is used as given;
// relative cursors are resolved against the base URL.
func (c *Client) Next(ctx context.Context, cursor string) (Page, error) {
	if cursor == "" {
		return Page{}, fmt.Errorf("empty cursor")
	}
	u, err := c.base.Parse(cursor)
	if err != nil {
		return Page{}, fmt.Errorf("invalid cursor %q: %w", cursor, err)
	}
	return c.get(ctx, u.String())
}

func (c *Client) get(ctx context.Context, rawURL string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("requesting articles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Page{}, &StatusError{Code: resp.StatusCode, Body: string(b)}
	}

	var pr pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return Page{}, &DecodeError{Err: err}
	}
	return pr.page(), nil
}
