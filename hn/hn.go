package hn

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/tluyben/hn-top/types"
)

// DefaultAPIBase is the public Hacker News Firebase API
const DefaultAPIBase = "https://hacker-news.firebaseio.com/v0"

// TransportError reports a failed fetch: the request could not be made,
// the server answered with a non-200 status, or the body was not JSON.
type TransportError struct {
	URL        string // full request URL when the fetcher can resolve it, else the API path
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status code: %d, body: %s", e.URL, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Fetcher returns the raw body stored at path, e.g. "/item/8863.json"
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// HTTPFetcher fetches paths relative to an API base URL
type HTTPFetcher struct {
	httpClient *http.Client
	apiBase    string
	verbose    bool
}

// NewHTTPFetcher creates a fetcher for apiBase
func NewHTTPFetcher(apiBase string, timeout time.Duration, verbose bool) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: &http.Client{Timeout: timeout},
		apiBase:    apiBase,
		verbose:    verbose,
	}
}

// URL resolves path against the API base
func (f *HTTPFetcher) URL(path string) string {
	return f.apiBase + path
}

// Fetch performs a GET and returns the body of a 200 response
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := f.URL(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}

	if f.verbose {
		log.Printf("Making request to: %s", url)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		if f.verbose {
			log.Printf("Request failed with status %d: %s", resp.StatusCode, string(body))
		}
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if len(body) == 0 {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode, Err: errors.New("empty response body")}
	}

	if f.verbose {
		log.Printf("Response body length: %d bytes", len(body))
	}
	return body, nil
}

// Options configures a Client
type Options struct {
	APIBase     string
	Timeout     time.Duration
	Concurrency int // maximum item fetches in flight, 0 means unbounded
	Verbose     bool
}

// Client fetches and validates Hacker News items
type Client struct {
	fetcher     Fetcher
	concurrency int
}

// NewClient creates a client talking to the HTTP API
func NewClient(opts Options) *Client {
	if opts.APIBase == "" {
		opts.APIBase = DefaultAPIBase
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return NewClientWithFetcher(NewHTTPFetcher(opts.APIBase, opts.Timeout, opts.Verbose), opts.Concurrency)
}

// NewClientWithFetcher creates a client reading through f
func NewClientWithFetcher(f Fetcher, concurrency int) *Client {
	return &Client{fetcher: f, concurrency: concurrency}
}

// urlFor names path the way the fetcher requests it
func (c *Client) urlFor(path string) string {
	if r, ok := c.fetcher.(interface{ URL(string) string }); ok {
		return r.URL(path)
	}
	return path
}

// getJSON fetches path and parses the body. Numbers are kept as
// json.Number so large IDs survive.
func (c *Client) getJSON(ctx context.Context, path string) (any, error) {
	body, err := c.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &TransportError{URL: c.urlFor(path), StatusCode: http.StatusOK, Err: fmt.Errorf("malformed JSON body: %w", err)}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &TransportError{URL: c.urlFor(path), StatusCode: http.StatusOK, Err: errors.New("malformed JSON body: trailing data")}
	}
	return v, nil
}

// getStoryIDs fetches one of the story lists ("topstories", "newstories",
// "beststories", ...), keeping the first limit IDs when limit is positive
func (c *Client) getStoryIDs(ctx context.Context, storyType string, limit int) ([]int, error) {
	raw, err := c.getJSON(ctx, fmt.Sprintf("/%s.json", storyType))
	if err != nil {
		return nil, err
	}

	ids, err := types.DecodeIDs(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", storyType, err)
	}

	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids, nil
}

// TopStoryIDs fetches the IDs of the current top items
func (c *Client) TopStoryIDs(ctx context.Context, limit int) ([]int, error) {
	return c.getStoryIDs(ctx, "topstories", limit)
}

// Item fetches and validates the item with the given ID
func (c *Client) Item(ctx context.Context, id int) (types.Item, error) {
	raw, err := c.getJSON(ctx, fmt.Sprintf("/item/%d.json", id))
	if err != nil {
		return nil, err
	}

	item, err := types.DecodeItem(raw)
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", id, err)
	}
	return item, nil
}

// Items fetches ids concurrently. The result follows the order of ids; any
// single failure fails the whole call.
func (c *Client) Items(ctx context.Context, ids []int) ([]types.Item, error) {
	return MapOrdered(ctx, ids, c.concurrency, c.Item)
}

// TopItems fetches the first limit top items in rank order
func (c *Client) TopItems(ctx context.Context, limit int) ([]types.Item, error) {
	ids, err := c.TopStoryIDs(ctx, limit)
	if err != nil {
		return nil, err
	}
	return c.Items(ctx, ids)
}
