// Package feed fetches recently updated papers from the arXiv query API.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/mmcdole/gofeed"

	"github.com/demajh/research-listener/pkg/domain"
)

// DefaultEndpoint is the public arXiv query API
const DefaultEndpoint = "https://export.arxiv.org/api/query"

// errPermanent marks fetch errors which should not be retried
var errPermanent = errors.New("permanent fetch error")

// StatusError is returned for non-200 responses of the catalog
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// Is reports client errors other than 429 as permanent
func (e *StatusError) Is(target error) bool {
	return target == errPermanent && e.Code >= 400 && e.Code < 500 && e.Code != http.StatusTooManyRequests
}

// Client fetches papers for a category from the arXiv Atom API
type Client struct {
	client     *http.Client
	endpoint   string
	userAgent  string
	maxResults int
	retries    int
	retryDelay time.Duration
}

// Params configures the client
type Params struct {
	Endpoint   string
	Timeout    time.Duration
	UserAgent  string
	MaxResults int           // used when Fetch gets maxResults <= 0
	Retries    int           // attempts for transient failures, 1 means no retry
	RetryDelay time.Duration // initial backoff delay
}

// Window is a range of UTC calendar dates used in the catalog query
type Window struct {
	From time.Time
	To   time.Time
}

// DayWindow returns the window covering the given number of trailing UTC days, ending today.
// Boundaries are calendar dates, not timestamps, matching the granularity of the catalog query.
func DayWindow(now time.Time, days int) Window {
	if days < 1 {
		days = 1
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Window{From: today.AddDate(0, 0, -days), To: today}
}

// NewClient creates a new catalog client
func NewClient(p Params) *Client {
	if p.Endpoint == "" {
		p.Endpoint = DefaultEndpoint
	}
	if p.Timeout == 0 {
		p.Timeout = 20 * time.Second
	}
	if p.UserAgent == "" {
		p.UserAgent = "research-listener/1.0"
	}
	if p.MaxResults <= 0 {
		p.MaxResults = 120
	}
	if p.Retries < 1 {
		p.Retries = 1
	}
	if p.RetryDelay == 0 {
		p.RetryDelay = time.Second
	}

	return &Client{
		client: &http.Client{
			Timeout: p.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		endpoint:   p.Endpoint,
		userAgent:  p.UserAgent,
		maxResults: p.MaxResults,
		retries:    p.Retries,
		retryDelay: p.RetryDelay,
	}
}

// Fetch returns papers of the channel updated within the window, most recently updated first.
// Transport errors, 5xx and 429 are retried, other 4xx responses fail at once. Malformed entries are skipped.
func (c *Client) Fetch(ctx context.Context, channel string, maxResults int, window Window) ([]domain.Paper, error) {
	if maxResults <= 0 {
		maxResults = c.maxResults
	}
	queryURL, err := c.buildURL(channel, maxResults, window)
	if err != nil {
		return nil, err
	}

	var body []byte
	retrier := repeater.NewBackoff(c.retries, c.retryDelay, repeater.WithMaxDelay(10*c.retryDelay))
	err = retrier.Do(ctx, func() error {
		data, fetchErr := c.fetch(ctx, queryURL)
		if fetchErr != nil {
			lgr.Printf("[DEBUG] fetch %s failed: %v", channel, fetchErr)
			return fetchErr
		}
		body = data
		return nil
	}, errPermanent)
	if err != nil {
		return nil, fmt.Errorf("fetch feed for %s: %w", channel, err)
	}

	papers, err := parsePapers(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed for %s: %w", channel, err)
	}

	sort.SliceStable(papers, func(i, j int) bool { return papers[i].Updated.After(papers[j].Updated) })
	if len(papers) > maxResults {
		papers = papers[:maxResults]
	}

	lgr.Printf("[DEBUG] fetched %d papers for %s", len(papers), channel)
	return papers, nil
}

// buildURL makes the query for one category and date window
func (c *Client) buildURL(channel string, maxResults int, window Window) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}

	const dateFmt = "20060102"
	q := u.Query()
	q.Set("search_query", fmt.Sprintf("cat:%s AND lastUpdatedDate:[%s0000 TO %s0000]",
		channel, window.From.UTC().Format(dateFmt), window.To.UTC().Format(dateFmt)))
	q.Set("sortBy", "lastUpdatedDate")
	q.Set("sortOrder", "descending")
	q.Set("max_results", strconv.Itoa(maxResults))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// fetch retrieves the raw response body
func (c *Client) fetch(ctx context.Context, queryURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addFeedHeaders(req, c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

var spacesRe = regexp.MustCompile(`\s+`)

// parsePapers converts Atom entries to papers, skipping entries with missing fields
func parsePapers(data []byte) ([]domain.Paper, error) {
	feed, err := gofeed.NewParser().Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}

	papers := make([]domain.Paper, 0, len(feed.Items))
	for i, item := range feed.Items {
		paper, err := toPaper(item)
		if err != nil {
			lgr.Printf("[WARN] skip feed entry %d: %v", i, err)
			continue
		}
		papers = append(papers, paper)
	}
	return papers, nil
}

func toPaper(item *gofeed.Item) (domain.Paper, error) {
	if item == nil {
		return domain.Paper{}, fmt.Errorf("empty entry")
	}
	title := normalizeSpaces(item.Title)
	if title == "" {
		return domain.Paper{}, fmt.Errorf("missing title")
	}
	abstract := normalizeSpaces(item.Description)
	if abstract == "" {
		return domain.Paper{}, fmt.Errorf("missing abstract for %q", title)
	}
	if item.GUID == "" {
		return domain.Paper{}, fmt.Errorf("missing id for %q", title)
	}
	if item.Link == "" {
		return domain.Paper{}, fmt.Errorf("missing link for %q", title)
	}
	if item.UpdatedParsed == nil {
		return domain.Paper{}, fmt.Errorf("missing updated date for %q", title)
	}

	authors := make([]string, 0, len(item.Authors))
	for _, a := range item.Authors {
		if a == nil {
			continue
		}
		if name := normalizeSpaces(a.Name); name != "" {
			authors = append(authors, name)
		}
	}

	return domain.Paper{
		ArxivID:  arxivID(item.GUID),
		Title:    title,
		Abstract: abstract,
		Authors:  authors,
		Link:     item.Link,
		Updated:  item.UpdatedParsed.UTC(),
	}, nil
}

// arxivID returns the last path segment of an entry id, e.g. 2410.01234v1
func arxivID(guid string) string {
	guid = strings.TrimRight(guid, "/")
	if idx := strings.LastIndex(guid, "/"); idx >= 0 {
		return guid[idx+1:]
	}
	return guid
}

func normalizeSpaces(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}
