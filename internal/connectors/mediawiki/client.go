package mediawiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driven"
	"github.com/custodia-labs/rosetta-mirror/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for throttled requests.
	MaxRetries = 3

	// CategoryMembersLimit is the page size of category listings.
	CategoryMembersLimit = 200

	// RecentChangesLimit is the page size of the recent-changes feed.
	RecentChangesLimit = 500

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 1024
)

// Config configures a Client.
type Config struct {
	// URL is the api.php endpoint.
	URL string

	// UserAgent is sent with every request.
	UserAgent string

	// RequestsPerSecond paces requests. Zero uses DefaultRequestsPerSecond.
	RequestsPerSecond float64

	// MaxRetries bounds retries of throttled requests. Negative disables
	// retries; zero uses MaxRetries.
	MaxRetries int

	// HTTPClient overrides the HTTP client. Nil uses a client with
	// DefaultTimeout.
	HTTPClient *http.Client
}

// Client queries a MediaWiki API endpoint.
type Client struct {
	baseURL     string
	userAgent   string
	http        *http.Client
	rateLimiter *RateLimiter
	maxRetries  int
}

// Verify interface compliance.
var _ driven.WikiClient = (*Client)(nil)

// NewClient creates a new MediaWiki API client.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	maxRetries := cfg.MaxRetries
	switch {
	case maxRetries == 0:
		maxRetries = MaxRetries
	case maxRetries < 0:
		maxRetries = 0
	}

	return &Client{
		baseURL:     cfg.URL,
		userAgent:   cfg.UserAgent,
		http:        httpClient,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond),
		maxRetries:  maxRetries,
	}
}

// CategoryMembers lists every page of a category.
func (c *Client) CategoryMembers(ctx context.Context, category string) ([]domain.CategoryMember, error) {
	params := baseParams()
	params.Set("list", "categorymembers")
	params.Set("cmlimit", strconv.Itoa(CategoryMembersLimit))
	params.Set("cmtitle", domain.CategoryPrefix+domain.StripCategoryPrefix(category))

	result, err := Query[CategoryMembersResult](ctx, c, params)
	if err != nil {
		return nil, fmt.Errorf("list category %s: %w", category, err)
	}
	return result.Members, nil
}

// RecentChanges lists every edit at or after since, oldest first.
// An empty since lists the whole feed the wiki retains.
func (c *Client) RecentChanges(ctx context.Context, since string) ([]domain.RevisionChange, error) {
	params := baseParams()
	params.Set("list", "recentchanges")
	params.Set("rcprop", "title|ids|timestamp")
	params.Set("rclimit", strconv.Itoa(RecentChangesLimit))
	if since != "" {
		params.Set("rcstart", since)
		params.Set("rcdir", "newer")
	}

	result, err := Query[RecentChangesResult](ctx, c, params)
	if err != nil {
		return nil, fmt.Errorf("list recent changes: %w", err)
	}
	domain.SortChanges(result.Changes)
	return result.Changes, nil
}

// Page fetches the latest revision of a page.
func (c *Client) Page(ctx context.Context, pageID uint64) (*domain.PageRevision, error) {
	params := revisionParams(pageID)
	rev, err := c.fetchRevision(ctx, pageID, params)
	if err != nil {
		return nil, fmt.Errorf("get page %d: %w", pageID, err)
	}
	return rev, nil
}

// Revision fetches a page at a specific revision.
func (c *Client) Revision(ctx context.Context, pageID, revisionID uint64) (*domain.PageRevision, error) {
	params := revisionParams(pageID)
	params.Set("rvstartid", strconv.FormatUint(revisionID, 10))
	params.Set("rvlimit", "1")

	rev, err := c.fetchRevision(ctx, pageID, params)
	if err != nil {
		return nil, fmt.Errorf("get page %d revision %d: %w", pageID, revisionID, err)
	}
	if rev.RevisionID != revisionID {
		logger.Warn("mediawiki: page %d: asked for revision %d, got %d", pageID, revisionID, rev.RevisionID)
	}
	return rev, nil
}

func revisionParams(pageID uint64) url.Values {
	params := baseParams()
	params.Set("prop", "revisions")
	params.Set("rvprop", "content|ids|timestamp|user|comment")
	params.Set("pageids", strconv.FormatUint(pageID, 10))
	return params
}

func (c *Client) fetchRevision(ctx context.Context, pageID uint64, params url.Values) (*domain.PageRevision, error) {
	result, err := Query[PagesResult](ctx, c, params)
	if err != nil {
		return nil, err
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("%w: no pages in response", domain.ErrMalformedResponse)
	}

	page := result.Pages[0]
	if page.Missing {
		return nil, domain.ErrNotFound
	}
	if len(page.Revisions) == 0 {
		return nil, fmt.Errorf("%w: page has no revisions", domain.ErrMalformedResponse)
	}

	rev := page.Revisions[0]
	id := page.PageID
	if id == 0 {
		id = pageID
	}
	return &domain.PageRevision{
		PageID:     id,
		RevisionID: rev.RevID,
		Title:      page.Title,
		Timestamp:  rev.Timestamp,
		User:       rev.User,
		Comment:    rev.Comment,
		Content:    rev.Text(),
	}, nil
}

// get issues one API request, retrying while the wiki asks to back off.
func (c *Client) get(ctx context.Context, params url.Values) (*envelope, error) {
	for attempt := 0; ; attempt++ {
		env, err := c.do(ctx, params)

		var rateLimitErr *RateLimitError
		if errors.As(err, &rateLimitErr) && attempt < c.maxRetries {
			logger.Warn("mediawiki: %v (attempt %d/%d)", err, attempt+1, c.maxRetries)
			if waitErr := c.rateLimiter.Backoff(ctx, rateLimitErr); waitErr != nil {
				return nil, waitErr
			}
			continue
		}
		return env, err
	}
}

func (c *Client) do(ctx context.Context, params url.Values) (*envelope, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger.Debug("mediawiki: GET %s", reqURL)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := c.rateLimiter.CheckRateLimit(resp); err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Info:       strings.TrimSpace(string(body)),
			URL:        reqURL,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrTransport, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	if env.Error != nil {
		if env.Error.Code == "maxlag" {
			return nil, &RateLimitError{
				StatusCode: resp.StatusCode,
				RetryAfter: parseRetryAfter(resp.Header.Get(HeaderRetryAfter)),
			}
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Error.Code,
			Info:       env.Error.Info,
			URL:        reqURL,
		}
	}

	return &env, nil
}
