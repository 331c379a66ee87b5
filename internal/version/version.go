// Package version checks splinter builds against GitHub releases.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the GitHub API endpoint.
	DefaultBaseURL = "https://api.github.com"
	// DefaultTimeout bounds a release lookup.
	DefaultTimeout = 30 * time.Second

	maxBodySize = 64 * 1024
)

// ErrLookupFailed reports a non-200 answer from the release API.
var ErrLookupFailed = errors.New("release lookup failed")

// ErrBadRepo reports an owner or repo name the API would reject.
var ErrBadRepo = errors.New("invalid owner or repo name")

var repoNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Release is the subset of a GitHub release splinter cares about.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
}

// Client fetches release information from GitHub.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(url, "/") }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds a release client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  fmt.Sprintf("splinter/dev (%s/%s)", runtime.GOOS, runtime.GOARCH),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

//nolint:gochecknoglobals // Package-level convenience client
var defaultClient = NewClient()

// GetLatestRelease fetches owner/repo's latest release with the default client.
func GetLatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	return defaultClient.GetLatestRelease(ctx, owner, repo)
}

// GetLatestRelease fetches owner/repo's latest release.
func (c *Client) GetLatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	if !repoNamePattern.MatchString(owner) || !repoNamePattern.MatchString(repo) {
		return nil, ErrBadRepo
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building release request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrLookupFailed, resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding release: %w", err)
	}
	return &release, nil
}

// IsNewerVersion reports whether latest is a newer release than current.
// Development builds ("dev", empty, or a bare commit hash) count as older
// than any tagged release.
func IsNewerVersion(current, latest string) bool {
	return CompareVersions(latest, current) > 0
}

// CompareVersions orders two version strings: 1 if a > b, -1 if a < b,
// 0 when equal.
func CompareVersions(a, b string) int {
	aDev := isDevBuild(a)
	bDev := isDevBuild(b)
	switch {
	case aDev && bDev:
		return 0
	case aDev:
		return -1
	case bDev:
		return 1
	}

	av := semverParts(a)
	bv := semverParts(b)
	for i := 0; i < 3; i++ {
		if av[i] != bv[i] {
			if av[i] > bv[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

func isDevBuild(v string) bool {
	v = strings.TrimPrefix(v, "v")
	return v == "" || v == "dev" || isCommitHash(v)
}

// semverParts extracts major.minor.patch, ignoring any -pre or +build
// suffix. Missing or unparseable parts read as zero.
func semverParts(v string) [3]int {
	v = strings.TrimPrefix(v, "v")
	if idx := strings.IndexAny(v, "-+"); idx != -1 {
		v = v[:idx]
	}

	var parts [3]int
	for i, s := range strings.SplitN(v, ".", 3) {
		if n, err := strconv.Atoi(s); err == nil {
			parts[i] = n
		}
	}
	return parts
}

// isCommitHash reports whether s looks like a git hash: 7-40 hex chars
// with at least one letter, so numeric versions don't match.
func isCommitHash(s string) bool {
	s = strings.TrimSuffix(s, "-dirty")
	if len(s) < 7 || len(s) > 40 {
		return false
	}

	hasLetter := false
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
			hasLetter = true
		default:
			return false
		}
	}
	return hasLetter
}
