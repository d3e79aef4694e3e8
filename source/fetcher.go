// ABOUTME: Playlist fetcher for HTTP(S) URLs and local files
// ABOUTME: Applies timeout, User-Agent and a body size limit; reports non-2xx as StatusError

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"livetv/playlist"
)

// Defaults for FetcherConfig fields left at zero
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "livetv/1.0"
	DefaultMaxBytes  = 64 << 20
)

// ErrEmptyLocation is returned when asked to fetch a blank location
var ErrEmptyLocation = errors.New("empty playlist location")

// ErrTooLarge is returned when a playlist exceeds the configured size limit
var ErrTooLarge = errors.New("playlist exceeds size limit")

// StatusError reports a non-2xx HTTP response
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP request returned status %d: %s", e.StatusCode, e.Status)
}

// FetcherConfig configures a Fetcher
type FetcherConfig struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Logger    zerolog.Logger

	// Client overrides the HTTP client; Timeout is ignored when set
	Client *http.Client
}

// Fetcher retrieves playlist text from a location
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	logger    zerolog.Logger
}

// NewFetcher creates a Fetcher, filling unset fields with defaults
func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Fetcher{
		client:    client,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBytes,
		logger:    cfg.Logger,
	}
}

// Fetch returns the playlist text at location.
// HTTP(S) URLs are requested with ctx; anything else is read from disk.
func (f *Fetcher) Fetch(ctx context.Context, location string) (string, error) {
	body, err := f.open(ctx, location)
	if err != nil {
		return "", err
	}
	defer f.closeBody(body)

	data, err := io.ReadAll(&cappedReader{r: body, n: f.maxBytes})
	if err != nil {
		return "", fmt.Errorf("failed to read playlist %s: %w", location, err)
	}

	f.logger.Debug().Str("location", location).Int("bytes", len(data)).Msg("playlist read")

	return string(data), nil
}

// Load streams the playlist at location through the parser without
// buffering the whole body
func (f *Fetcher) Load(ctx context.Context, location string) (playlist.Result, error) {
	body, err := f.open(ctx, location)
	if err != nil {
		return playlist.Result{}, err
	}
	defer f.closeBody(body)

	result, err := playlist.ParseReader(&cappedReader{r: body, n: f.maxBytes})
	if err != nil {
		return playlist.Result{}, fmt.Errorf("failed to read playlist %s: %w", location, err)
	}

	f.logger.Debug().Str("location", location).Int("channels", len(result.Channels)).Msg("playlist loaded")

	return result, nil
}

// open returns the body of the playlist at location
func (f *Fetcher) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if location == "" {
		return nil, ErrEmptyLocation
	}

	if !isHTTP(location) {
		file, err := os.Open(localPath(location))
		if err != nil {
			return nil, fmt.Errorf("open playlist: %w", err)
		}

		return file, nil
	}

	f.logger.Debug().Str("url", location).Msg("fetching playlist")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.closeBody(resp.Body)
		return nil, &StatusError{URL: location, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return resp.Body, nil
}

func (f *Fetcher) closeBody(body io.Closer) {
	if err := body.Close(); err != nil {
		f.logger.Warn().Err(err).Msg("failed to close playlist body")
	}
}

// cappedReader fails with ErrTooLarge once more than n bytes were read
type cappedReader struct {
	r io.Reader
	n int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.n < 0 {
		return 0, ErrTooLarge
	}

	// One byte past the limit is enough to detect overflow
	if int64(len(p)) > c.n+1 {
		p = p[:c.n+1]
	}

	n, err := c.r.Read(p)
	c.n -= int64(n)

	if c.n < 0 {
		return 0, ErrTooLarge
	}

	return n, err
}
