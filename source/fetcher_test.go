// ABOUTME: Tests for the playlist fetcher over HTTP and local files
// ABOUTME: Uses httptest servers for status, header, cancellation and size limit cases

package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlaylist = "#EXTM3U\n#EXTINF:-1 group-title=\"News\",Alpha\nhttp://a/1\n"

// newTestFetcher disables keep-alives so no idle connection goroutines outlive a test
func newTestFetcher(cfg FetcherConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cfg.Logger = zerolog.Nop()
	cfg.Client = &http.Client{
		Timeout:   timeout,
		Transport: &http.Transport{DisableKeepAlives: true},
	}

	return NewFetcher(cfg)
}

func TestFetch_HTTP(t *testing.T) {
	var gotAgent string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(samplePlaylist))
	}))
	defer srv.Close()

	f := newTestFetcher(FetcherConfig{UserAgent: "test-agent"})

	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, samplePlaylist, body)
	assert.Equal(t, "test-agent", gotAgent)
}

func TestFetch_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := newTestFetcher(FetcherConfig{})

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr), "want *StatusError, got %T", err)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, srv.URL, statusErr.URL)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_ContextCancelled(t *testing.T) {
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	f := newTestFetcher(FetcherConfig{})

	errCh := make(chan error, 1)
	go func() {
		_, err := f.Fetch(ctx, srv.URL)
		errCh <- err
	}()

	cancel()

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Fetch did not return after cancellation")
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	f := newTestFetcher(FetcherConfig{Timeout: 50 * time.Millisecond})

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request failed")
}

func TestFetch_SizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer srv.Close()

	t.Run("over limit", func(t *testing.T) {
		f := newTestFetcher(FetcherConfig{MaxBytes: 1024})

		_, err := f.Fetch(context.Background(), srv.URL)
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("exactly at limit", func(t *testing.T) {
		f := newTestFetcher(FetcherConfig{MaxBytes: 2048})

		body, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Len(t, body, 2048)
	})
}

func TestFetch_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.m3u")
	require.NoError(t, os.WriteFile(path, []byte(samplePlaylist), 0o644))

	f := newTestFetcher(FetcherConfig{})

	tests := []struct {
		name     string
		location string
	}{
		{"plain path", path},
		{"file URL", "file://" + path},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := f.Fetch(context.Background(), tt.location)
			require.NoError(t, err)
			assert.Equal(t, samplePlaylist, body)
		})
	}
}

func TestFetch_Errors(t *testing.T) {
	f := newTestFetcher(FetcherConfig{})

	_, err := f.Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyLocation)

	_, err = f.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.m3u"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewFetcher_Defaults(t *testing.T) {
	f := NewFetcher(FetcherConfig{})

	assert.Equal(t, DefaultTimeout, f.client.Timeout)
	assert.Equal(t, DefaultUserAgent, f.userAgent)
	assert.EqualValues(t, DefaultMaxBytes, f.maxBytes)
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePlaylist))
	}))
	defer srv.Close()

	f := newTestFetcher(FetcherConfig{})

	result, err := f.Load(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, result.Channels, 1)
	assert.Equal(t, "Alpha", result.Channels[0].Name)
	assert.Equal(t, []string{"News"}, result.Groups)
}

func TestLoad_SizeLimit(t *testing.T) {
	body := strings.Repeat("#EXTINF:-1,Filler\nhttp://filler\n", 100)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	t.Run("over limit", func(t *testing.T) {
		f := newTestFetcher(FetcherConfig{MaxBytes: int64(len(body)) - 1})

		_, err := f.Load(context.Background(), srv.URL)
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("exactly at limit", func(t *testing.T) {
		f := newTestFetcher(FetcherConfig{MaxBytes: int64(len(body))})

		result, err := f.Load(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Len(t, result.Channels, 100)
	})
}

func TestLoad_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	f := newTestFetcher(FetcherConfig{})

	_, err := f.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyLocation)

	_, err = f.Load(context.Background(), srv.URL)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusGone, statusErr.StatusCode)

	path := filepath.Join(t.TempDir(), "local.m3u")
	require.NoError(t, os.WriteFile(path, []byte(samplePlaylist), 0o644))

	result, err := f.Load(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Len(t, result.Channels, 1)
}
