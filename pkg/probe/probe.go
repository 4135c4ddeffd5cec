// Package probe resolves image dimensions for gallery items.
//
// Layout packing only needs an aspect ratio per item, but item lists often
// arrive with just a file path or URL. The prober reads enough of each image
// to decode its header (width and height) without decoding pixel data:
//
//   - Local files are read directly with image.DecodeConfig.
//   - Remote URLs are fetched over HTTP with retry and backoff.
//
// Results are cached so repeated layout runs over the same sources do not
// touch the filesystem or network again.
package probe

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nakamurapomeo/collage-app/pkg/album"
	"github.com/nakamurapomeo/collage-app/pkg/httputil"
	"github.com/nakamurapomeo/collage-app/pkg/observability"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the image file or URL doesn't exist.
	ErrNotFound = errors.New("image not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUndecodable is returned when the data is not a recognized image format.
	ErrUndecodable = errors.New("cannot decode image")
)

// Dimensions holds the pixel size of a probed image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Prober resolves image dimensions from local paths and remote URLs.
// A nil cache disables caching; probes always hit the source.
type Prober struct {
	http  *http.Client
	cache *httputil.Cache
}

// New creates a Prober backed by the given cache.
// Pass nil to probe without caching.
func New(cache *httputil.Cache) *Prober {
	return &Prober{
		http:  &http.Client{Timeout: httpTimeout},
		cache: cache,
	}
}

// Probe returns the dimensions of the image at source, which may be a local
// file path or an http(s) URL. Cached results are returned without touching
// the source.
func (p *Prober) Probe(ctx context.Context, source string) (Dimensions, error) {
	if p.cache != nil {
		var d Dimensions
		if ok, _ := p.cache.Get("probe:"+source, &d); ok {
			observability.Cache().OnCacheHit(ctx, "probe")
			return d, nil
		}
		observability.Cache().OnCacheMiss(ctx, "probe")
	}

	var (
		d   Dimensions
		err error
	)
	if isRemote(source) {
		d, err = p.probeRemote(ctx, source)
	} else {
		d, err = probeLocal(source)
	}
	if err != nil {
		return Dimensions{}, err
	}

	if p.cache != nil {
		_ = p.cache.Set("probe:"+source, d)
	}
	return d, nil
}

// ResolveItems fills in missing dimensions on items that carry a source.
// Items that already have a usable aspect ratio or dimensions are left
// untouched, as are items without a source. Returns the number of items
// resolved. Probe failures skip the item rather than aborting the batch;
// the first error is returned alongside the count.
func (p *Prober) ResolveItems(ctx context.Context, items []album.Item) (int, error) {
	resolved := 0
	var firstErr error

	for i := range items {
		it := &items[i]
		if it.Source == "" || it.AspectRatio > 0 || (it.Width > 0 && it.Height > 0) {
			continue
		}
		d, err := p.Probe(ctx, it.Source)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("probe %s: %w", it.Source, err)
			}
			continue
		}
		it.Width = float64(d.Width)
		it.Height = float64(d.Height)
		resolved++
	}
	return resolved, firstErr
}

func probeLocal(path string) (Dimensions, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Dimensions{}, ErrNotFound
	}
	if err != nil {
		return Dimensions{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

func (p *Prober) probeRemote(ctx context.Context, rawURL string) (Dimensions, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Dimensions{}, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	var d Dimensions
	err = httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}

		observability.HTTP().OnRequest(ctx, req.Method, u.Host, u.Path)
		start := time.Now()

		resp, err := p.http.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, req.Method, u.Host, u.Path, err)
			return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		defer resp.Body.Close()
		observability.HTTP().OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

		if err := checkStatus(resp.StatusCode); err != nil {
			return err
		}

		cfg, _, err := image.DecodeConfig(resp.Body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUndecodable, err)
		}
		d = Dimensions{Width: cfg.Width, Height: cfg.Height}
		return nil
	})
	if err != nil {
		return Dimensions{}, err
	}
	return d, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500 || code == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
