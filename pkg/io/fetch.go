package io

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/sigil/pkg/cache"
	"github.com/matzehuels/sigil/pkg/core/seal"
	"github.com/matzehuels/sigil/pkg/errors"
)

const fetchTimeout = 10 * time.Second

// maxDictionaryBytes bounds a remote dictionary download.
const maxDictionaryBytes = 32 << 20

// Fetcher downloads dictionaries over HTTP. Network failures and 5xx
// responses are retried with backoff; other statuses fail at once.
type Fetcher struct {
	http    *http.Client
	headers map[string]string
}

// NewFetcher creates a Fetcher. Headers are sent with every request; pass
// nil when none are needed.
func NewFetcher(headers map[string]string) *Fetcher {
	return &Fetcher{
		http:    &http.Client{Timeout: fetchTimeout},
		headers: headers,
	}
}

// FetchDictionary downloads and decodes the dictionary at url.
func (f *Fetcher) FetchDictionary(ctx context.Context, url string) (*seal.Dictionary, error) {
	var d *seal.Dictionary
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		d, err = f.fetch(ctx, url)
		return err
	})
	if re, ok := err.(*cache.RetryableError); ok {
		err = re.Err
	}
	return d, err
}

func (f *Fetcher) fetch(ctx context.Context, url string) (*seal.Dictionary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "dictionary url")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "dictionary %s not found", url)
	case resp.StatusCode >= 500:
		return nil, cache.Retryable(fmt.Errorf("%w: %s returned %d", cache.ErrNetwork, url, resp.StatusCode))
	default:
		return nil, fmt.Errorf("%w: %s returned %d", cache.ErrNetwork, url, resp.StatusCode)
	}

	d, err := ReadDictionary(http.MaxBytesReader(nil, resp.Body, maxDictionaryBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return d, nil
}

// IsRemote reports whether location names an http(s) URL rather than a
// file path.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// LoadDictionary reads a dictionary from a file path or an http(s) URL.
func LoadDictionary(ctx context.Context, location string) (*seal.Dictionary, error) {
	if IsRemote(location) {
		return NewFetcher(nil).FetchDictionary(ctx, location)
	}
	return ImportDictionary(location)
}
