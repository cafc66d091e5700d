package raster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Fetcher dereferences an external image reference into its raw bytes. It
// is the only part of the loader that touches a filesystem or network.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// FileFetcher resolves plain paths and file:// URIs against the local
// filesystem.
type FileFetcher struct{}

func (FileFetcher) Fetch(_ context.Context, ref string) ([]byte, error) {
	path := ref
	if u, err := url.Parse(ref); err == nil && u.Scheme == "file" {
		path = u.Path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Ref: ref, Err: err}
		}
		return nil, err
	}
	return data, nil
}

// HTTPFetcher resolves http and https references. A nil Client uses
// http.DefaultClient.
type HTTPFetcher struct {
	Client *http.Client
}

func (f HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil, &NotFoundError{Ref: ref, Err: fmt.Errorf("http status %s", resp.Status)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: http status %s", ref, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// DefaultFetcher routes http(s) references to an HTTPFetcher and everything
// else to a FileFetcher.
type DefaultFetcher struct {
	HTTP HTTPFetcher
	File FileFetcher
}

func (f DefaultFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return f.HTTP.Fetch(ctx, ref)
	}
	return f.File.Fetch(ctx, ref)
}
