package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/prestahub/psnew/pkg/domain/types"
)

// defaultTimeout bounds a single archive download. The upstream tool waited
// forever; a bounded request is a deliberate hardening.
const defaultTimeout = 60 * time.Second

// HTTPClient is the minimal HTTP surface the client needs, replaceable in
// tests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client downloads release archives over HTTP
type Client struct {
	httpClient HTTPClient
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// New creates a downloader with a bounded default timeout
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch issues a single GET and writes the full response body to dest,
// overwriting any existing file. No retry, no resume.
func (c *Client) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build download request",
			goerr.T(types.TagDownload),
			goerr.V("url", url))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to download archive",
			goerr.T(types.TagDownload),
			goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return goerr.New("unexpected status while downloading archive",
			goerr.T(types.TagDownload),
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode))
	}

	f, err := os.Create(dest)
	if err != nil {
		return goerr.Wrap(err, "failed to create archive file",
			goerr.T(types.TagDownload),
			goerr.V("path", dest))
	}
	defer f.Close()

	written, err := io.Copy(f, resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to write archive file",
			goerr.T(types.TagDownload),
			goerr.V("url", url),
			goerr.V("path", dest))
	}

	ctxlog.From(ctx).Debug("downloaded archive",
		"url", url,
		"path", dest,
		"size_bytes", written,
	)

	return nil
}
