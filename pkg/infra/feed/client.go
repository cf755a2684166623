package feed

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/prestahub/psnew/pkg/domain/model"
	"github.com/prestahub/psnew/pkg/domain/types"
)

// DefaultFeedURL is the official channel feed of the distribution
const DefaultFeedURL = "https://api.prestashop.com/xml/channel.xml"

// HTTPClient is the minimal HTTP surface the client needs, replaceable in
// tests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches and resolves the remote XML version feed
type Client struct {
	feedURL    string
	httpClient HTTPClient
}

// Option configures a Client
type Option func(*Client)

// WithFeedURL points the client at a custom feed (mirror, test server)
func WithFeedURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.feedURL = u
		}
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// New creates a feed client against the official feed URL
func New(opts ...Option) *Client {
	c := &Client{
		feedURL:    DefaultFeedURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestStable fetches the channel feed and returns the download link of the
// highest-numbered branch among stable, available channels.
func (c *Client) LatestStable(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to build feed request",
			goerr.T(types.TagVersionResolution),
			goerr.V("url", c.feedURL))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch version feed",
			goerr.T(types.TagVersionResolution),
			goerr.V("url", c.feedURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected status from version feed",
			goerr.T(types.TagVersionResolution),
			goerr.V("url", c.feedURL),
			goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read version feed body",
			goerr.T(types.TagVersionResolution),
			goerr.V("url", c.feedURL))
	}

	var doc model.ChannelFeed
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", goerr.Wrap(err, "failed to parse version feed",
			goerr.T(types.TagVersionResolution),
			goerr.V("url", c.feedURL))
	}

	branch, err := latestStableBranch(&doc)
	if err != nil {
		return "", err
	}

	ctxlog.From(ctx).Debug("resolved latest stable release",
		"version", branch.Num,
		"link", branch.Download.Link,
	)

	return branch.Download.Link, nil
}

// latestStableBranch walks the feed per the resolution invariants: only
// stable, available channels qualify, and the numerically highest branch
// wins.
func latestStableBranch(doc *model.ChannelFeed) (*model.Branch, error) {
	var best *model.Branch
	for i := range doc.Channels {
		ch := &doc.Channels[i]
		if !ch.IsStable() {
			continue
		}
		for j := range ch.Branches {
			br := &ch.Branches[j]
			if best == nil || model.CompareVersions(br.Num, best.Num) > 0 {
				best = br
			}
		}
	}

	if best == nil {
		return nil, goerr.New("version feed has no stable channel with branches",
			goerr.T(types.TagVersionResolution))
	}
	if best.Download.Link == "" {
		return nil, goerr.New("stable branch has no download link",
			goerr.T(types.TagVersionResolution),
			goerr.V("version", best.Num))
	}

	return best, nil
}
