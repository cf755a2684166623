package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/prestahub/psnew/pkg/domain/types"
	"github.com/prestahub/psnew/pkg/infra/feed"
)

func serveFeed(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestStable_PicksHighestNumericVersion(t *testing.T) {
	// 1.6.1.10 must beat 1.6.1.9 even though it is lexically smaller
	srv := serveFeed(t, http.StatusOK, `
<channels>
  <channel name="stable" available="1">
    <branch name="1.6">
      <num>1.6.1.9</num>
      <download><link>https://releases.example.com/shop_1.6.1.9.zip</link></download>
    </branch>
    <branch name="1.6">
      <num>1.6.1.10</num>
      <download><link>https://releases.example.com/shop_1.6.1.10.zip</link></download>
    </branch>
  </channel>
</channels>`)

	c := feed.New(feed.WithFeedURL(srv.URL))
	link, err := c.LatestStable(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, link, "https://releases.example.com/shop_1.6.1.10.zip")
}

func TestLatestStable_IgnoresNonStableChannels(t *testing.T) {
	srv := serveFeed(t, http.StatusOK, `
<channels>
  <channel name="beta" available="1">
    <branch name="2.0">
      <num>2.0.0.0</num>
      <download><link>https://releases.example.com/shop_2.0.0.0.zip</link></download>
    </branch>
  </channel>
  <channel name="stable" available="0">
    <branch name="1.7">
      <num>1.7.0.0</num>
      <download><link>https://releases.example.com/shop_1.7.0.0.zip</link></download>
    </branch>
  </channel>
  <channel name="stable" available="1">
    <branch name="1.6">
      <num>1.6.1.3</num>
      <download><link>https://releases.example.com/shop_1.6.1.3.zip</link></download>
    </branch>
  </channel>
</channels>`)

	c := feed.New(feed.WithFeedURL(srv.URL))
	link, err := c.LatestStable(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, link, "https://releases.example.com/shop_1.6.1.3.zip")
}

func TestLatestStable_NoStableChannel(t *testing.T) {
	srv := serveFeed(t, http.StatusOK, `
<channels>
  <channel name="beta" available="1">
    <branch name="2.0">
      <num>2.0.0.0</num>
      <download><link>https://releases.example.com/shop_2.0.0.0.zip</link></download>
    </branch>
  </channel>
</channels>`)

	c := feed.New(feed.WithFeedURL(srv.URL))
	_, err := c.LatestStable(context.Background())
	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, types.TagVersionResolution), true)
}

func TestLatestStable_EmptyDownloadLink(t *testing.T) {
	srv := serveFeed(t, http.StatusOK, `
<channels>
  <channel name="stable" available="1">
    <branch name="1.6">
      <num>1.6.1.3</num>
      <download><link></link></download>
    </branch>
  </channel>
</channels>`)

	c := feed.New(feed.WithFeedURL(srv.URL))
	_, err := c.LatestStable(context.Background())
	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, types.TagVersionResolution), true)
}

func TestLatestStable_MalformedFeed(t *testing.T) {
	srv := serveFeed(t, http.StatusOK, `not xml at all`)

	c := feed.New(feed.WithFeedURL(srv.URL))
	_, err := c.LatestStable(context.Background())
	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, types.TagVersionResolution), true)
}

func TestLatestStable_HTTPError(t *testing.T) {
	srv := serveFeed(t, http.StatusInternalServerError, "")

	c := feed.New(feed.WithFeedURL(srv.URL))
	_, err := c.LatestStable(context.Background())
	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, types.TagVersionResolution), true)
}
