package interfaces

import "context"

// FeedClient resolves download links from the remote version feed
type FeedClient interface {
	// LatestStable returns the download link of the highest-numbered branch
	// in the stable channel
	LatestStable(ctx context.Context) (string, error)
}
