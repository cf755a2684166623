package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify scaffold failures. Every failure is fatal and aborts
// the remaining pipeline steps; the tag tells the caller which stage broke.
var (
	// TagAlreadyExists marks a target path that is already occupied
	TagAlreadyExists = goerr.NewTag("already_exists")

	// TagVersionResolution marks an unreachable or malformed version feed,
	// or a feed without a qualifying stable branch
	TagVersionResolution = goerr.NewTag("version_resolution")

	// TagDownload marks a network or disk failure while fetching the archive
	TagDownload = goerr.NewTag("download")

	// TagExtraction marks a corrupt or unreadable archive
	TagExtraction = goerr.NewTag("extraction")

	// TagLayout marks an archive missing its expected top-level directory,
	// i.e. upstream format drift
	TagLayout = goerr.NewTag("layout")
)
