package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// defaultHTTPTimeout bounds feed and download requests
const defaultHTTPTimeout = 60 * time.Second

// Source holds where releases come from: the channel feed, the download URL
// template for explicit versions, the packaged fixtures directory and the
// HTTP timeout. Empty values mean built-in defaults.
type Source struct {
	FeedURL     string
	URLTemplate string
	FixturesDir string
	Timeout     time.Duration
	ConfigPath  string
}

// Flags returns CLI flags for source configuration
func (c *Source) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "feed-url",
			Usage:       "Version feed URL (default: official channel feed)",
			Destination: &c.FeedURL,
			Sources:     cli.EnvVars("PSNEW_FEED_URL"),
		},
		&cli.StringFlag{
			Name:        "url-template",
			Usage:       "Download URL template for explicit releases, %s replaced by the version",
			Destination: &c.URLTemplate,
			Sources:     cli.EnvVars("PSNEW_URL_TEMPLATE"),
		},
		&cli.StringFlag{
			Name:        "fixtures-dir",
			Usage:       "Directory holding packaged fixture bundles",
			Destination: &c.FixturesDir,
			Sources:     cli.EnvVars("PSNEW_FIXTURES_DIR"),
		},
		&cli.DurationFlag{
			Name:        "http-timeout",
			Usage:       "Timeout for feed and download requests",
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("PSNEW_HTTP_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "TOML file with source overrides",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("PSNEW_CONFIG"),
		},
	}
}

// HTTPTimeout returns the configured timeout or the built-in default
func (c *Source) HTTPTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultHTTPTimeout
}

// fileSource is the TOML shape of the --config file
type fileSource struct {
	FeedURL     string `toml:"feed_url"`
	URLTemplate string `toml:"url_template"`
	FixturesDir string `toml:"fixtures_dir"`
	Timeout     string `toml:"timeout"`
}

// LoadFile merges values from the TOML file at ConfigPath, if any. Values
// already set by flag or environment take precedence over the file.
func (c *Source) LoadFile() error {
	if c.ConfigPath == "" {
		return nil
	}

	raw, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file",
			goerr.V("path", c.ConfigPath))
	}

	var f fileSource
	if err := toml.Unmarshal(raw, &f); err != nil {
		return goerr.Wrap(err, "failed to parse config file",
			goerr.V("path", c.ConfigPath))
	}

	if c.FeedURL == "" {
		c.FeedURL = f.FeedURL
	}
	if c.URLTemplate == "" {
		c.URLTemplate = f.URLTemplate
	}
	if c.FixturesDir == "" {
		c.FixturesDir = f.FixturesDir
	}
	if c.Timeout == 0 && f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return goerr.Wrap(err, "invalid timeout in config file",
				goerr.V("timeout", f.Timeout),
				goerr.V("path", c.ConfigPath))
		}
		c.Timeout = d
	}

	return nil
}
