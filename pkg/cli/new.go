package cli

import (
	"context"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/prestahub/psnew/pkg/cli/config"
	"github.com/prestahub/psnew/pkg/domain/model"
	"github.com/prestahub/psnew/pkg/infra/archive"
	"github.com/prestahub/psnew/pkg/infra/feed"
	"github.com/prestahub/psnew/pkg/infra/fetch"
	"github.com/prestahub/psnew/pkg/usecase"
)

func cmdNew() *cli.Command {
	var (
		sourceCfg config.Source
		release   string
		fixture   string
		workDir   string
	)

	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:        "release",
			Aliases:     []string{"r"},
			Usage:       "Explicit release version (e.g. 1.6.1.3); latest stable when omitted",
			Destination: &release,
			Sources:     cli.EnvVars("PSNEW_RELEASE"),
		},
		&cli.StringFlag{
			Name:        "fixture",
			Usage:       "Demo asset bundle to overlay (starwars, got, tech)",
			Destination: &fixture,
			Sources:     cli.EnvVars("PSNEW_FIXTURE"),
		},
		&cli.StringFlag{
			Name:        "workdir",
			Usage:       "Working directory for temp artifacts and relative targets",
			Value:       ".",
			Destination: &workDir,
			Sources:     cli.EnvVars("PSNEW_WORKDIR"),
		},
	}, sourceCfg.Flags()...)

	return &cli.Command{
		Name:      "new",
		Aliases:   []string{"n"},
		Usage:     "Create a new shop from a release archive",
		ArgsUsage: "<folder>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			folder := c.Args().First()
			if folder == "" {
				return goerr.New("missing required argument <folder>")
			}

			if err := sourceCfg.LoadFile(); err != nil {
				return err
			}

			httpClient := &http.Client{Timeout: sourceCfg.HTTPTimeout()}

			feedOpts := []feed.Option{feed.WithHTTPClient(httpClient)}
			if sourceCfg.FeedURL != "" {
				feedOpts = append(feedOpts, feed.WithFeedURL(sourceCfg.FeedURL))
			}

			info := color.New(color.FgCyan)
			ucOpts := []usecase.Option{
				usecase.WithProgress(func(msg string) {
					_, _ = info.Fprintln(os.Stdout, msg)
				}),
			}
			if sourceCfg.URLTemplate != "" {
				ucOpts = append(ucOpts, usecase.WithURLTemplate(sourceCfg.URLTemplate))
			}
			if sourceCfg.FixturesDir != "" {
				ucOpts = append(ucOpts, usecase.WithFixturesDir(sourceCfg.FixturesDir))
			}

			uc := usecase.NewScaffold(
				feed.New(feedOpts...),
				fetch.New(fetch.WithHTTPClient(httpClient)),
				archive.NewZip(),
				ucOpts...,
			)

			res, err := uc.Scaffold(ctx, &model.ScaffoldRequest{
				Folder:  folder,
				Release: release,
				Fixture: model.ParseFixture(fixture),
				WorkDir: workDir,
			})
			if err != nil {
				return err
			}

			_, _ = color.New(color.FgGreen).Fprintf(os.Stdout,
				"Your shop in %s is ready, you can now install it\n", res.TargetDir)
			return nil
		},
	}
}
