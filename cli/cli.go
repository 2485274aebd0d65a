package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/urizennnn/gh-email-finder/aggregate"
	"github.com/urizennnn/gh-email-finder/cache"
	"github.com/urizennnn/gh-email-finder/clierr"
	"github.com/urizennnn/gh-email-finder/config"
	"github.com/urizennnn/gh-email-finder/github"
	"github.com/urizennnn/gh-email-finder/ratelimit"
	"github.com/urizennnn/gh-email-finder/report"
)

// Version is stamped at build time via -ldflags.
var Version = "0.0.0-dev"

// NewRootCmd constructs the root command:
//
//	gh-email-finder USERNAME [--token|-t VALUE] [--contributions|-c] [--verbose|-v]
func NewRootCmd() *cobra.Command {
	var (
		token         string
		contributions bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:           "gh-email-finder USERNAME",
		Short:         "Find email addresses in a GitHub user's commit history",
		Long:          "gh-email-finder enumerates a GitHub user's repositories, scans their commit history and aggregates the email addresses found in commit metadata.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return clierr.Newf(2, "expected exactly one USERNAME argument, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), args[0], token, contributions, verbose)
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierr.Wrap(2, "invalid invocation", err)
	})

	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub personal access token (falls back to GITHUB_TOKEN)")
	cmd.Flags().BoolVarP(&contributions, "contributions", "c", false, "include repositories the user contributed to")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gh-email-finder %s\n", Version)
		},
	})

	return cmd
}

func run(ctx context.Context, out io.Writer, username, token string, contributions, verbose bool) error {
	cfg, err := config.NewLoader("APP").Load()
	if err != nil {
		return clierr.Wrap(1, "invalid configuration", err)
	}
	if token != "" {
		cfg.Token = token
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := newLogger(cfg.LogLevel, os.Stderr)
	if cfg.Token == "" {
		log.Warn("no GitHub token provided, unauthenticated rate limits apply")
	}

	store, err := cache.New(cfg.CacheSize)
	if err != nil {
		return clierr.Wrap(1, "cache init", err)
	}
	client := github.New(cfg, ratelimit.New(cfg.GithubRateLimit), store, log)

	return runScan(ctx, out, client, log, username, contributions)
}

// runScan drives the pipeline: enumerate, scan, aggregate, render.
// Nothing reaches stdout until the scan has fully completed.
func runScan(ctx context.Context, out io.Writer, client *github.Client, log logrus.FieldLogger, username string, contributions bool) error {
	log.WithField("user", username).Info("fetching repositories")
	repos, err := client.ListOwned(ctx, username)
	if err != nil {
		return clierr.Wrap(1, "listing repositories", err)
	}

	if contributions {
		log.WithField("user", username).Info("searching contributed repositories")
		contributed, err := client.ListContributed(ctx, username)
		if err != nil {
			return clierr.Wrap(1, "searching contributions", err)
		}
		repos = append(repos, contributed...)
	}

	if len(repos) == 0 {
		return clierr.Newf(1, "no repositories found for %s", username)
	}

	log.WithField("repositories", len(repos)).Info("scanning commit history")
	agg := aggregate.New()
	commits := 0
	for _, repo := range repos {
		records, err := client.ScanCommits(ctx, repo, username)
		if err != nil {
			return clierr.Wrap(1, "scanning "+repo.FullName, err)
		}
		log.WithFields(logrus.Fields{
			"repo":    repo.FullName,
			"commits": len(records),
		}).Debug("repository scanned")
		commits += len(records)
		for _, rec := range records {
			agg.Add(rec)
		}
	}

	if commits == 0 {
		return clierr.Newf(1, "no commits by %s found", username)
	}
	if agg.Len() == 0 {
		log.WithField("user", username).Warn("no email addresses found (all commit emails were empty or no-reply)")
		return nil
	}

	report.NewPresenter(out).Render(username, agg.Result())
	return nil
}

func newLogger(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log
}
