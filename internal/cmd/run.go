package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rash-sh/relprep/internal/config"
	"github.com/rash-sh/relprep/internal/errors"
	"github.com/rash-sh/relprep/internal/execx"
	"github.com/rash-sh/relprep/internal/gitops"
	"github.com/rash-sh/relprep/internal/logging"
	"github.com/rash-sh/relprep/internal/manifest"
	"github.com/rash-sh/relprep/internal/pipeline"
	"github.com/rash-sh/relprep/internal/ui"
)

var (
	releaseVersion string
	dryRun         bool
)

// runRelease wires the collaborators together and runs the pipeline against
// the current working directory. Errors are returned unprinted; main owns
// the single user-facing error line.
func runRelease(cmd *cobra.Command, _ []string) error {
	printer := ui.NewPrinter(cmd.OutOrStdout())

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// A malformed supplied version must fail before any side effect.
	if releaseVersion != "" {
		if err := manifest.ValidateVersion(releaseVersion); err != nil {
			return err
		}
	}

	repoDir, err := os.Getwd()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	ctx := cmd.Context()
	git := gitops.NewClient(repoDir)
	if !dryRun {
		if !execx.LookPath("git") {
			return errors.NewGitError("git executable not found in PATH", nil)
		}
		if !git.IsRepository(ctx) {
			return errors.NewGitError("release pipeline must run inside a repository", errors.ErrNotGitRepository).
				WithRepository(repoDir)
		}
	}

	steps := pipeline.ReleaseSteps(pipeline.Options{
		Config:         cfg,
		RepoDir:        repoDir,
		Executor:       execx.NewCLICommandExecutor(),
		Git:            git,
		Log:            log,
		Printer:        printer,
		ReleaseVersion: releaseVersion,
		DryRun:         dryRun,
	})

	return pipeline.New(log, printer, steps).Run(ctx)
}

// newLogger builds the run logger from config. With logging disabled the
// pipeline stays quiet apart from the printer; the JSON log is opt-in.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	return logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
}
