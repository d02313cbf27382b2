package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rash-sh/relprep/internal/config"
	"github.com/rash-sh/relprep/internal/errors"
	"github.com/rash-sh/relprep/internal/execx"
	"github.com/rash-sh/relprep/internal/gitops"
	"github.com/rash-sh/relprep/internal/logging"
	"github.com/rash-sh/relprep/internal/manifest"
	"github.com/rash-sh/relprep/internal/ui"
)

// Step names, in pipeline order.
const (
	StepEditVersion      = "edit version"
	StepPropagateVersion = "propagate version"
	StepRefreshLock      = "refresh lock"
	StepChangelog        = "regenerate changelog"
	StepCommit           = "commit release"
)

// PostCommitNotice is printed after a successful release commit. Tagging and
// publishing are not this tool's job; they fire downstream once the commit is
// merged.
const PostCommitNotice = "Tag and release will be created automatically after this commit is merged."

// Options bundles the collaborators the release steps need.
type Options struct {
	// Config supplies the manifest path and the external command lines.
	Config *config.Config
	// RepoDir is the repository root every command runs in.
	RepoDir string
	// Executor runs the external collaborators.
	Executor execx.CommandExecutor
	// Git performs the staging and commit operations.
	Git *gitops.Client
	// Log receives structured step logs.
	Log *logging.Logger
	// Printer receives operator-facing output.
	Printer *ui.Printer
	// ReleaseVersion, when non-empty, replaces the interactive editor step
	// with a direct rewrite of the manifest's version line.
	ReleaseVersion string
	// DryRun logs each step's command without executing anything.
	DryRun bool
}

// reportDryRun sends a would-be action to both the run log and the operator.
// Dry-run output is the whole point of the mode, so it never depends on the
// log sink being enabled.
func (opts Options) reportDryRun(msg string) {
	opts.Log.Info("dry-run", "action", msg)
	if opts.Printer != nil {
		opts.Printer.Plain(msg)
	}
}

// manifestPath resolves the configured manifest path against the repository
// root. External commands already run with the repo as their working
// directory; file reads happen from the caller's, hence the join.
func manifestPath(opts Options) string {
	if filepath.IsAbs(opts.Config.Manifest.Path) {
		return opts.Config.Manifest.Path
	}
	return filepath.Join(opts.RepoDir, opts.Config.Manifest.Path)
}

// CommitMessage builds the release commit message for a version string.
// The shape is fixed: one space after the colon, the literal word "Version",
// then the extracted value verbatim.
func CommitMessage(version string) string {
	return fmt.Sprintf("release: Version %s", version)
}

// ReleaseSteps assembles the five release-preparation steps in order.
func ReleaseSteps(opts Options) []Step {
	if opts.Log == nil {
		opts.Log = logging.NopLogger()
	}
	return []Step{
		editVersionStep(opts),
		commandStep(opts, StepPropagateVersion, opts.Config.Steps.Propagate.Command, opts.Config.Steps.Propagate.Args),
		commandStep(opts, StepRefreshLock, opts.Config.Steps.Lock.Command, opts.Config.Steps.Lock.LockArgs()),
		commandStep(opts, StepChangelog, opts.Config.Steps.Changelog.Command, opts.Config.Steps.Changelog.Args),
		commitStep(opts),
	}
}

// editVersionStep opens the configured editor on the manifest, or rewrites
// the version line directly when a release version was supplied. The editor
// runs attached to the operator's terminal and may block indefinitely; that
// is the point of the step.
func editVersionStep(opts Options) Step {
	m := manifest.New(manifestPath(opts))

	return Step{
		Name: StepEditVersion,
		Run: func(ctx context.Context) error {
			if opts.ReleaseVersion != "" {
				if opts.DryRun {
					opts.reportDryRun(fmt.Sprintf("would set version %s in %s", opts.ReleaseVersion, m.Path))
					return nil
				}
				return m.SetVersion(opts.ReleaseVersion)
			}

			editor := strings.Fields(opts.Config.ResolveEditor())
			name, args := editor[0], append(editor[1:], m.Path)

			if opts.DryRun {
				opts.reportDryRun(fmt.Sprintf("would open editor: %s %s", name, strings.Join(args, " ")))
				return nil
			}

			if err := opts.Executor.RunInteractive(ctx, opts.RepoDir, name, args...); err != nil {
				return errors.NewStepError(StepEditVersion, err).WithTool(name)
			}
			return nil
		},
	}
}

// commandStep wraps one of the opaque external collaborators. Success is
// exit status zero, nothing more; the tool's combined output becomes the
// diagnostic on failure.
func commandStep(opts Options, name, command string, args []string) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context) error {
			if opts.DryRun {
				opts.reportDryRun(fmt.Sprintf("would run: %s %s", command, strings.Join(args, " ")))
				return nil
			}

			output, err := opts.Executor.Run(ctx, opts.RepoDir, command, args...)
			if err != nil {
				return errors.NewStepError(name, err).
					WithTool(command).
					WithOutput(string(output))
			}
			return nil
		},
	}
}

// commitStep stages the whole working tree, extracts the version from the
// manifest and creates the release commit. Extraction happens after staging,
// so a malformed manifest leaves the tree staged for the operator to inspect.
func commitStep(opts Options) Step {
	m := manifest.New(manifestPath(opts))

	return Step{
		Name: StepCommit,
		Run: func(ctx context.Context) error {
			if opts.DryRun {
				version, err := m.ExtractVersion()
				if err != nil {
					return err
				}
				opts.reportDryRun(fmt.Sprintf("would stage all changes and commit: %q", CommitMessage(version)))
				return nil
			}

			if err := opts.Git.StageAll(ctx); err != nil {
				return err
			}

			version, err := m.ExtractVersion()
			if err != nil {
				return err
			}
			warnVersionMismatch(opts.Log, m, version)

			if err := opts.Git.Commit(ctx, CommitMessage(version)); err != nil {
				return err
			}

			opts.Log.WithVersion(version).Info("release commit created")
			if opts.Printer != nil {
				opts.Printer.Success(fmt.Sprintf("Committed %q", CommitMessage(version)))
				opts.Printer.Notice(PostCommitNotice)
			}
			return nil
		},
	}
}

// warnVersionMismatch compares the textual first-match extraction against the
// structured package.version field. The first match stays authoritative; a
// disagreement usually means a nested table declares a version key above the
// package's own.
func warnVersionMismatch(log *logging.Logger, m *manifest.Manifest, extracted string) {
	meta, err := m.Load()
	if err != nil {
		return
	}
	if meta.Package.Version != "" && meta.Package.Version != extracted {
		log.Warn("first matching version line differs from package.version",
			"extracted", extracted,
			"package_version", meta.Package.Version)
	}
}
