// Package git implements the commit source on top of the command-line git
// executable. Shelling out to the host tool keeps diff, rename, and
// linearization semantics identical to what the user's git produces.
package git

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"frec/internal/errors"
	"frec/internal/frecency"
	"frec/internal/logging"
)

const (
	// DefaultCommandTimeout bounds short plumbing commands (rev-parse)
	DefaultCommandTimeout = 5000 * time.Millisecond

	// DefaultLogTimeout bounds the history stream; larger because a full
	// log walk over a big repository is legitimately slow
	DefaultLogTimeout = 60000 * time.Millisecond
)

// RenamePolicy controls how a rename is attributed
type RenamePolicy string

const (
	// RenameBoth disables git rename detection so a rename surfaces as
	// delete(old)+add(new) and both names receive the touch
	RenameBoth RenamePolicy = "both"
	// RenameNewOnly enables rename detection and attributes the touch to
	// the new path only
	RenameNewOnly RenamePolicy = "new-only"
)

// ParseRenamePolicy validates a rename policy string
func ParseRenamePolicy(s string) (RenamePolicy, error) {
	switch RenamePolicy(s) {
	case RenameBoth, RenameNewOnly:
		return RenamePolicy(s), nil
	default:
		return "", errors.NewFrecError(
			errors.InvalidConfig,
			"Rename policy must be 'both' or 'new-only'",
			nil,
			nil,
		).WithDetails(map[string]interface{}{"renames": s})
	}
}

// Options configure the adapter
type Options struct {
	RenamePolicy   RenamePolicy
	CommandTimeout time.Duration
	LogTimeout     time.Duration
}

// Adapter is the git-backed commit source
type Adapter struct {
	repoRoot       string
	renamePolicy   RenamePolicy
	commandTimeout time.Duration
	logTimeout     time.Duration
	logger         *logging.Logger
}

var _ frecency.CommitSource = (*Adapter)(nil)
var _ frecency.HeadProvider = (*Adapter)(nil)

// NewAdapter resolves location to its enclosing repository root and returns
// an adapter bound to it. An unreachable repository (git missing, not a
// repository, unreadable) fails with RepositoryUnavailable before any
// scoring happens.
func NewAdapter(location string, opts Options, logger *logging.Logger) (*Adapter, error) {
	if opts.RenamePolicy == "" {
		opts.RenamePolicy = RenameBoth
	}
	if opts.CommandTimeout <= 0 {
		opts.CommandTimeout = DefaultCommandTimeout
	}
	if opts.LogTimeout <= 0 {
		opts.LogTimeout = DefaultLogTimeout
	}

	if _, err := exec.LookPath("git"); err != nil {
		return nil, errors.NewFrecError(
			errors.RepositoryUnavailable,
			"Git executable not found in PATH",
			err,
			[]errors.FixAction{
				{
					Type:        errors.InstallTool,
					Tool:        "git",
					Description: "Install git and ensure it is on PATH",
				},
			},
		)
	}

	root, err := ResolveRoot(location, opts.CommandTimeout)
	if err != nil {
		return nil, err
	}

	adapter := &Adapter{
		repoRoot:       root,
		renamePolicy:   opts.RenamePolicy,
		commandTimeout: opts.CommandTimeout,
		logTimeout:     opts.LogTimeout,
		logger:         logger,
	}

	logger.Debug("Git adapter initialized", map[string]interface{}{
		"repoRoot": root,
		"renames":  string(opts.RenamePolicy),
	})

	return adapter, nil
}

// Root returns the resolved repository root
func (a *Adapter) Root() string {
	return a.repoRoot
}

// Head returns the current HEAD commit hash, or an error on an unborn branch
func (a *Adapter) Head(ctx context.Context) (string, error) {
	return a.executeGitCommand(ctx, "rev-parse", "HEAD")
}

// ResolveRoot resolves a location to its enclosing repository root via
// `git rev-parse --show-toplevel`. Failure means RepositoryUnavailable.
func ResolveRoot(location string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = location

	output, err := cmd.Output()
	if err != nil {
		frecErr := errors.NewFrecError(
			errors.RepositoryUnavailable,
			"Not a git repository",
			err,
			errors.GetSuggestedFixes(errors.RepositoryUnavailable),
		)
		if exitErr, ok := err.(*exec.ExitError); ok {
			frecErr.WithDetails(map[string]interface{}{
				"location": location,
				"stderr":   strings.TrimSpace(string(exitErr.Stderr)),
			})
		}
		return "", frecErr
	}

	return strings.TrimSpace(string(output)), nil
}

// executeGitCommand runs a git command in the repo root with timeout and
// returns the trimmed output
func (a *Adapter) executeGitCommand(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = a.repoRoot

	a.logger.Debug("Executing git command", map[string]interface{}{
		"args": args,
	})

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.NewFrecError(
				errors.Timeout,
				"Git command timed out",
				err,
				nil,
			).WithDetails(map[string]interface{}{"args": args})
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", errors.NewFrecError(
				errors.InternalError,
				"Git command failed",
				err,
				nil,
			).WithDetails(map[string]interface{}{
				"args":   args,
				"stderr": strings.TrimSpace(string(exitErr.Stderr)),
			})
		}
		return "", errors.NewFrecError(
			errors.InternalError,
			"Failed to execute git command",
			err,
			nil,
		)
	}

	return strings.TrimSpace(string(output)), nil
}
