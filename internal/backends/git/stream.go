package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"frec/internal/errors"
	"frec/internal/frecency"
	"frec/internal/paths"
)

// Commits streams up to max commits newest-first, assigning ranks by
// position, and yields one CommitRecord per commit. max = 0 walks the full
// history. The log output is parsed incrementally from a stdout pipe, so
// cost stays proportional to the window rather than to total history.
//
// History is linearized with --first-parent; merge commits hold a rank but
// contribute no file touches (git emits no per-file lines for merges in
// this mode). Rename attribution follows the adapter's RenamePolicy.
func (a *Adapter) Commits(ctx context.Context, max int, yield func(frecency.CommitRecord) error) error {
	ctx, cancel := context.WithTimeout(ctx, a.logTimeout)
	defer cancel()

	args := []string{"-c", "core.quotepath=off", "log", "--first-parent", "--format=%H", "--name-status"}
	if a.renamePolicy == RenameNewOnly {
		args = append(args, "--find-renames")
	} else {
		args = append(args, "--no-renames")
	}
	if max > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", max))
	}
	args = append(args, "HEAD")

	a.logger.Debug("Streaming commit log", map[string]interface{}{
		"args":       args,
		"maxCommits": max,
	})

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = a.repoRoot

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.NewFrecError(errors.InternalError, "Failed to open git log pipe", err, nil)
	}
	if err := cmd.Start(); err != nil {
		return errors.NewFrecError(errors.InternalError, "Failed to start git log", err, nil)
	}

	abort := func(cause error) error {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return cause
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var current *frecency.CommitRecord
	var rank uint
	yielded := 0
	capped := false

	flush := func() error {
		if current == nil {
			return nil
		}
		record := *current
		current = nil
		return yield(record)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if isCommitHash(line) {
			if err := flush(); err != nil {
				return abort(err)
			}
			if max > 0 && yielded >= max {
				capped = true
				break
			}
			current = &frecency.CommitRecord{Rank: rank, Hash: line}
			rank++
			yielded++
			continue
		}
		if current != nil {
			current.Paths = append(current.Paths, parseNameStatus(line, a.renamePolicy)...)
		}
	}
	if err := scanner.Err(); err != nil {
		return abort(errors.NewFrecError(errors.InternalError, "Failed to read git log output", err, nil))
	}
	if err := flush(); err != nil {
		return abort(err)
	}

	if capped {
		// The window is full; stop pulling instead of draining the pipe.
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return errors.NewFrecError(errors.Timeout, "Git log timed out", err, nil)
		}
		msg := stderr.String()
		// A repository with zero commits is an empty stream, not a failure.
		if isEmptyHistory(msg) {
			a.logger.Debug("Repository has no commits", map[string]interface{}{
				"repoRoot": a.repoRoot,
			})
			return nil
		}
		return errors.NewFrecError(
			errors.RepositoryUnavailable,
			"Git log failed",
			err,
			errors.GetSuggestedFixes(errors.RepositoryUnavailable),
		).WithDetails(map[string]interface{}{
			"stderr": strings.TrimSpace(msg),
		})
	}

	a.logger.Debug("Commit stream complete", map[string]interface{}{
		"commits": yielded,
	})
	return nil
}

func isCommitHash(line string) bool {
	if len(line) != 40 {
		return false
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func isEmptyHistory(stderr string) bool {
	return strings.Contains(stderr, "does not have any commits") ||
		strings.Contains(stderr, "unknown revision")
}

// parseNameStatus turns one --name-status line into touched paths.
// Lines look like "M\tpath", "A\tpath", "D\tpath", or with rename
// detection enabled "R100\told\tnew" / "C100\tsrc\tdst".
func parseNameStatus(line string, policy RenamePolicy) []string {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 || fields[0] == "" {
		return nil
	}
	switch fields[0][0] {
	case 'R':
		if len(fields) < 3 {
			return nil
		}
		if policy == RenameNewOnly {
			return []string{paths.NormalizePath(fields[2])}
		}
		// Without rename detection git never emits R records, but attribute
		// both names if one slips through.
		return []string{paths.NormalizePath(fields[1]), paths.NormalizePath(fields[2])}
	case 'C':
		if len(fields) < 3 {
			return nil
		}
		return []string{paths.NormalizePath(fields[2])}
	default:
		return []string{paths.NormalizePath(fields[1])}
	}
}
