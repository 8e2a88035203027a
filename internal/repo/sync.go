package repo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"partsite/internal/logging"
)

// RemoteName is the remote every checkout tracks.
const RemoteName = "origin"

// Options configures a Sync.
type Options struct {
	Dir      string
	Origin   string
	Branch   string
	Progress io.Writer
	Logger   *slog.Logger
}

func (o Options) validate() error {
	if strings.TrimSpace(o.Dir) == "" {
		return errors.New("repository directory is required")
	}
	if strings.TrimSpace(o.Origin) == "" {
		return errors.New("repository origin is required")
	}
	if strings.TrimSpace(o.Branch) == "" {
		return errors.New("repository branch is required")
	}
	return nil
}

// Sync brings the checkout at opts.Dir up to date with opts.Origin and
// returns the commit hash checked out afterwards. Only fast-forward updates
// are applied.
func Sync(ctx context.Context, opts Options) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	logger := logging.NewComponentLogger(opts.Logger, "repo")
	branch := plumbing.NewBranchReferenceName(opts.Branch)

	if _, err := os.Stat(filepath.Join(opts.Dir, git.GitDirName)); errors.Is(err, os.ErrNotExist) {
		logger.Info("cloning parts repository",
			logging.String("origin", opts.Origin),
			logging.String("branch", opts.Branch),
			logging.String(logging.FieldPath, opts.Dir),
		)
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return "", fmt.Errorf("create repository directory: %w", err)
		}
		if _, err := git.PlainCloneContext(ctx, opts.Dir, false, &git.CloneOptions{
			URL:           opts.Origin,
			RemoteName:    RemoteName,
			ReferenceName: branch,
			Progress:      opts.Progress,
		}); err != nil {
			return "", fmt.Errorf("clone %s: %w", opts.Origin, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("inspect repository: %w", err)
	}

	repository, err := git.PlainOpen(opts.Dir)
	if err != nil {
		return "", fmt.Errorf("open repository: %w", err)
	}

	logger.Debug("fetching", logging.String("origin", opts.Origin))
	err = repository.FetchContext(ctx, &git.FetchOptions{
		RemoteName: RemoteName,
		Progress:   opts.Progress,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return "", fmt.Errorf("fetch %s: %w", RemoteName, err)
	}

	worktree, err := repository.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}
	if err := checkout(repository, worktree, opts.Branch); err != nil {
		return "", err
	}

	if err := fastForward(repository, worktree, opts.Branch); err != nil {
		return "", err
	}

	head, err := repository.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	hash := head.Hash().String()
	logger.Info("parts repository synced",
		logging.String("branch", opts.Branch),
		logging.String("commit", hash),
	)
	return hash, nil
}

// checkout switches the worktree to the local branch, creating it from the
// remote-tracking ref when it does not exist yet.
func checkout(repository *git.Repository, worktree *git.Worktree, name string) error {
	local := plumbing.NewBranchReferenceName(name)
	if head, err := repository.Head(); err == nil && head.Name() == local {
		return nil
	}

	if _, err := repository.Reference(local, true); err == nil {
		if err := worktree.Checkout(&git.CheckoutOptions{Branch: local}); err != nil {
			return fmt.Errorf("checkout %s: %w", name, err)
		}
		return nil
	} else if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("resolve %s: %w", local, err)
	}

	remote, err := repository.Reference(plumbing.NewRemoteReferenceName(RemoteName, name), true)
	if err != nil {
		return fmt.Errorf("branch %s not found on %s: %w", name, RemoteName, err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:   remote.Hash(),
		Branch: local,
		Create: true,
	}); err != nil {
		return fmt.Errorf("checkout %s: %w", name, err)
	}
	return nil
}

// fastForward moves the checked-out branch to its remote-tracking ref. A
// local branch that has diverged from origin is left alone.
func fastForward(repository *git.Repository, worktree *git.Worktree, name string) error {
	remote, err := repository.Reference(plumbing.NewRemoteReferenceName(RemoteName, name), true)
	if err != nil {
		return fmt.Errorf("resolve %s/%s: %w", RemoteName, name, err)
	}
	head, err := repository.Head()
	if err != nil {
		return fmt.Errorf("resolve HEAD: %w", err)
	}
	if head.Hash() == remote.Hash() {
		return nil
	}

	current, err := repository.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("load commit %s: %w", head.Hash(), err)
	}
	target, err := repository.CommitObject(remote.Hash())
	if err != nil {
		return fmt.Errorf("load commit %s: %w", remote.Hash(), err)
	}
	ok, err := current.IsAncestor(target)
	if err != nil {
		return fmt.Errorf("compare %s with %s/%s: %w", name, RemoteName, name, err)
	}
	if !ok {
		return fmt.Errorf("pull %s: %w", name, git.ErrNonFastForwardUpdate)
	}
	if err := worktree.Reset(&git.ResetOptions{Commit: remote.Hash(), Mode: git.HardReset}); err != nil {
		return fmt.Errorf("fast-forward %s: %w", name, err)
	}
	return nil
}
