// Copyright 2021 Braden Nicholson. All rights reserved.

package enclave

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitSource identifies a program fetched from a repository instead of being
// posted inline. File is the path of the source inside the repository.
type GitSource struct {
	URL    string
	Commit string
	File   string
}

// CloneSource clones the repository into the enclave's repo/ subdirectory,
// checks out the requested commit when one is given, and returns the
// contents of the named file. By default the latest commit of the default
// branch is used.
func (e *Enclave) CloneSource(ctx context.Context, src GitSource) ([]byte, error) {
	dir := e.Join("repo")
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL: src.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", src.URL, err)
	}

	if src.Commit != "" {
		workTree, err := repo.Worktree()
		if err != nil {
			return nil, err
		}
		err = workTree.Checkout(&git.CheckoutOptions{
			Hash: plumbing.NewHash(src.Commit),
		})
		if err != nil {
			return nil, fmt.Errorf("checkout %s: %w", src.Commit, err)
		}
	}

	return e.ReadFile(filepath.Join("repo", src.File))
}
