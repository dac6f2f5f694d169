// Package gitinfo reads the commit a journal checkout is at, for the page footer.
package gitinfo

import (
	stderrors "errors"
	"strings"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/journalsite/internal/foundation/errors"
	"git.home.luguber.info/inful/journalsite/internal/journal"
)

// ErrNotRepository indicates that no git repository contains the path.
var ErrNotRepository = stderrors.New("not a git repository")

const shortHashLen = 7

// Head returns the HEAD commit of the repository containing path. Parent
// directories are searched for the .git directory.
func Head(path string) (*journal.Commit, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.GitError("no git repository found").WithCause(ErrNotRepository).
				WithContext("path", path).
				Build()
		}
		return nil, errors.GitError("failed to open repository").WithCause(err).
			WithContext("path", path).
			Build()
	}

	ref, err := repo.Head()
	if err != nil {
		return nil, errors.GitError("failed to resolve HEAD").WithCause(err).
			WithContext("path", path).
			Build()
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, errors.GitError("failed to read HEAD commit").WithCause(err).
			WithContext("path", path).
			WithContext("hash", ref.Hash().String()).
			Build()
	}

	hash := commit.Hash.String()
	subject, _, _ := strings.Cut(strings.TrimSpace(commit.Message), "\n")
	return &journal.Commit{
		Hash:    hash,
		Short:   hash[:shortHashLen],
		Subject: strings.TrimSpace(subject),
		Date:    commit.Committer.When.UTC().Format("2006-01-02"),
	}, nil
}
