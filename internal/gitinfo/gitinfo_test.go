package gitinfo

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/journalsite/internal/foundation/errors"
)

func TestHead(t *testing.T) {
	repoPath := t.TempDir()
	repo, err := git.PlainInit(repoPath, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(repoPath, "day 1"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("## Day 1: Start\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "day 1", "add.cu"), []byte("kernel"), 0o600))

	w, err := repo.Worktree()
	require.NoError(t, err)
	_, err = w.Add(".")
	require.NoError(t, err)

	when := time.Date(2024, 5, 1, 23, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	hash, err := w.Commit("Day 1: vector addition\n\nLonger body.", &git.CommitOptions{
		Author:    &object.Signature{Name: "Test User", Email: "test@example.com", When: when},
		Committer: &object.Signature{Name: "Test User", Email: "test@example.com", When: when},
	})
	require.NoError(t, err)

	commit, err := Head(filepath.Join(repoPath, "day 1"))
	require.NoError(t, err)

	assert.Equal(t, hash.String(), commit.Hash)
	assert.Equal(t, hash.String()[:7], commit.Short)
	assert.Equal(t, "Day 1: vector addition", commit.Subject)
	assert.Equal(t, "2024-05-01", commit.Date)
}

func TestHeadNotARepository(t *testing.T) {
	_, err := Head(t.TempDir())
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrNotRepository))
	assert.True(t, errors.HasCategory(err, errors.CategoryGit))
	assert.True(t, errors.HasSeverity(err, errors.SeverityWarning))
}

func TestHeadWithoutCommits(t *testing.T) {
	repoPath := t.TempDir()
	_, err := git.PlainInit(repoPath, false)
	require.NoError(t, err)

	_, err = Head(repoPath)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryGit))
}
