package journal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	ferrors "git.home.luguber.info/inful/journalsite/internal/foundation/errors"
)

const sampleReadme = `# GPU Kernels

Intro paragraph that belongs to no day.

## Day 1: Vector Addition

Implemented a simple vector addition kernel.

### Notes

Block size 256 worked best.

## Day 2

Matrix multiplication, naive version.

` + "```cuda\n## Day 99: not a heading\n```\n" + `
## Day X: Broken

Should be skipped.

## Day 101: Too late

Out of range.

## Day 1: Again

Duplicate.

## Resources

Links that do not belong to day 2.

# Day 07 - Leading zero

Seven.
`

func TestParseReadme(t *testing.T) {
	res, err := ParseReadme([]byte(sampleReadme), ParseOptions{})
	require.NoError(t, err)

	require.Len(t, res.Entries, 3)

	assert.Equal(t, 1, res.Entries[0].Day)
	assert.Equal(t, "Vector Addition", res.Entries[0].Title)
	assert.Equal(t, "Implemented a simple vector addition kernel.\n\n### Notes\n\nBlock size 256 worked best.", res.Entries[0].Description)

	assert.Equal(t, 2, res.Entries[1].Day)
	assert.Equal(t, "Day 2", res.Entries[1].Title)
	assert.Contains(t, res.Entries[1].Description, "Matrix multiplication, naive version.")
	assert.Contains(t, res.Entries[1].Description, "## Day 99: not a heading", "fenced code is part of the description")

	assert.Equal(t, 7, res.Entries[2].Day)
	assert.Equal(t, "Leading zero", res.Entries[2].Title)
	assert.Equal(t, "Seven.", res.Entries[2].Description)

	kinds := map[IssueKind]int{}
	for _, issue := range res.Issues {
		kinds[issue.Kind]++
	}
	assert.Equal(t, 2, kinds[IssueInvalidDay])
	assert.Equal(t, 1, kinds[IssueDuplicateDay])
}

func TestParseReadmeDescriptionStopsAtSameLevelHeading(t *testing.T) {
	src := "## Day 3: Reduction\n\nTree reduction.\n\n## Resources\n\n- link\n"
	res, err := ParseReadme([]byte(src), ParseOptions{})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Tree reduction.", res.Entries[0].Description)
}

func TestParseReadmeNestedDayHeadingTerminates(t *testing.T) {
	src := "# Day 1: Outer\n\nfirst\n\n## Day 2: Inner\n\nsecond\n"
	res, err := ParseReadme([]byte(src), ParseOptions{})
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "first", res.Entries[0].Description)
	assert.Equal(t, "second", res.Entries[1].Description)
}

func TestParseReadmeHeadingLevel(t *testing.T) {
	src := "### Day 4: Deep\n\nbody\n"

	res, err := ParseReadme([]byte(src), ParseOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.Entries)

	res, err = ParseReadme([]byte(src), ParseOptions{MaxHeadingLevel: 3})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Deep", res.Entries[0].Title)
}

func TestParseReadmeSetextHeading(t *testing.T) {
	src := "Day 5: Shared Memory\n--------------------\n\nTiling.\n"
	res, err := ParseReadme([]byte(src), ParseOptions{})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Shared Memory", res.Entries[0].Title)
	assert.Equal(t, "Tiling.", res.Entries[0].Description)
}

func TestParseReadmeCustomMaxDay(t *testing.T) {
	res, err := ParseReadme([]byte("## Day 150: Bonus\n\nExtra.\n"), ParseOptions{MaxDay: 200})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, 150, res.Entries[0].Day)
}

func TestParseReadmeIgnoresNonDayHeadings(t *testing.T) {
	res, err := ParseReadme([]byte("# Daylight\n\n## Days 1-5 recap\n\n## Day: intro\n"), ParseOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	assert.Empty(t, res.Issues)
}

func TestParseReadmeByteOrderMark(t *testing.T) {
	res, err := ParseReadme([]byte("\ufeff## Day 1: Vector Addition\nDesc\n"), ParseOptions{})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, Entry{Day: 1, Title: "Vector Addition", Description: "Desc"}, res.Entries[0])
	assert.Empty(t, res.Issues)
}

func TestParseReadmeUTF16AndCRLF(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	src, err := enc.Bytes([]byte("## Day 3: Reduction\r\n\r\nShared memory.\r\nSecond line.\r\n"))
	require.NoError(t, err)

	res, err := ParseReadme(src, ParseOptions{})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Reduction", res.Entries[0].Title)
	assert.Equal(t, "Shared memory.\nSecond line.", res.Entries[0].Description)
}

func TestParseReadmeInvalidOptions(t *testing.T) {
	_, err := ParseReadme([]byte("## Day 1\n"), ParseOptions{MaxHeadingLevel: 9})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestReadReadme(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadReadme(filepath.Join(dir, "README.md"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReadmeNotFound))
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	assert.True(t, ferrors.HasSeverity(err, ferrors.SeverityFatal))

	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("## Day 1\n"), 0o600))
	data, err := ReadReadme(path)
	require.NoError(t, err)
	assert.Equal(t, "## Day 1\n", string(data))
}
