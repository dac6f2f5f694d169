package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpersUseCanonicalKeys(t *testing.T) {
	assert.Equal(t, KeyDay, Day(7).Key)
	assert.Equal(t, int64(7), Day(7).Value.Int64())
	assert.Equal(t, KeyPath, Path("README.md").Key)
	assert.Equal(t, KeyPolicy, Policy("omit").Key)
	assert.Equal(t, "README.md", Path("README.md").Value.String())
}

func TestErrorHandlesNil(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
