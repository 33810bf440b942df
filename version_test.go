package pbasic

import (
	"testing"

	"github.com/zeebo/assert"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, VersionString(), Version)
}
