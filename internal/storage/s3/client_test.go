package s3

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBlobKey(t *testing.T) {
	key := BuildBlobKey("report.pdf")

	assert.True(t, strings.HasPrefix(key, blobKeyPrefix))
	assert.True(t, strings.HasSuffix(key, "-report.pdf"))
}

func TestBuildBlobKey_UniquePerCall(t *testing.T) {
	a := BuildBlobKey("report.pdf")
	b := BuildBlobKey("report.pdf")

	assert.NotEqual(t, a, b)
}
