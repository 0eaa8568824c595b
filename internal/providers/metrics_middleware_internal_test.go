package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHttpStatusBucket(t *testing.T) {
	assert.Equal(t, "2xx", httpStatusBucket(201))
	assert.Equal(t, "4xx", httpStatusBucket(404))
	assert.Equal(t, "5xx", httpStatusBucket(500))
}
