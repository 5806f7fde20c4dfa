package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPool_GetPut(t *testing.T) {
	t.Parallel()

	buf := GetBuffer()
	assert.NotNil(t, buf)
	assert.Empty(t, *buf)

	*buf = append(*buf, "data"...)
	PutBuffer(buf)

	buf2 := GetBuffer()
	assert.Empty(t, *buf2)
}

func TestBufferPool_PutNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		PutBuffer(nil)
	})
}
