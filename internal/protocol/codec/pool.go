package codec

import "sync"

// scratchPool holds buffers for encoding nested messages
var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 64)
		return &b
	},
}

// GetBuffer retrieves an empty scratch buffer from the pool
func GetBuffer() *[]byte {
	return scratchPool.Get().(*[]byte)
}

// PutBuffer returns a scratch buffer to the pool
// The length is reset but capacity is preserved
func PutBuffer(buf *[]byte) {
	if buf == nil {
		return
	}
	*buf = (*buf)[:0]
	scratchPool.Put(buf)
}
