package generator

import (
	"bytes"
	"sync"
)

// Tiered buffer sizes keyed on artifact count.
const (
	smallBufferSize  = 8 * 1024
	mediumBufferSize = 32 * 1024
	largeBufferSize  = 64 * 1024
)

var smallBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, smallBufferSize))
	},
}

var mediumBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, mediumBufferSize))
	},
}

var largeBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, largeBufferSize))
	},
}

// getBuffer returns a reset buffer sized for the artifact count.
func getBuffer(artifactCount int) *bytes.Buffer {
	var buf *bytes.Buffer
	switch {
	case artifactCount < 10:
		buf = smallBufferPool.Get().(*bytes.Buffer)
	case artifactCount < 50:
		buf = mediumBufferPool.Get().(*bytes.Buffer)
	default:
		buf = largeBufferPool.Get().(*bytes.Buffer)
	}
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to its pool. Oversized buffers are dropped so
// one huge document does not pin memory for the process lifetime.
func putBuffer(buf *bytes.Buffer, artifactCount int) {
	if buf == nil || buf.Cap() > 1<<20 {
		return
	}
	switch {
	case artifactCount < 10:
		smallBufferPool.Put(buf)
	case artifactCount < 50:
		mediumBufferPool.Put(buf)
	default:
		largeBufferPool.Put(buf)
	}
}
