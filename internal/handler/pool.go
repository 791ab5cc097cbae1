package handler

import (
	"bytes"
	"sync"
)

// encodeBufPool recycles buffers used when encoding JSON response bodies.
// 512 bytes covers the typical response without a grow.
var encodeBufPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	return encodeBufPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	encodeBufPool.Put(buf)
}
