package capture

import "sync"

// Readback buffers are large (w*h*4) and short-lived: they die as soon as the
// composited copy exists. Pooling them keeps repeated captures of the same
// region from allocating a fresh backing slice each time.
//
// acquirePixels returns a slice of exactly n bytes; recyclePixels hands it
// back once nothing references it any more. Buffers that are never recycled
// are simply collected.

var pixelPool sync.Pool // stores *[]byte

func acquirePixels(n int) []byte {
	if n <= 0 {
		return nil
	}
	if v, ok := pixelPool.Get().(*[]byte); ok && cap(*v) >= n {
		buf := (*v)[:n]
		clear(buf)
		return buf
	}
	return make([]byte, n)
}

func recyclePixels(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	buf = buf[:0]
	pixelPool.Put(&buf)
}
