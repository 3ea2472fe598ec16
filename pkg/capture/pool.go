package capture

import "sync"

// bufferPool recycles frame pixel buffers. Frames whose sinks never call
// Release are simply garbage collected.
type bufferPool struct {
	pool sync.Pool // stores *[]byte
}

// get returns a buffer of exactly n bytes. Contents are unspecified.
func (p *bufferPool) get(n int) []byte {
	if v := p.pool.Get(); v != nil {
		buf := *(v.(*[]byte))
		if cap(buf) >= n {
			return buf[:n]
		}
	}
	return make([]byte, n)
}

func (p *bufferPool) put(buf []byte) {
	if buf == nil {
		return
	}
	p.pool.Put(&buf)
}
