package model

import "sync"

// BufferPool recycles cell buffers between generations
type BufferPool struct {
	pool sync.Pool
}

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new([]Cell)
			},
		},
	}
}

// Get returns a buffer of length n. Its contents are unspecified.
func (p *BufferPool) Get(n int) []Cell {
	bp := p.pool.Get().(*[]Cell)
	if cap(*bp) < n {
		return make([]Cell, n)
	}
	return (*bp)[:n]
}

// GetCleared returns a buffer of length n with every cell Dead
func (p *BufferPool) GetCleared(n int) []Cell {
	buf := p.Get(n)
	clear(buf)
	return buf
}

// Put hands a buffer back for reuse
func (p *BufferPool) Put(buf []Cell) {
	if buf == nil {
		return
	}
	p.pool.Put(&buf)
}
