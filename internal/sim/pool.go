package sim

import (
	"sync"

	"github.com/san-kum/orbsim/internal/body"
)

// FramePool recycles the body snapshots a runner reads between steps.
// Runs of an ensemble share one pool.
type FramePool struct {
	pool sync.Pool
	size int
}

func NewFramePool(size int) *FramePool {
	return &FramePool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]body.Body, 0, size)
			},
		},
	}
}

// Get returns an empty frame with capacity for the pool's population size.
func (p *FramePool) Get() []body.Body {
	return p.pool.Get().([]body.Body)[:0]
}

func (p *FramePool) Put(f []body.Body) {
	if cap(f) >= p.size {
		clear(f[:cap(f)])
		p.pool.Put(f[:0])
	}
}
