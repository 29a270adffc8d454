// Package bufpool recycles byte buffers in three size classes.
//
// The gateway reads upload bodies of known length into pooled buffers so
// that steady PUT traffic does not allocate a fresh slice per request.
// Requests larger than the biggest class get a plain allocation that is
// left to the garbage collector.
package bufpool

import "sync"

// Default size classes.
const (
	DefaultSmallSize  = 4 << 10
	DefaultMediumSize = 64 << 10
	DefaultLargeSize  = 1 << 20
)

// Config sets the size classes. Zero fields take the defaults.
type Config struct {
	SmallSize  int
	MediumSize int
	LargeSize  int
}

// Pool is a set of sync.Pools, one per size class. Safe for concurrent use.
type Pool struct {
	classes [3]class
}

type class struct {
	size int
	pool sync.Pool
}

// NewPool creates a Pool. A nil cfg selects the defaults.
func NewPool(cfg *Config) *Pool {
	sizes := [3]int{DefaultSmallSize, DefaultMediumSize, DefaultLargeSize}
	if cfg != nil {
		for i, s := range [3]int{cfg.SmallSize, cfg.MediumSize, cfg.LargeSize} {
			if s > 0 {
				sizes[i] = s
			}
		}
	}

	p := &Pool{}
	for i := range p.classes {
		c := &p.classes[i]
		c.size = sizes[i]
		c.pool.New = func() any {
			buf := make([]byte, c.size)
			return &buf
		}
	}
	return p
}

// Get returns a slice of length size. Its capacity is that of the smallest
// class that fits, or exactly size when no class does. Contents are not
// zeroed.
func (p *Pool) Get(size int) []byte {
	for i := range p.classes {
		c := &p.classes[i]
		if size <= c.size {
			return (*c.pool.Get().(*[]byte))[:size]
		}
	}
	return make([]byte, size)
}

// Put returns buf to its class. Slices whose capacity matches no class are
// dropped. buf must not be used afterwards.
func (p *Pool) Put(buf []byte) {
	if buf == nil {
		return
	}
	for i := range p.classes {
		c := &p.classes[i]
		if cap(buf) == c.size {
			full := buf[:c.size]
			c.pool.Put(&full)
			return
		}
	}
}

// MaxPooled is the largest size served from a class.
func (p *Pool) MaxPooled() int {
	return p.classes[len(p.classes)-1].size
}

var defaultPool = NewPool(nil)

// Get returns a buffer from the default pool.
func Get(size int) []byte { return defaultPool.Get(size) }

// Put returns a buffer to the default pool.
func Put(buf []byte) { defaultPool.Put(buf) }
