package bufpool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSizeClasses(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantCap int
	}{
		{"Empty", 0, DefaultSmallSize},
		{"Small", 100, DefaultSmallSize},
		{"SmallBoundary", DefaultSmallSize, DefaultSmallSize},
		{"Medium", DefaultSmallSize + 1, DefaultMediumSize},
		{"Large", 100 << 10, DefaultLargeSize},
		{"Oversized", DefaultLargeSize + 1, DefaultLargeSize + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Get(tt.size)
			defer Put(buf)

			assert.Len(t, buf, tt.size)
			assert.Equal(t, tt.wantCap, cap(buf))
		})
	}
}

func TestCustomConfig(t *testing.T) {
	p := NewPool(&Config{SmallSize: 16, LargeSize: 8 << 20})

	assert.Equal(t, 16, cap(p.Get(10)))
	assert.Equal(t, DefaultMediumSize, cap(p.Get(17)))
	assert.Equal(t, 8<<20, cap(p.Get(2<<20)))
	assert.Equal(t, 8<<20, p.MaxPooled())
}

func TestPutReuses(t *testing.T) {
	p := NewPool(nil)

	buf := p.Get(10)
	buf[0] = 0xAB
	p.Put(buf)

	// sync.Pool gives no reuse guarantee; only check that Put accepted a
	// pooled slice and Get still honors the length.
	again := p.Get(20)
	require.Len(t, again, 20)
	assert.Equal(t, DefaultSmallSize, cap(again))
}

func TestPutIgnoresForeignSlices(t *testing.T) {
	p := NewPool(nil)
	p.Put(nil)
	p.Put(make([]byte, 10))
	p.Put(make([]byte, DefaultLargeSize+1))
}

func TestConcurrentUse(t *testing.T) {
	p := NewPool(nil)
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 100 {
				size := (n*100 + j) * 97 % (2 * DefaultMediumSize)
				buf := p.Get(size)
				for k := range buf {
					buf[k] = byte(n)
				}
				p.Put(buf)
			}
		}(i)
	}
	wg.Wait()
}
