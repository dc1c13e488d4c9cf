package pools

import "sync"

// MaxPooledLen is the largest slice length kept for reuse.
const MaxPooledLen = 1 << 22

// IntPool pools []int slices.
type IntPool struct {
	pool sync.Pool
}

// NewIntPool creates a new int slice pool.
func NewIntPool() *IntPool {
	return &IntPool{}
}

// Get returns a zero-length slice with capacity of at least size.
func (p *IntPool) Get(size int) []int {
	sp, ok := p.pool.Get().(*[]int)
	if !ok || cap(*sp) < size {
		return make([]int, 0, size)
	}
	return (*sp)[:0]
}

// GetFilled returns a slice of length size with every element set to v.
func (p *IntPool) GetFilled(size, v int) []int {
	s := p.Get(size)[:size]
	for i := range s {
		s[i] = v
	}
	return s
}

// Put returns a slice to the pool. The caller must not use it afterwards.
func (p *IntPool) Put(s []int) {
	if s == nil || cap(s) > MaxPooledLen {
		return
	}
	s = s[:0]
	p.pool.Put(&s)
}

// Float64Pool pools []float64 slices.
type Float64Pool struct {
	pool sync.Pool
}

// NewFloat64Pool creates a new float64 slice pool.
func NewFloat64Pool() *Float64Pool {
	return &Float64Pool{}
}

// GetZeroed returns a slice of length size with every element zero.
func (p *Float64Pool) GetZeroed(size int) []float64 {
	sp, ok := p.pool.Get().(*[]float64)
	if !ok || cap(*sp) < size {
		return make([]float64, size)
	}
	s := (*sp)[:size]
	clear(s)
	return s
}

// Put returns a slice to the pool. The caller must not use it afterwards.
func (p *Float64Pool) Put(s []float64) {
	if s == nil || cap(s) > MaxPooledLen {
		return
	}
	s = s[:0]
	p.pool.Put(&s)
}

// Default global pools
var (
	defaultIntPool     = NewIntPool()
	defaultFloat64Pool = NewFloat64Pool()
)

// GetInts returns an empty int slice from the default pool.
func GetInts(size int) []int {
	return defaultIntPool.Get(size)
}

// GetIntsFilled returns a filled int slice from the default pool.
func GetIntsFilled(size, v int) []int {
	return defaultIntPool.GetFilled(size, v)
}

// PutInts returns an int slice to the default pool.
func PutInts(s []int) {
	defaultIntPool.Put(s)
}

// GetFloat64s returns a zeroed float64 slice from the default pool.
func GetFloat64s(size int) []float64 {
	return defaultFloat64Pool.GetZeroed(size)
}

// PutFloat64s returns a float64 slice to the default pool.
func PutFloat64s(s []float64) {
	defaultFloat64Pool.Put(s)
}
