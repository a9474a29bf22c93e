package idpool

import (
	"sync"

	"codeberg.org/avhel/gpucoolctl/internal/errors"
)

// DefaultCapacity bounds the identifier space when no explicit capacity
// is given. Far more than any machine has cooling devices.
const DefaultCapacity = 1024

// Pool hands out unique small integers used to name cooling device
// instances. Allocation is first-fit: the smallest free identifier is
// returned, so released identifiers are reused immediately.
type Pool struct {
	mu       sync.Mutex
	inUse    map[int]struct{}
	capacity int
}

// New creates a pool over the identifier space [0, capacity).
// A non-positive capacity selects DefaultCapacity.
func New(capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Pool{
		inUse:    make(map[int]struct{}),
		capacity: capacity,
	}
}

// Allocate returns the smallest identifier not currently in use.
func (p *Pool) Allocate() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id := 0; id < p.capacity; id++ {
		if _, taken := p.inUse[id]; !taken {
			p.inUse[id] = struct{}{}
			return id, nil
		}
	}

	errFactory := errors.New()

	return 0, errFactory.WithData(ErrExhausted, p.capacity)
}

// Release marks id as free. Releasing an identifier that is unknown or
// already free is a no-op; cleanup paths may call it after partial
// registration failures.
func (p *Pool) Release(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.inUse, id)
}

// InUse returns the number of identifiers currently allocated.
func (p *Pool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.inUse)
}
