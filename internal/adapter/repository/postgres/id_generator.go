package postgres

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator produces lexicographically sortable ids. Closing and
// settlement rows sort by id in creation order, which the shareholder
// lock ordering relies on.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewULIDGenerator() *ULIDGenerator {
	seed := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &ULIDGenerator{
		entropy: ulid.Monotonic(seed, 0),
	}
}

// Generate returns a new ULID. Monotonic entropy keeps ids generated
// within the same millisecond strictly increasing.
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}
