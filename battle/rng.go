package battle

// RNG is the battle's single source of nondeterminism. Every branch that
// could vary across replays routes through it (spec.md §5): target choice,
// shuffle, and the speed roll. Tie-breaks defined by ID are deterministic
// and never consult the RNG.
//
// It is a splitmix64-derived generator rather than a wrapper around
// math/rand: math/rand's *rand.Rand keeps its internal generator state
// unexported, so a Battle snapshot (a plain value copy, spec.md §9) could
// not faithfully restore a stdlib Rand mid-stream. A generator whose entire
// state is one uint64 makes Snapshot/Restore trivial value copies,
// which is what "its internal state must be snapshottable" (spec.md §3.2)
// calls for.
type RNG struct {
	state uint64
}

// NewRNG creates a deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	g := &RNG{state: uint64(seed)}
	if g.state == 0 {
		g.state = 0x9E3779B97F4A7C15
	}
	return g
}

// next advances the generator and returns the next raw 64-bit value.
// splitmix64 (Vigna): cheap, well-distributed, and fully determined by a
// single uint64 of state.
func (g *RNG) next() uint64 {
	g.state += 0x9E3779B97F4A7C15
	z := g.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Uniform returns a float64 in [0,1).
func (g *RNG) Uniform() float64 {
	// 53 bits of mantissa precision, same technique math/rand uses.
	return float64(g.next()>>11) / (1 << 53)
}

// intn returns a uniform random integer in [0,n).
func (g *RNG) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(g.next() % uint64(n))
}

// Choice picks one element of a non-empty slice. Callers must not call
// Choice with an empty slice.
func Choice[T any](g *RNG, seq []T) T {
	return seq[g.intn(len(seq))]
}

// Shuffle permutes seq in place using Fisher-Yates.
func Shuffle[T any](g *RNG, seq []T) {
	for i := len(seq) - 1; i > 0; i-- {
		j := g.intn(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
}

// Snapshot captures the RNG's current state.
func (g *RNG) Snapshot() uint64 {
	return g.state
}

// Restore resets the RNG to a previously captured state.
func (g *RNG) Restore(state uint64) {
	g.state = state
}
