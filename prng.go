package main

//
// The ZX80 dialect's RND is a 32-bit linear congruential generator,
// not anything from math/rand - spec.md §4.3 pins the exact multiplier
// and increment so that program behavior is reproducible across hosts
// given the same seed. No example in the retrieval pack carries an
// LCG library with this exact recurrence, so this is plain arithmetic
// rather than a borrowed dependency - see DESIGN.md.
//

func (e *Engine) seedRNG(seed int32) {
	e.rngState = uint32(seed)
}

// nextRandom advances the LCG and returns (state mod n) + 1 for
// n > 0, else 0, per spec.md §4.3.
func (e *Engine) nextRandom(n int32) int32 {
	e.rngState = e.rngState*lcgMultiplier + lcgIncrement

	if n <= 0 {
		return 0
	}

	return int32(e.rngState%uint32(n)) + 1
}
