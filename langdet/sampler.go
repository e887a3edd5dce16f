package langdet

import (
	"fmt"
	"math/rand/v2"
)

// Source supplies raw randomness for input sub-sampling. Generators from
// math/rand/v2 satisfy it. A Source shared between goroutines must be safe
// for concurrent use; the process-wide default is.
type Source interface {
	Uint64() uint64
}

// globalSource draws from the shared math/rand/v2 generator, which
// serializes access internally.
type globalSource struct{}

func (globalSource) Uint64() uint64 {
	return rand.Uint64()
}

// sampleIndices picks k token indices out of n, one per contiguous
// partition. The first partition absorbs the division remainder, every
// later one spans exactly n/k indices, and one index is drawn uniformly
// within each. Selection probability is not uniform across the document,
// but the picks cover all of it instead of clustering at the front.
//
// Both failure modes are caller bugs and are rejected, never clamped.
func sampleIndices(src Source, n, k int) ([]int, error) {
	if k <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", k)
	}
	if n < k {
		return nil, fmt.Errorf("cannot sample %d tokens out of %d", k, n)
	}

	step := n / k
	rem := n % k

	out := make([]int, 0, k)
	lo := 0
	for i := 0; i < k; i++ {
		size := step
		if i == 0 {
			size += rem
		}
		out = append(out, lo+int(src.Uint64()%uint64(size)))
		lo += size
	}
	return out, nil
}
