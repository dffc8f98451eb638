package split

import (
	"fmt"
	"hash/fnv"
	"math"
)

// Seed derives the apportionment seed from a transaction's stable
// identifier. Recomputing the same transaction must yield the same split
// every time, so the seed comes from durable data, never from the clock.
func Seed(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}

// splitmix64 is the SplitMix64 generator. The algorithm is pinned here so
// that identical seeds produce identical permutations on every platform
// and in every reimplementation.
type splitmix64 uint64

func (s *splitmix64) next() uint64 {
	*s += 0x9e3779b97f4a7c15
	z := uint64(*s)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// permutation returns the Fisher-Yates shuffle of [0, n) driven by the
// seeded generator. Index selection uses the modulo of the raw output,
// which is biased in theory but deterministic and portable, which is what
// matters here.
func permutation(n int, seed uint64) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	gen := splitmix64(seed)
	for i := n - 1; i > 0; i-- {
		j := int(gen.next() % uint64(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}

	return perm
}

// Apportion splits an integer amount of cents among weighted parties. The
// result has the same length as weights and sums to total exactly, for
// every seed.
//
// Each party starts with the floor of its proportional share. The
// remaining cents are then handed out one at a time along a seeded
// permutation of the parties, so rounding gains do not always land on the
// same member. Parties whose share is zero are skipped, they had no claim
// to a share and must not pick up rounding cents. The one exception is
// when every floored share is zero, then the remainder is distributed
// round-robin over all parties. A negative remainder (possible for
// negative totals) is handled symmetrically by taking cents away instead.
func Apportion(total int64, weights []float64, seed uint64) ([]int64, error) {
	shares := make([]int64, len(weights))

	var weightSum float64
	for _, weight := range weights {
		weightSum += weight
	}

	if weightSum == 0 {
		if total != 0 {
			return nil, fmt.Errorf("%w: %d cents over %d weights", ErrAllWeightsZero, total, len(weights))
		}

		return shares, nil
	}

	var floored int64
	allZero := true
	for i, weight := range weights {
		shares[i] = int64(math.Floor(weight / weightSum * float64(total)))
		floored += shares[i]

		if shares[i] != 0 {
			allZero = false
		}
	}

	remainder := total - floored
	if remainder == 0 {
		return shares, nil
	}

	step := int64(1)
	if remainder < 0 {
		step = -1
	}

	perm := permutation(len(weights), seed)

	skipped := 0
	for i := 0; remainder != 0; i++ {
		idx := perm[i%len(perm)]

		if shares[idx] == 0 && !allZero {
			skipped++
			if skipped >= len(perm) {
				return nil, fmt.Errorf("%w: %d cents left over", ErrRemainderStuck, remainder)
			}

			continue
		}

		skipped = 0
		shares[idx] += step
		remainder -= step
	}

	return shares, nil
}
