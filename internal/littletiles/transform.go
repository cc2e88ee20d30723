package littletiles

import "fmt"

// Transform payload wire layout. The first word carries a format marker
// in bit 31, the six flip bits in bits 24-29 and one presence bit per
// (corner, axis) slot in bits 0-23, addressed by 3*corner+axis. The
// remaining words carry the flagged offsets packed two int16 per word,
// high half first. Offsets appear in strictly ascending presence-bit
// order, so both directions iterate corners outer, axes inner.

const transformMarker = uint32(1) << 31

// Words packs the transform into its wire words. A transform with no
// offsets packs to a single header word with no presence bits set.
func (t *Transform) Words() []int32 {
	var flags uint32
	vals := make([]int16, 0, cornerCount*axisCount)
	for c := 0; c < cornerCount; c++ {
		for a := 0; a < axisCount; a++ {
			v := t.Offsets[c][a]
			if v != 0 {
				flags |= 1 << uint(3*c+a)
				vals = append(vals, v)
			}
		}
	}

	words := make([]int32, 1, 1+(len(vals)+1)/2)
	words[0] = int32(transformMarker | uint32(t.Flips&flipMask)<<24 | flags)
	for i := 0; i < len(vals); i += 2 {
		w := uint32(uint16(vals[i])) << 16
		if i+1 < len(vals) {
			w |= uint32(uint16(vals[i+1]))
		}
		words = append(words, int32(w))
	}
	return words
}

// ParseTransform decodes a transform payload. The marker bit is not
// required; external writers that omit it are accepted.
func ParseTransform(words []int32) (*Transform, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("transform: empty payload: %w", ErrInvalidFormat)
	}
	head := uint32(words[0])
	t := &Transform{Flips: FlipSet(head>>24) & flipMask}

	vals := make([]int16, 0, 2*(len(words)-1))
	for _, w := range words[1:] {
		u := uint32(w)
		vals = append(vals, int16(u>>16), int16(u))
	}

	vi := 0
	for c := 0; c < cornerCount; c++ {
		for a := 0; a < axisCount; a++ {
			if head>>uint(3*c+a)&1 == 0 {
				continue
			}
			if vi >= len(vals) {
				return nil, fmt.Errorf("transform: presence bit %d set but payload exhausted: %w", 3*c+a, ErrInvalidFormat)
			}
			t.Offsets[c][a] = vals[vi]
			vi++
		}
	}
	return t, nil
}
