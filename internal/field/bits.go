package field

import "iter"

// x.Bits() iterates over the bits of x, most significant first, starting at the most significant set bit. Leading
// zero bytes and leading zero bits within the first non-zero byte are skipped, so the first bit yielded is always
// true. A zero element yields no bits at all.
func (x Element) Bits() iter.Seq[bool] {
	return MSBFirst(x.Bytes())
}

// MSBFirst iterates over the bits of the big-endian integer b, most significant first, starting at its most
// significant set bit.
func MSBFirst(b []byte) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		i := 0
		for i < len(b) && b[i] == 0 {
			i++
		}
		if i == len(b) {
			return
		}

		started := false
		for ; i < len(b); i++ {
			for shift := 7; shift >= 0; shift-- {
				bit := (b[i]>>shift)&1 == 1
				if !started {
					if !bit {
						continue
					}
					started = true
				}
				if !yield(bit) {
					return
				}
			}
		}
	}
}

// BitLen returns the number of bits yielded by MSBFirst(b).
func BitLen(b []byte) int {
	n := 0
	for range MSBFirst(b) {
		n++
	}
	return n
}
