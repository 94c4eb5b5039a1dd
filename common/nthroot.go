package common

import (
	"github.com/holiman/uint256"
)

// NthRoot returns the integer n-th root r of value, with
// r^n <= value < (r+1)^n. n must be greater than 1.
//
// A bit-by-bit upper approximation seeds the root so the Newton refinement
// below cannot diverge on small inputs. Near the exact root integer Newton
// oscillates by one, so single steps record their direction and a reversal
// terminates the loop.
func NthRoot(value *uint256.Int, n int) *uint256.Int {
	if n <= 1 {
		panic("NthRoot: degree must be greater than 1")
	}
	if value.IsZero() {
		return new(uint256.Int)
	}

	// starting approximation
	rootBits := (value.BitLen() + n - 1) / n
	startingBits := rootBits
	if startingBits > 8 {
		startingBits = 8
	}
	upper := new(uint256.Int).Rsh(value, uint((rootBits-startingBits)*n))
	cur := new(uint256.Int)
	for i := startingBits - 1; i >= 0; i-- {
		next := new(uint256.Int).AddUint64(cur, 1<<uint(i))
		if intPow(next, n).Cmp(upper) <= 0 {
			cur = next
		}
	}
	if rootBits == startingBits {
		return cur
	}
	cur.Lsh(cur, uint(rootBits-startingBits))

	// iterate: cur = cur + (value / cur^(n-1) - cur) / n
	root := uint256.NewInt(uint64(n))
	terminate := 0
	// this should always converge in fewer steps, but limit just in case
	for it := 0; it < 20; it++ {
		quot := new(uint256.Int).Div(value, intPow(cur, n-1))
		// delta = quot - cur, tracked as a magnitude and sign pair
		var deltaMag *uint256.Int
		deltaNeg := false
		switch quot.Cmp(cur) {
		case 0:
			return cur
		case -1:
			deltaMag = new(uint256.Int).Sub(cur, quot)
			deltaNeg = true
		default:
			deltaMag = new(uint256.Int).Sub(quot, cur)
		}
		if deltaNeg {
			if terminate == 1 {
				return cur.SubUint64(cur, 1)
			}
			if deltaMag.Cmp(root) <= 0 {
				cur.SubUint64(cur, 1)
				terminate = -1
				continue
			}
			cur.Sub(cur, deltaMag.Div(deltaMag, root))
		} else {
			if terminate == -1 {
				return cur
			}
			if deltaMag.Cmp(root) <= 0 {
				cur.AddUint64(cur, 1)
				terminate = 1
				continue
			}
			cur.Add(cur, deltaMag.Div(deltaMag, root))
		}
		terminate = 0
	}
	return cur
}

func intPow(x *uint256.Int, n int) *uint256.Int {
	r := uint256.NewInt(1)
	for j := 0; j < n; j++ {
		r.Mul(r, x)
	}
	return r
}
