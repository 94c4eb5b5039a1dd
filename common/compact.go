package common

import (
	"github.com/holiman/uint256"
)

// The compact format is a representation of a whole number N using an
// unsigned 32 bit number similar to a floating point format. The most
// significant 8 bits are the unsigned exponent of base 256, and the lower
// 23 bits are the mantissa:
//
//	N = (-1^sign) * mantissa * 256^(exponent-3)
//
// Targets in block headers are encoded this way. The sign bit is never set
// for a valid target, but the decoder reports it so callers can reject such
// encodings.

// SetCompact decodes a compact target into v and reports whether the encoding
// was negative or overflowed 256 bits.
func SetCompact(v *uint256.Int, nCompact uint32) (negative, overflow bool) {
	size := nCompact >> 24
	word := uint64(nCompact & 0x007fffff)
	if size <= 3 {
		word >>= 8 * (3 - size)
		v.SetUint64(word)
	} else {
		v.SetUint64(word)
		v.Lsh(v, uint(8*(size-3)))
	}
	negative = word != 0 && (nCompact&0x00800000) != 0
	overflow = word != 0 && (size > 34 ||
		(word > 0xff && size > 33) ||
		(word > 0xffff && size > 32))
	return negative, overflow
}

// GetCompact encodes v in compact form. The mantissa is normalized so its
// sign bit is clear; the low bits below the top 24 are dropped.
func GetCompact(v *uint256.Int) uint32 {
	return getCompact(v, false)
}

func getCompact(v *uint256.Int, negative bool) uint32 {
	size := uint32((v.BitLen() + 7) / 8)
	var compact uint64
	if size <= 3 {
		compact = v.Uint64() << (8 * (3 - size))
	} else {
		compact = new(uint256.Int).Rsh(v, uint(8*(size-3))).Uint64()
	}
	// The 0x00800000 bit denotes the sign. Thus, if it is already set,
	// divide the mantissa by 256 and increase the exponent.
	if compact&0x00800000 != 0 {
		compact >>= 8
		size++
	}
	result := uint32(compact) | size<<24
	if negative && compact&0x007fffff != 0 {
		result |= 0x00800000
	}
	return result
}
