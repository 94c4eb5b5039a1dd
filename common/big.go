package common

import (
	"math/big"

	"github.com/holiman/uint256"
	"modernc.org/mathutil"
)

const (
	MantBits = 64
)

// Common big integers often used
var (
	Big0     = big.NewInt(0)
	Big1     = big.NewInt(1)
	Big2     = big.NewInt(2)
	Big8     = big.NewInt(8)
	Big32    = big.NewInt(32)
	Big100   = big.NewInt(100)
	Big256   = big.NewInt(256)
	Big2e256 = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), big.NewInt(0))
)

// LogBig returns the binary logarithm of a work quantity in 64.64 fixed
// point. Zero input maps to zero so callers can log unconditionally.
func LogBig(work *big.Int) *big.Int {
	if work.Sign() <= 0 {
		return big.NewInt(0)
	}
	workCopy := new(big.Int).Set(work)
	c, m := mathutil.BinaryLog(workCopy, MantBits)
	bigBits := new(big.Int).Mul(big.NewInt(int64(c)), new(big.Int).Exp(big.NewInt(2), big.NewInt(MantBits), nil))
	bigBits = new(big.Int).Add(bigBits, m)
	return bigBits
}

// WorkBits collapses LogBig to its integer part, handy as a log field.
func WorkBits(work *uint256.Int) uint64 {
	bits := new(big.Int).Div(LogBig(work.ToBig()), new(big.Int).Exp(Big2, big.NewInt(MantBits), nil))
	return bits.Uint64()
}
