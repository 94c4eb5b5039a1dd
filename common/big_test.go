package common

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestLogBigPowersOfTwo(t *testing.T) {
	shift := new(big.Int).Exp(Big2, big.NewInt(MantBits), nil)
	for _, e := range []int64{0, 1, 10, 100, 255} {
		v := new(big.Int).Exp(Big2, big.NewInt(e), nil)
		want := new(big.Int).Mul(big.NewInt(e), shift)
		require.Equal(t, want, LogBig(v), "2^%d", e)
	}
}

func TestLogBigZero(t *testing.T) {
	require.Equal(t, big.NewInt(0), LogBig(big.NewInt(0)))
	require.Equal(t, big.NewInt(0), LogBig(big.NewInt(-5)))
}

func TestLogBigDoesNotMutateInput(t *testing.T) {
	v := big.NewInt(1000)
	LogBig(v)
	require.Equal(t, big.NewInt(1000), v)
}

func TestWorkBits(t *testing.T) {
	require.Equal(t, uint64(0), WorkBits(uint256.NewInt(1)))
	require.Equal(t, uint64(32), WorkBits(new(uint256.Int).Lsh(uint256.NewInt(1), 32)))
	require.Equal(t, uint64(0), WorkBits(new(uint256.Int)))
}
