package pow

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/nzsquirrell/testcoin/common"
	"github.com/nzsquirrell/testcoin/core/types"
	"github.com/nzsquirrell/testcoin/params"
)

const (
	regtestBits = uint32(0x207fffff)
	// decodes to a target of one, the hardest encodable block
	hardBits = uint32(0x03000001)
)

func TestAlgoWorkFactor(t *testing.T) {
	require.EqualValues(t, 1, AlgoWorkFactor(types.AlgoSHA256D))
	require.EqualValues(t, 4096, AlgoWorkFactor(types.AlgoScrypt))
	require.EqualValues(t, 512, AlgoWorkFactor(types.AlgoGroestl))
	require.EqualValues(t, 24, AlgoWorkFactor(types.AlgoSkein))
	require.EqualValues(t, 1024, AlgoWorkFactor(types.AlgoQubit))
	require.EqualValues(t, 1, AlgoWorkFactor(types.Algo(99)))
}

func TestBlockProofBase(t *testing.T) {
	// the regtest limit leaves one bit of work
	bi := appendBlock(nil, types.AlgoSHA256D, 1000, regtestBits)
	require.Equal(t, uint256.NewInt(2), BlockProofBase(bi))

	// the classic minimum-difficulty share target
	bi = appendBlock(nil, types.AlgoSHA256D, 1000, 0x1d00ffff)
	require.Equal(t, uint256.NewInt(0x100010001), BlockProofBase(bi))

	// a target of one counts half the hash space
	bi = appendBlock(nil, types.AlgoSHA256D, 1000, hardBits)
	require.Equal(t, new(uint256.Int).Lsh(uint256.NewInt(1), 255), BlockProofBase(bi))
}

func TestBlockProofBaseMonotonic(t *testing.T) {
	// lower targets always carry at least as much work
	hard := BlockProofBase(&types.BlockIndex{Bits: hardBits})
	classic := BlockProofBase(&types.BlockIndex{Bits: 0x1d00ffff})
	easy := BlockProofBase(&types.BlockIndex{Bits: regtestBits})
	require.True(t, hard.Gt(classic))
	require.True(t, classic.Gt(easy))
}

func TestBlockProofBaseInvalidBits(t *testing.T) {
	for _, bits := range []uint32{0x00000000, 0x04000000, 0x01fedcba, 0xff123456} {
		bi := &types.BlockIndex{Bits: bits}
		require.True(t, BlockProofBase(bi).IsZero(), "bits %08x", bits)
	}
}

func TestBlockProof(t *testing.T) {
	sha := appendBlock(nil, types.AlgoSHA256D, 1000, regtestBits)
	require.Equal(t, uint256.NewInt(2), BlockProof(sha))

	scrypt := appendBlock(nil, types.AlgoScrypt, 1000, regtestBits)
	require.Equal(t, uint256.NewInt(2*4096), BlockProof(scrypt))

	qubit := appendBlock(nil, types.AlgoQubit, 1000, regtestBits)
	require.Equal(t, uint256.NewInt(2*1024), BlockProof(qubit))
}

func TestPrevWorkForAlgo(t *testing.T) {
	cfg := params.RegtestChainConfig
	sha := appendBlock(nil, types.AlgoSHA256D, 1000, regtestBits)
	scrypt := appendBlock(sha, types.AlgoScrypt, 1060, regtestBits)
	tip := appendBlock(scrypt, types.AlgoSHA256D, 1120, regtestBits)

	require.Equal(t, uint256.NewInt(2), PrevWorkForAlgo(tip, types.AlgoSHA256D, cfg))
	require.Equal(t, uint256.NewInt(2*1), PrevWorkForAlgo(tip, types.AlgoScrypt, cfg))

	// absent algorithms count the pow limit, on a fresh instance
	got := PrevWorkForAlgo(tip, types.AlgoQubit, cfg)
	require.Equal(t, cfg.PowLimit, got)
	require.NotSame(t, cfg.PowLimit, got)
}

func TestPrevWorkForAlgoWithDecay(t *testing.T) {
	cfg := params.MainnetChainConfig

	// a hard block two positions back keeps most of its weight
	tip := appendBlock(nil, types.AlgoSHA256D, 1000, hardBits)
	tip = appendBlock(tip, types.AlgoScrypt, 1060, regtestBits)
	tip = appendBlock(tip, types.AlgoScrypt, 1120, regtestBits)

	want := new(uint256.Int).Lsh(uint256.NewInt(15), 251) // 2^255 * 30/32
	require.Equal(t, want, PrevWorkForAlgoWithDecay(tip, types.AlgoSHA256D, cfg))

	// weak findings are floored up to the pow limit
	weak := appendBlock(nil, types.AlgoSHA256D, 1000, regtestBits)
	require.Equal(t, cfg.PowLimit, PrevWorkForAlgoWithDecay(weak, types.AlgoSHA256D, cfg))
}

func TestPrevWorkForAlgoDecayWindows(t *testing.T) {
	cfg := params.MainnetChainConfig

	// bury one sha256d block under forty scrypt blocks
	tip := appendBlock(nil, types.AlgoSHA256D, 1000, regtestBits)
	for i := 0; i < 40; i++ {
		tip = appendBlock(tip, types.AlgoScrypt, 1060+uint32(i)*60, regtestBits)
	}

	// past the short window only the long lookback still sees it
	require.Equal(t, cfg.PowLimit, PrevWorkForAlgoWithDecay(tip, types.AlgoSHA256D, cfg))
	require.True(t, PrevWorkForAlgoWithDecay2(tip, types.AlgoSHA256D).IsZero())
	require.Equal(t, uint256.NewInt(1), PrevWorkForAlgoWithDecay3(tip, types.AlgoSHA256D)) // 2 * 60/100

	// an algorithm never mined contributes nothing
	require.True(t, PrevWorkForAlgoWithDecay3(tip, types.AlgoQubit).IsZero())
}

func TestGeometricMeanPrevWorkSingleAlgo(t *testing.T) {
	cfg := params.RegtestChainConfig

	// target 2^220, base work 2^36 - 1, fifth root 147
	tip := appendBlock(nil, types.AlgoSHA256D, 1000, 0x1c100000)
	require.Equal(t, uint256.NewInt(147<<8), GeometricMeanPrevWork(tip, cfg))
}

func TestGeometricMeanPrevWorkAllAlgos(t *testing.T) {
	cfg := params.RegtestChainConfig

	var tip *types.BlockIndex
	for i, algo := range types.Algos {
		tip = appendBlock(tip, algo, 1000+uint32(i)*60, regtestBits)
	}

	// the decayed alternates each floor to one, leaving the tip's own
	// work of two under the fifth root
	require.Equal(t, uint256.NewInt(1<<8), GeometricMeanPrevWork(tip, cfg))
}

func TestCalcChainWork(t *testing.T) {
	sha := appendBlock(nil, types.AlgoSHA256D, 1000, regtestBits)
	require.Equal(t, uint256.NewInt(2), sha.ChainWork)

	scrypt := appendBlock(sha, types.AlgoScrypt, 1060, regtestBits)
	require.Equal(t, uint256.NewInt(2+2*4096), scrypt.ChainWork)

	// chain work is strictly increasing
	require.True(t, scrypt.ChainWork.Gt(sha.ChainWork))
}

func TestBlockProofEquivalentTime(t *testing.T) {
	cfg := params.RegtestChainConfig
	tip := uniformChain(3, types.AlgoSHA256D, 1000, 60, regtestBits)
	genesis := tip.Prev.Prev

	require.EqualValues(t, 120, BlockProofEquivalentTime(tip, genesis, tip, cfg))
	require.EqualValues(t, -120, BlockProofEquivalentTime(genesis, tip, tip, cfg))
	require.EqualValues(t, 0, BlockProofEquivalentTime(tip, tip, tip, cfg))
}
