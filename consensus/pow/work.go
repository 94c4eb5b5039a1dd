package pow

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/nzsquirrell/testcoin/common"
	"github.com/nzsquirrell/testcoin/core/types"
	"github.com/nzsquirrell/testcoin/params"
)

// Decay windows for cross-algo work lookback, in blocks.
const (
	decayWindow     = 32
	longDecayWindow = 100
)

// workScaleShift spreads the geometric mean so chain work keeps the
// resolution of the pre-multi-algo calculation.
const workScaleShift = 8

// AlgoWorkFactor returns the relative cost of one hash of algo against one
// sha256d hash. Unknown algorithms weigh as sha256d.
func AlgoWorkFactor(algo types.Algo) int64 {
	switch algo {
	case types.AlgoSHA256D:
		return 1
	case types.AlgoScrypt:
		return 1024 * 4
	case types.AlgoGroestl:
		return 64 * 8
	case types.AlgoSkein:
		return 4 * 6
	case types.AlgoQubit:
		return 128 * 8
	}
	return 1
}

// BlockProofBase returns the expected number of hashes the block's target
// represents. A target that decodes negative, zero or overflowed carries no
// work.
func BlockProofBase(block *types.BlockIndex) *uint256.Int {
	target := new(uint256.Int)
	negative, overflow := common.SetCompact(target, block.Bits)
	if negative || overflow || target.IsZero() {
		return new(uint256.Int)
	}
	return proofForTarget(target)
}

// proofForTarget returns the expected number of hashes a non-zero target
// represents. Work is 2^256 / (target+1), computed as
// (~target / (target+1)) + 1 to stay inside 256 bits.
func proofForTarget(target *uint256.Int) *uint256.Int {
	work := new(uint256.Int).Not(target)
	denom := new(uint256.Int).AddUint64(target, 1)
	work.Div(work, denom)
	return work.AddUint64(work, 1)
}

// PrevWorkForAlgo returns the base proof of the nearest block of algo at or
// before block, or the pow limit when the chain holds none.
func PrevWorkForAlgo(block *types.BlockIndex, algo types.Algo, cfg *params.ChainConfig) *uint256.Int {
	for index := block; index != nil; index = index.Prev {
		if index.Algo() == algo {
			return BlockProofBase(index)
		}
	}
	return new(uint256.Int).Set(cfg.PowLimit)
}

// PrevWorkForAlgoWithDecay is PrevWorkForAlgo with the found work scaled down
// linearly by its distance from block over a 32 block window. The result
// never falls below the pow limit, and the walk gives up at the window edge.
func PrevWorkForAlgoWithDecay(block *types.BlockIndex, algo types.Algo, cfg *params.ChainConfig) *uint256.Int {
	distance := int64(0)
	for index := block; index != nil; index = index.Prev {
		if distance > decayWindow {
			return new(uint256.Int).Set(cfg.PowLimit)
		}
		if index.Algo() == algo {
			work := BlockProofBase(index)
			work.Mul(work, uint256.NewInt(uint64(decayWindow-distance)))
			work.Div(work, uint256.NewInt(decayWindow))
			if work.Lt(cfg.PowLimit) {
				work.Set(cfg.PowLimit)
			}
			return work
		}
		distance++
	}
	return new(uint256.Int).Set(cfg.PowLimit)
}

// PrevWorkForAlgoWithDecay2 decays over the same 32 block window but bottoms
// out at zero instead of the pow limit, so a stale algorithm stops
// contributing entirely.
func PrevWorkForAlgoWithDecay2(block *types.BlockIndex, algo types.Algo) *uint256.Int {
	distance := int64(0)
	for index := block; index != nil; index = index.Prev {
		if distance > decayWindow {
			return new(uint256.Int)
		}
		if index.Algo() == algo {
			work := BlockProofBase(index)
			work.Mul(work, uint256.NewInt(uint64(decayWindow-distance)))
			work.Div(work, uint256.NewInt(decayWindow))
			return work
		}
		distance++
	}
	return new(uint256.Int)
}

// PrevWorkForAlgoWithDecay3 decays to zero over a 100 block window. This is
// the lookback the geometric mean consumes.
func PrevWorkForAlgoWithDecay3(block *types.BlockIndex, algo types.Algo) *uint256.Int {
	distance := int64(0)
	for index := block; index != nil; index = index.Prev {
		if distance > longDecayWindow {
			return new(uint256.Int)
		}
		if index.Algo() == algo {
			work := BlockProofBase(index)
			work.Mul(work, uint256.NewInt(uint64(longDecayWindow-distance)))
			work.Div(work, uint256.NewInt(longDecayWindow))
			return work
		}
		distance++
	}
	return new(uint256.Int)
}

// GeometricMeanPrevWork combines the block's own proof with the decayed
// recent proof of every other algorithm into the n-th root of their product,
// scaled up by 2^8. Algorithms whose decayed work is zero drop out of the
// product rather than zeroing it.
func GeometricMeanPrevWork(block *types.BlockIndex, cfg *params.ChainConfig) *uint256.Int {
	product := BlockProofBase(block)
	blockAlgo := block.Algo()
	for _, algo := range types.Algos {
		if algo == blockAlgo {
			continue
		}
		alt := PrevWorkForAlgoWithDecay3(block, algo)
		if !alt.IsZero() {
			product.Mul(product, alt)
		}
	}
	mean := common.NthRoot(product, int(cfg.NumAlgos))
	return mean.Lsh(mean, workScaleShift)
}

// BlockProof weighs the block's base proof by its algorithm's work factor.
func BlockProof(block *types.BlockIndex) *uint256.Int {
	work := BlockProofBase(block)
	return work.Mul(work, uint256.NewInt(uint64(AlgoWorkFactor(block.Algo()))))
}

// CalcChainWork returns the total work of the chain ending in index.
func CalcChainWork(index *types.BlockIndex) *uint256.Int {
	work := BlockProof(index)
	if index.Prev != nil {
		work.Add(work, index.Prev.ChainWork)
	}
	return work
}

// BlockProofEquivalentTime estimates how long the chain would need to mine
// the work between from and to at tip's current difficulty. The result is
// negative when to sits below from, and saturates at the int64 range.
func BlockProofEquivalentTime(to, from, tip *types.BlockIndex, cfg *params.ChainConfig) int64 {
	sign := int64(1)
	r := new(uint256.Int)
	if to.ChainWork.Gt(from.ChainWork) {
		r.Sub(to.ChainWork, from.ChainWork)
	} else {
		r.Sub(from.ChainWork, to.ChainWork)
		sign = -1
	}
	r.Mul(r, uint256.NewInt(uint64(cfg.PowTargetSpacing)))
	r.Div(r, BlockProof(tip))
	if r.BitLen() > 63 {
		return sign * math.MaxInt64
	}
	return sign * int64(r.Uint64())
}
