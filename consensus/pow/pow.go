// Package pow implements the multi-algorithm proof-of-work rules: per-algo
// difficulty retargeting over median-time-past, target validation and the
// merge-mining acceptance path.
package pow

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/nzsquirrell/testcoin/common"
	"github.com/nzsquirrell/testcoin/consensus"
	"github.com/nzsquirrell/testcoin/core/types"
	"github.com/nzsquirrell/testcoin/log"
	"github.com/nzsquirrell/testcoin/metrics_config"
	"github.com/nzsquirrell/testcoin/params"
)

// Retarget clamp, in percent of the averaging target timespan.
const (
	maxAdjustDown = 4
	maxAdjustUp   = 4
)

var headerChecks = metrics_config.NewCounterVec("pow_header_checks", "Number of header proof of work checks by result")

// GetLastBlockIndex walks back from index to the most recent block mined with
// algo, including index itself. When no such block exists the walk stops at
// genesis and the genesis index is returned regardless of its algorithm.
func GetLastBlockIndex(index *types.BlockIndex, algo types.Algo) *types.BlockIndex {
	for index != nil && index.Prev != nil && index.Algo() != algo {
		index = index.Prev
	}
	return index
}

// GetLastBlockIndexForAlgo is like GetLastBlockIndex but returns nil when the
// chain holds no block of the requested algorithm.
func GetLastBlockIndexForAlgo(index *types.BlockIndex, algo types.Algo) *types.BlockIndex {
	for ; index != nil; index = index.Prev {
		if index.Algo() == algo {
			return index
		}
	}
	return nil
}

// GetNextWorkRequired computes the compact difficulty target for the block of
// the given algorithm that would extend prev. Until a full averaging window of
// same-algo blocks exists the chain stays at the pow limit.
func GetNextWorkRequired(prev *types.BlockIndex, header *types.BlockHeader, cfg *params.ChainConfig, algo types.Algo) uint32 {
	powLimitBits := common.GetCompact(cfg.PowLimit)

	// Genesis.
	if prev == nil {
		return powLimitBits
	}

	last := GetLastBlockIndexForAlgo(prev, algo)
	if last == nil {
		return powLimitBits
	}

	first := last
	for i := int64(0); i < cfg.AveragingInterval-1 && first != nil; i++ {
		first = GetLastBlockIndexForAlgo(first.Prev, algo)
	}
	if first == nil {
		return powLimitBits
	}

	return CalculateNextWorkRequired(last, first, cfg, algo)
}

// CalculateNextWorkRequired retargets prev's compact bits by the ratio of the
// observed median-time-past span between first and prev to the expected
// averaging timespan, clamped to +/-4 percent per window and capped at the
// pow limit.
func CalculateNextWorkRequired(prev, first *types.BlockIndex, cfg *params.ChainConfig, algo types.Algo) uint32 {
	targetTimespan := cfg.AveragingTargetTimespan()
	minTimespan := targetTimespan * (100 - maxAdjustUp) / 100
	maxTimespan := targetTimespan * (100 + maxAdjustDown) / 100

	actualTimespan := prev.MedianTimePast() - first.MedianTimePast()
	if actualTimespan < minTimespan {
		actualTimespan = minTimespan
	}
	if actualTimespan > maxTimespan {
		actualTimespan = maxTimespan
	}

	next := new(uint256.Int)
	common.SetCompact(next, prev.Bits)
	next.Mul(next, uint256.NewInt(uint64(actualTimespan)))
	next.Div(next, uint256.NewInt(uint64(targetTimespan)))
	if next.Gt(cfg.PowLimit) {
		next.Set(cfg.PowLimit)
	}

	bits := common.GetCompact(next)
	log.WithFields(log.Fields{
		"algo":     algo.String(),
		"height":   prev.Height + 1,
		"timespan": actualTimespan,
		"bits":     fmt.Sprintf("%08x", bits),
		"workBits": common.WorkBits(proofForTarget(next)),
	}).Debug("Retargeted proof of work")
	return bits
}

// CheckProofOfWork verifies that powHash satisfies the compact target in
// bits. The target must decode to a positive value no easier than the
// network pow limit.
func CheckProofOfWork(powHash common.Hash, bits uint32, cfg *params.ChainConfig) error {
	target := new(uint256.Int)
	negative, overflow := common.SetCompact(target, bits)
	if negative || overflow || target.IsZero() || target.Gt(cfg.PowLimit) {
		return fmt.Errorf("%w: bits %08x", consensus.ErrInvalidTarget, bits)
	}
	if powHash.U256().Gt(target) {
		return fmt.Errorf("%w: hash %s above target %08x", consensus.ErrInsufficientWork, powHash.TerminalString(), bits)
	}
	return nil
}

// CheckAuxPowProofOfWork validates a header's proof of work along whichever
// path its version selects: the native hash of the header itself, or the
// parent chain hash of an attached merge-mining proof. The version's auxpow
// flag and the presence of the proof must agree, and non-legacy headers must
// carry the network chain id when the network enforces one.
func CheckAuxPowProofOfWork(header *types.BlockHeader, hash types.HashFunc, cfg *params.ChainConfig) error {
	err := checkAuxPowProofOfWork(header, hash, cfg)
	if headerChecks != nil {
		if err != nil {
			headerChecks.WithLabelValues("rejected").Inc()
		} else {
			headerChecks.WithLabelValues("accepted").Inc()
		}
	}
	return err
}

func checkAuxPowProofOfWork(header *types.BlockHeader, hash types.HashFunc, cfg *params.ChainConfig) error {
	version := header.Version
	if !version.IsLegacy() && cfg.StrictChainID && version.ChainID() != cfg.AuxpowChainID {
		return fmt.Errorf("%w: got %d, want %d", consensus.ErrWrongChainID, version.ChainID(), cfg.AuxpowChainID)
	}

	if header.AuxPow == nil {
		if version.IsAuxpow() {
			return fmt.Errorf("%w: version %08x", consensus.ErrMissingAuxPow, version.FullVersion())
		}
		return CheckProofOfWork(header.PowHash(hash), header.Bits, cfg)
	}

	if !version.IsAuxpow() {
		return fmt.Errorf("%w: version %08x", consensus.ErrUnexpectedAuxPow, version.FullVersion())
	}
	if !header.AuxPow.Check(header.Hash(hash), version.ChainID(), cfg) {
		return fmt.Errorf("%w: chain id %d", consensus.ErrInvalidAuxPow, version.ChainID())
	}
	return CheckProofOfWork(header.AuxPow.ParentBlockPowHash(), header.Bits, cfg)
}
