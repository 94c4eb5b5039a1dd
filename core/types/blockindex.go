package types

import (
	"sort"

	"github.com/holiman/uint256"

	"github.com/nzsquirrell/testcoin/common"
)

// medianTimeSpan is the number of trailing blocks (including self) whose
// timestamps feed the median-time-past clock.
const medianTimeSpan = 11

// BlockIndex is one node of the in-memory block graph. Indices are created
// when a header is accepted and are immutable afterwards; the consensus core
// only ever walks them backwards through Prev.
type BlockIndex struct {
	Prev   *BlockIndex
	Height int32

	Version BlockVersion
	Bits    uint32
	Time    uint32

	// PowHash is the header's proof-of-work hash, computed once on
	// acceptance with the header's declared algorithm.
	PowHash common.Hash

	// ChainWork is the total work on the chain ending in this block.
	// Strictly increasing along any parent chain.
	ChainWork *uint256.Int
}

// NewBlockIndex builds the index entry for an accepted header. ChainWork is
// left for the caller to fill in once the block's proof has been weighed.
func NewBlockIndex(header *BlockHeader, powHash common.Hash, prev *BlockIndex) *BlockIndex {
	bi := &BlockIndex{
		Prev:      prev,
		Version:   header.Version,
		Bits:      header.Bits,
		Time:      header.Time,
		PowHash:   powHash,
		ChainWork: new(uint256.Int),
	}
	if prev != nil {
		bi.Height = prev.Height + 1
	}
	return bi
}

// Algo returns the proof-of-work algorithm the block was mined with.
func (bi *BlockIndex) Algo() Algo { return bi.Version.Algo() }

// MedianTimePast returns the median of the last 11 block timestamps,
// including this block's own.
func (bi *BlockIndex) MedianTimePast() int64 {
	times := make([]int64, 0, medianTimeSpan)
	for index := bi; index != nil && len(times) < medianTimeSpan; index = index.Prev {
		times = append(times, int64(index.Time))
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times[len(times)/2]
}
