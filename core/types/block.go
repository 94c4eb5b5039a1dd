package types

import (
	"bytes"
	"encoding/binary"

	"github.com/nzsquirrell/testcoin/common"
	"github.com/nzsquirrell/testcoin/params"
)

// Algo identifies the proof-of-work hash function a block was mined with.
type Algo int32

const (
	AlgoSHA256D Algo = iota
	AlgoScrypt
	AlgoGroestl
	AlgoSkein
	AlgoQubit

	NumAlgos = 5
)

// Algos lists every supported algorithm, in version-encoding order.
var Algos = [NumAlgos]Algo{AlgoSHA256D, AlgoScrypt, AlgoGroestl, AlgoSkein, AlgoQubit}

// String implements the stringer interface, returning the canonical
// lowercase algorithm name.
func (a Algo) String() string {
	switch a {
	case AlgoSHA256D:
		return "sha256d"
	case AlgoScrypt:
		return "scrypt"
	case AlgoGroestl:
		return "groestl"
	case AlgoSkein:
		return "skein"
	case AlgoQubit:
		return "qubit"
	}
	return "unknown"
}

// Block version word layout:
//
//	bits 0-7   base version
//	bit 8      auxpow flag
//	bits 9-11  algorithm
//	bits 16-31 merge-mining chain id
const (
	versionAuxpowFlag = 1 << 8

	versionAlgoMask    = 7 << 9
	versionAlgoScrypt  = 1 << 9
	versionAlgoGroestl = 2 << 9
	versionAlgoSkein   = 3 << 9
	versionAlgoQubit   = 4 << 9

	versionChainStart = 1 << 16
)

// BlockVersion wraps the header version word and its bit fields.
type BlockVersion int32

// NewBlockVersion assembles a version word from its parts.
func NewBlockVersion(base int32, algo Algo, chainID int32, auxpow bool) BlockVersion {
	v := BlockVersion(base & 0xff)
	v = v.WithAlgo(algo).WithChainID(chainID)
	if auxpow {
		v |= versionAuxpowFlag
	}
	return v
}

// FullVersion returns the raw version word.
func (v BlockVersion) FullVersion() int32 { return int32(v) }

// BaseVersion returns the version stripped of algorithm, auxpow and chain id
// bits.
func (v BlockVersion) BaseVersion() int32 { return int32(v) & 0xff }

// IsLegacy reports whether the version predates the versionbits layout.
// Legacy blocks carry no chain id and are only valid before the
// merge-mining start.
func (v BlockVersion) IsLegacy() bool { return v == 1 || v == 2 }

// IsAuxpow reports whether the header commits to a merge-mining proof.
func (v BlockVersion) IsAuxpow() bool { return v&versionAuxpowFlag != 0 }

// ChainID returns the merge-mining chain id carried in the high bits.
func (v BlockVersion) ChainID() int32 { return int32(v) >> 16 }

// Algo returns the declared proof-of-work algorithm. Unset or unknown
// algorithm bits fall back to sha256d, matching the wire default.
func (v BlockVersion) Algo() Algo {
	switch int32(v) & versionAlgoMask {
	case 0:
		return AlgoSHA256D
	case versionAlgoScrypt:
		return AlgoScrypt
	case versionAlgoGroestl:
		return AlgoGroestl
	case versionAlgoSkein:
		return AlgoSkein
	case versionAlgoQubit:
		return AlgoQubit
	}
	return AlgoSHA256D
}

// WithAlgo returns the version with the algorithm bits replaced.
func (v BlockVersion) WithAlgo(algo Algo) BlockVersion {
	v &^= versionAlgoMask
	switch algo {
	case AlgoScrypt:
		v |= versionAlgoScrypt
	case AlgoGroestl:
		v |= versionAlgoGroestl
	case AlgoSkein:
		v |= versionAlgoSkein
	case AlgoQubit:
		v |= versionAlgoQubit
	}
	return v
}

// WithChainID returns the version with the chain id bits replaced.
func (v BlockVersion) WithChainID(chainID int32) BlockVersion {
	v &= versionChainStart - 1
	return v | BlockVersion(chainID*versionChainStart)
}

// WithAuxpow returns the version with the auxpow flag set or cleared.
func (v BlockVersion) WithAuxpow(auxpow bool) BlockVersion {
	if auxpow {
		return v | versionAuxpowFlag
	}
	return v &^ versionAuxpowFlag
}

// HashFunc computes the named algorithm's hash over a serialized header.
// The hash implementations live outside the consensus core and are injected
// wherever a header must be hashed.
type HashFunc func(algo Algo, data []byte) common.Hash

// AuxPow is the merge-mining proof attached to auxpow headers. The Merkle
// branch verification is delegated to the implementation; the consensus core
// only consumes the two operations below.
type AuxPow interface {
	// Check verifies that the proof commits to the given child block hash
	// under the given chain id.
	Check(blockHash common.Hash, chainID int32, cfg *params.ChainConfig) bool

	// ParentBlockPowHash returns the proof-of-work hash of the parent chain
	// block that embeds the commitment.
	ParentBlockPowHash() common.Hash
}

// HeaderSize is the length of a serialized block header.
const HeaderSize = 80

// BlockHeader is the 80-byte header every block commits its work to. AuxPow
// rides outside the serialized region.
type BlockHeader struct {
	Version    BlockVersion
	PrevBlock  common.Hash
	MerkleRoot common.Hash
	Time       uint32
	Bits       uint32
	Nonce      uint32

	// AuxPow is non-nil iff the header carries a merge-mining proof.
	AuxPow AuxPow
}

// Serialize returns the canonical 80-byte little-endian wire encoding.
// Hashes are written in internal (reversed) byte order.
func (h *BlockHeader) Serialize() []byte {
	var buf bytes.Buffer
	buf.Grow(HeaderSize)
	binary.Write(&buf, binary.LittleEndian, h.Version.FullVersion())
	buf.Write(reverse(h.PrevBlock))
	buf.Write(reverse(h.MerkleRoot))
	binary.Write(&buf, binary.LittleEndian, h.Time)
	binary.Write(&buf, binary.LittleEndian, h.Bits)
	binary.Write(&buf, binary.LittleEndian, h.Nonce)
	return buf.Bytes()
}

// Hash returns the block hash, a double-sha256 over the serialized header
// regardless of the mining algorithm.
func (h *BlockHeader) Hash(hash HashFunc) common.Hash {
	return hash(AlgoSHA256D, h.Serialize())
}

// PowHash returns the hash the proof-of-work target applies to, computed
// with the header's declared algorithm.
func (h *BlockHeader) PowHash(hash HashFunc) common.Hash {
	return hash(h.Version.Algo(), h.Serialize())
}

func reverse(h common.Hash) []byte {
	out := make([]byte, common.HashLength)
	for i, b := range h {
		out[common.HashLength-1-i] = b
	}
	return out
}
