// Package consensus holds the error values shared by the proof-of-work
// validation paths. They are sentinels so hosts can classify a rejection
// with errors.Is while the wrapped message carries the specifics.
package consensus

import (
	"errors"
)

var (
	// ErrInvalidTarget is returned when a compact target decodes to a
	// negative, zero or overflowed value, or exceeds the network pow limit.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrInsufficientWork is returned when a proof-of-work hash exceeds the
	// claimed target.
	ErrInsufficientWork = errors.New("insufficient work")

	// ErrWrongChainID is returned when a non-legacy header carries a foreign
	// merge-mining chain id on a strict-chain-id network.
	ErrWrongChainID = errors.New("wrong merge-mining chain id")

	// ErrMissingAuxPow is returned when the version claims auxpow but no
	// proof is attached.
	ErrMissingAuxPow = errors.New("missing auxpow")

	// ErrUnexpectedAuxPow is returned when a proof is attached to a header
	// whose version does not claim auxpow.
	ErrUnexpectedAuxPow = errors.New("unexpected auxpow")

	// ErrInvalidAuxPow is returned when the delegated merge-mining proof
	// verification fails.
	ErrInvalidAuxPow = errors.New("invalid auxpow")
)
