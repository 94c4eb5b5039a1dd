package common

import (
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestHexToHashRoundTrip(t *testing.T) {
	hex := "0x0000ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	h := HexToHash(hex)
	require.Equal(t, hex, h.Hex())
	require.Equal(t, hex, h.String())
}

func TestHashU256RoundTrip(t *testing.T) {
	h := HexToHash("0xb519bb2dd76860028f90b06ec7035467f9a48dea48d105a1d9f339bc778b17c3")
	require.Equal(t, h, U256ToHash(h.U256()))

	v := uint256.NewInt(0xdeadbeef)
	require.Equal(t, v, U256ToHash(v).U256())
}

func TestSetBytesCropsFromLeft(t *testing.T) {
	long := make([]byte, HashLength+4)
	for i := range long {
		long[i] = byte(i)
	}
	h := BytesToHash(long)
	require.Equal(t, long[4:], h.Bytes())

	short := []byte{0xab, 0xcd}
	h = BytesToHash(short)
	require.Equal(t, byte(0xab), h[HashLength-2])
	require.Equal(t, byte(0xcd), h[HashLength-1])
	require.Equal(t, byte(0x00), h[0])
}

func TestHashTerminalString(t *testing.T) {
	h := HexToHash("0xb519bb2dd76860028f90b06ec7035467f9a48dea48d105a1d9f339bc778b17c3")
	require.Equal(t, "b519bb..8b17c3", h.TerminalString())
}

func TestHashFormat(t *testing.T) {
	h := HexToHash("0x00000000000000000000000000000000000000000000000000000000000000ff")
	require.Equal(t, "00000000000000000000000000000000000000000000000000000000000000ff", fmt.Sprintf("%x", h))
	require.Equal(t, h.Hex(), fmt.Sprintf("%s", h))
	require.Equal(t, `"`+h.Hex()+`"`, fmt.Sprintf("%q", h))
}

func TestFromHex(t *testing.T) {
	require.Equal(t, []byte{0x01, 0x02}, FromHex("0x0102"))
	require.Equal(t, []byte{0x01, 0x02}, FromHex("0102"))
	// odd length is left-padded
	require.Equal(t, []byte{0x01, 0x02}, FromHex("0x102"))
}
