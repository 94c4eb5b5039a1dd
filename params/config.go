package params

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/nzsquirrell/testcoin/common"
)

// Genesis hashes to enforce below configs on.
var (
	MainnetGenesisHash = common.HexToHash("0xb519bb2dd76860028f90b06ec7035467f9a48dea48d105a1d9f339bc778b17c3")
	TestnetGenesisHash = common.HexToHash("0xca8e01ba2dc3200766d4dc33283e941d0a902eee7ec364f70e477923a213e115")
	RegtestGenesisHash = common.HexToHash("0xd64af1e5d810601d1513a45d75a47c73d031b5d97805143c14f648bb5e92d5f1")

	GenesisMerkleRoot = common.HexToHash("0xa1c37dfaac8ac852263a658ab7024bd52954a748c9b149b0aec5c3193c1c34ab")
)

// Different network names
const (
	MainnetName = "mainnet"
	TestnetName = "testnet"
	RegtestName = "regtest"
)

var (
	mainPowLimit    = common.HexToHash("0x0000ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff").U256()
	regtestPowLimit = common.HexToHash("0x7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff").U256()
)

var (
	// MainnetChainConfig contains the chain parameters to run a node on the
	// main network.
	MainnetChainConfig = newChainConfig(func(c *ChainConfig) {
		c.Name = MainnetName
		c.GenesisHash = MainnetGenesisHash
		c.MagicBytes = [4]byte{0xf8, 0xbc, 0xb3, 0xd8}
		c.DefaultPort = 58333
		c.GenesisTime = 1455597574
		c.GenesisNonce = 1434119
	})

	// TestnetChainConfig contains the chain parameters to run a node on the
	// test network.
	TestnetChainConfig = newChainConfig(func(c *ChainConfig) {
		c.Name = TestnetName
		c.GenesisHash = TestnetGenesisHash
		c.MagicBytes = [4]byte{0xfa, 0xbc, 0xb3, 0xd8}
		c.DefaultPort = 68333
		c.GenesisTime = 1455597594
		c.GenesisNonce = 856768
		c.PowAllowMinDifficultyBlocks = true
		c.MajorityEnforceBlockUpgrade = 51
		c.MajorityRejectBlockOutdated = 75
		c.MajorityWindow = 100
	})

	// RegtestChainConfig contains the chain parameters for local regression
	// testing. Blocks are mined on demand against a near-trivial pow limit.
	RegtestChainConfig = newChainConfig(func(c *ChainConfig) {
		c.Name = RegtestName
		c.GenesisHash = RegtestGenesisHash
		c.MagicBytes = [4]byte{0xfb, 0xbc, 0xb3, 0xd8}
		c.DefaultPort = 18444
		c.PowLimit = new(uint256.Int).Set(regtestPowLimit)
		c.GenesisTime = 1455597514
		c.GenesisBits = 0x207fffff
		c.GenesisNonce = 0
		c.SubsidyHalvingInterval = 150
		c.StrictChainID = false
		c.MineBlocksOnDemand = true
	})
)

// ChainConfig is the core config which determines the blockchain settings.
// Instances are immutable once constructed; every consensus entry point
// receives the config explicitly.
type ChainConfig struct {
	Name string

	// Proof of work
	PowLimit                    *uint256.Int // highest permissible target
	PowTargetTimespan           int64        // seconds
	PowTargetSpacing            int64        // effective per-block spacing across all algos, seconds
	AveragingInterval           int64        // same-algo blocks in the retarget window
	NumAlgos                    int64
	PowAllowMinDifficultyBlocks bool

	// Merge mining
	AuxpowChainID int32
	StrictChainID bool

	// Deployment thresholds, passed through to block acceptance
	SubsidyHalvingInterval      int32
	MajorityEnforceBlockUpgrade int32
	MajorityRejectBlockOutdated int32
	MajorityWindow              int32

	// Network identity
	MagicBytes  [4]byte
	DefaultPort int32
	GenesisHash common.Hash

	// Genesis block constants. The node embeds these; it never mines them.
	GenesisTime  uint32
	GenesisBits  uint32
	GenesisNonce uint32

	MineBlocksOnDemand bool
}

// newChainConfig builds a config from the shared mainnet defaults, then
// applies per-network overrides. Each call returns a fresh value so the
// networks never alias state.
func newChainConfig(override func(*ChainConfig)) *ChainConfig {
	c := &ChainConfig{
		PowLimit:                    new(uint256.Int).Set(mainPowLimit),
		PowTargetTimespan:           14 * 24 * 60 * 60,
		PowTargetSpacing:            60,
		AveragingInterval:           10,
		NumAlgos:                    5,
		AuxpowChainID:               80,
		StrictChainID:               true,
		SubsidyHalvingInterval:      210000,
		MajorityEnforceBlockUpgrade: 750,
		MajorityRejectBlockOutdated: 950,
		MajorityWindow:              1000,
		GenesisBits:                 0x1e0fffff,
	}
	override(c)
	return c
}

// TargetSpacingPerAlgo returns the expected seconds between two blocks of the
// same algorithm.
func (c *ChainConfig) TargetSpacingPerAlgo() int64 {
	return c.PowTargetSpacing * c.NumAlgos
}

// AveragingTargetTimespan returns the expected wall-clock span of one
// same-algo retarget window.
func (c *ChainConfig) AveragingTargetTimespan() int64 {
	return c.AveragingInterval * c.TargetSpacingPerAlgo()
}

// String implements the fmt.Stringer interface.
func (c *ChainConfig) String() string {
	return fmt.Sprintf("{Network: %s, ChainID: %d, Algos: %d, Spacing: %ds}",
		c.Name,
		c.AuxpowChainID,
		c.NumAlgos,
		c.PowTargetSpacing,
	)
}
