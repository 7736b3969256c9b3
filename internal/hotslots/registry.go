// Package hotslots holds a static registry of storage slots known to be
// touched on nearly every call into a handful of high-volume DeFi contracts,
// so the prefetcher can warm them up front instead of discovering them one
// opcode at a time during simulation.
package hotslots

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var uniswapV2Slots = []common.Hash{
	common.BigToHash(big.NewInt(6)),  // token0
	common.BigToHash(big.NewInt(7)),  // token1
	common.BigToHash(big.NewInt(8)),  // reserve0 + reserve1 + blockTimestampLast (packed)
	common.BigToHash(big.NewInt(9)),  // price0CumulativeLast
	common.BigToHash(big.NewInt(10)), // price1CumulativeLast
}

var uniswapV3Slots = []common.Hash{
	common.BigToHash(big.NewInt(0)), // slot0 (sqrtPriceX96, tick, etc.)
	common.BigToHash(big.NewInt(1)), // feeGrowthGlobal0X128
	common.BigToHash(big.NewInt(2)), // feeGrowthGlobal1X128
	common.BigToHash(big.NewInt(3)), // protocolFees
	common.BigToHash(big.NewInt(4)), // liquidity
}

var known = map[common.Address][]common.Hash{
	// Uniswap V2 high-volume pairs
	common.HexToAddress("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc"): uniswapV2Slots,
	common.HexToAddress("0x0d4a11d5EEaaC28EC3F61d100daF4d40471f1852"): uniswapV2Slots,

	// Uniswap V3 high-volume pools
	common.HexToAddress("0x8ad599c3A0ff1De082011EFDDc58f1908eb6e6D8"): uniswapV3Slots,
	common.HexToAddress("0x88e6A0c2dDD26FEEb64F039a2c41296FcB3f5640"): uniswapV3Slots,
	common.HexToAddress("0xCBCdF9626bC03E24f779434178A73a0B4bad62eD"): uniswapV3Slots,
}

// KnownSlots returns the hot storage slots for a contract, if any.
func KnownSlots(address common.Address) ([]common.Hash, bool) {
	slots, ok := known[address]
	return slots, ok
}
