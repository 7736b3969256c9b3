// Package labels provides a static lookup table mapping well-known
// Ethereum contract addresses to a human-readable protocol and name, so
// reports can show "Uniswap V3 SwapRouter" instead of a raw hex address.
package labels

import "github.com/ethereum/go-ethereum/common"

// Label identifies the protocol and specific contract a known address
// belongs to.
type Label struct {
	Protocol string
	Name     string
}

// Lookup returns the label for a known contract, if any.
func Lookup(address common.Address) (Label, bool) {
	l, ok := known[address]
	return l, ok
}

var known = map[common.Address]Label{
	// Uniswap
	common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"): {"Uniswap", "V2 Router"},
	common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"): {"Uniswap", "V2 Factory"},
	common.HexToAddress("0xE592427A0AEce92De3Edee1F18E0157C05861564"): {"Uniswap", "V3 SwapRouter"},
	common.HexToAddress("0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45"): {"Uniswap", "V3 SwapRouter02"},
	common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"): {"Uniswap", "V3 Factory"},
	common.HexToAddress("0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD"): {"Uniswap", "Universal Router"},
	common.HexToAddress("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc"): {"Uniswap", "V2 USDC/WETH"},
	common.HexToAddress("0x0d4a11d5EEaaC28EC3F61d100daF4d40471f1852"): {"Uniswap", "V2 WETH/USDT"},
	common.HexToAddress("0x8ad599c3A0ff1De082011EFDDc58f1908eb6e6D8"): {"Uniswap", "V3 USDC/WETH 0.3%"},
	common.HexToAddress("0x88e6A0c2dDD26FEEb64F039a2c41296FcB3f5640"): {"Uniswap", "V3 USDC/WETH 0.05%"},
	common.HexToAddress("0xCBCdF9626bC03E24f779434178A73a0B4bad62eD"): {"Uniswap", "V3 WBTC/WETH"},
	common.HexToAddress("0xC36442b4a4522E871399CD717aBDD847Ab11FE88"): {"Uniswap", "V3 NonfungiblePositionManager"},

	// Tokens
	common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"): {"WETH", "Wrapped Ether"},
	common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"): {"USDC", "USD Coin"},
	common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"): {"USDT", "Tether USD"},
	common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"): {"DAI", "Dai Stablecoin"},
	common.HexToAddress("0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599"): {"WBTC", "Wrapped BTC"},
	common.HexToAddress("0x514910771AF9Ca656af840dff83E8264EcF986CA"): {"LINK", "Chainlink Token"},
	common.HexToAddress("0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984"): {"UNI", "Uniswap Token"},
	common.HexToAddress("0x95aD61b0a150d79219dCF64E1E6Cc01f0B64C4cE"): {"SHIB", "Shiba Inu"},
	common.HexToAddress("0x7D1AfA7B718fb893dB30A3aBc0Cfc608AaCfeBB0"): {"MATIC", "Polygon Token"},

	// Aave
	common.HexToAddress("0x87870Bca3F3fD6335C3F4ce8392D69350B4fA4E2"): {"Aave", "V3 Pool"},
	common.HexToAddress("0x7d2768dE32b0b80b7a3454c06BdAc94A69DDc7A9"): {"Aave", "V2 LendingPool"},

	// Curve
	common.HexToAddress("0xbEbc44782C7dB0a1A60Cb6fe97d0b483032FF1C7"): {"Curve", "3pool"},
	common.HexToAddress("0xDC24316b9AE028F1497c275EB9192a3Ea0f67022"): {"Curve", "stETH/ETH"},

	// 1inch
	common.HexToAddress("0x1111111254EEB25477B68fb85Ed929f73A960582"): {"1inch", "V5 Router"},
	common.HexToAddress("0x111111125421cA6dc452d289314280a0f8842A65"): {"1inch", "V6 Router"},

	// OpenSea / Blur / NFT
	common.HexToAddress("0x00000000000000ADc04C56Bf30aC9d3c0aAF14dC"): {"OpenSea", "Seaport 1.5"},
	common.HexToAddress("0x00000000006c3852cbEf3e08E8dF289169EdE581"): {"OpenSea", "Seaport 1.1"},
	common.HexToAddress("0x29469395eAf6f95920E59F858042f0e28D98a20B"): {"Blur", "BlurPool"},
	common.HexToAddress("0x000000000000Ad05Ccc4F10045630fb830B95127"): {"Blur", "Marketplace"},
	common.HexToAddress("0xb47e3cd837dDF8e4c57F05d70Ab865de6e193BBB"): {"CryptoPunks", "Marketplace"},

	// Lido -- stETH is listed under both its token identity and Lido's own
	// protocol entry in the original registry; only the Lido entry is kept
	// here, matching the original's last-insert-wins HashMap behavior.
	common.HexToAddress("0xae7ab96520DE3A18E5e111B5EaAb095312D7fE84"): {"Lido", "stETH"},
	common.HexToAddress("0x7f39C581F595B53c5cb19bD0b3f8dA6c935E2Ca0"): {"Lido", "wstETH"},

	// EigenLayer
	common.HexToAddress("0x858646372CC42E1A627fcE94aa7A7033e7CF075A"): {"EigenLayer", "StrategyManager"},

	// Gnosis Safe / Multicall
	common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"): {"Multicall", "Multicall3"},
	common.HexToAddress("0xd9Db270c1B5E3Bd161E8c8503c55cEABeE709552"): {"Gnosis Safe", "SafeL2 1.3.0"},

	// MEV / aggregators
	common.HexToAddress("0xDef1C0ded9bec7F1a1670819833240f027b25EfF"): {"0x Protocol", "Exchange Proxy"},
	common.HexToAddress("0x881D40237659C251811CEC9c364ef91dC08D300C"): {"MetaMask", "Swap Router"},
	common.HexToAddress("0x502Ed02100eA8b10F8d7FC14e0f86633Ec2ddada"): {"ERC-20", "Meme Token"},
	common.HexToAddress("0x5Ae97e4770b7034C7Ca99Ab7edC26a18a23CB412"): {"MEV Bot", "Multi-Token Aggregator"},
}
