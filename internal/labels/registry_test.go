package labels

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownWETH(t *testing.T) {
	l, ok := Lookup(common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"))
	require.True(t, ok)
	require.Equal(t, "WETH", l.Protocol)
	require.Equal(t, "Wrapped Ether", l.Name)
}

func TestLookupUnknownReturnsFalse(t *testing.T) {
	_, ok := Lookup(common.HexToAddress("0x1234567890123456789012345678901234567890"))
	require.False(t, ok)
}

func TestLookupLidoDuplicateKeyLastWins(t *testing.T) {
	l, ok := Lookup(common.HexToAddress("0xae7ab96520DE3A18E5e111B5EaAb095312D7fE84"))
	require.True(t, ok)
	require.Equal(t, "Lido", l.Protocol)
}
