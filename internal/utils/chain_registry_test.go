package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainRegistry_GetByID(t *testing.T) {
	info, ok := GlobalChainRegistry.GetByID(1)
	require.True(t, ok)
	assert.Equal(t, "Ethereum", info.Name)
	assert.Equal(t, "ETH", info.Symbol)
	assert.Equal(t, uint8(18), info.Decimals)

	_, ok = GlobalChainRegistry.GetByID(999999)
	assert.False(t, ok)
}

func TestChainRegistry_IsSupported(t *testing.T) {
	for _, chainID := range []int64{1, 8453, 56, 137, 42161, 10, 43114} {
		assert.True(t, GlobalChainRegistry.IsSupported(chainID), "chain %d", chainID)
	}
	assert.False(t, GlobalChainRegistry.IsSupported(2))
}

func TestChainRegistry_RPCEndpoint(t *testing.T) {
	// Keyed template gets the provider key injected
	endpoint, err := GlobalChainRegistry.RPCEndpoint(1, "test-key")
	require.NoError(t, err)
	assert.Equal(t, "https://eth-mainnet.g.alchemy.com/v2/test-key", endpoint)

	// Public endpoint is returned as-is
	endpoint, err = GlobalChainRegistry.RPCEndpoint(56, "test-key")
	require.NoError(t, err)
	assert.Equal(t, "https://bsc-dataseed1.binance.org", endpoint)

	_, err = GlobalChainRegistry.RPCEndpoint(999999, "test-key")
	assert.Error(t, err)
}

func TestChainRegistry_TxURL(t *testing.T) {
	url := GlobalChainRegistry.TxURL(8453, "0xabc")
	assert.Equal(t, "https://basescan.org/tx/0xabc", url)

	assert.Empty(t, GlobalChainRegistry.TxURL(999999, "0xabc"))
}
