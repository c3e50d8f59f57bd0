package utils

import (
	"fmt"
	"strings"
)

// ChainInfo describes one supported network
type ChainInfo struct {
	ChainID     int64  `json:"chain_id"`     // EVM chain ID
	Name        string `json:"name"`         // display name
	Symbol      string `json:"symbol"`       // native token symbol
	Decimals    uint8  `json:"decimals"`     // native token decimals
	RPCTemplate string `json:"rpc_template"` // RPC endpoint, %s is the provider key slot
	ExplorerURL string `json:"explorer_url"` // block explorer base URL
}

// ChainRegistry is the static table of supported networks
type ChainRegistry struct {
	byID map[int64]*ChainInfo
}

// GlobalChainRegistry is built once at init and is read-only afterwards
var GlobalChainRegistry *ChainRegistry

func init() {
	GlobalChainRegistry = &ChainRegistry{
		byID: make(map[int64]*ChainInfo),
	}

	chains := []*ChainInfo{
		{
			ChainID:     1,
			Name:        "Ethereum",
			Symbol:      "ETH",
			Decimals:    18,
			RPCTemplate: "https://eth-mainnet.g.alchemy.com/v2/%s",
			ExplorerURL: "https://etherscan.io",
		},
		{
			ChainID:     8453,
			Name:        "Base",
			Symbol:      "ETH",
			Decimals:    18,
			RPCTemplate: "https://base-mainnet.g.alchemy.com/v2/%s",
			ExplorerURL: "https://basescan.org",
		},
		{
			ChainID:     56,
			Name:        "BNB Chain",
			Symbol:      "BNB",
			Decimals:    18,
			RPCTemplate: "https://bsc-dataseed1.binance.org",
			ExplorerURL: "https://bscscan.com",
		},
		{
			ChainID:     137,
			Name:        "Polygon",
			Symbol:      "POL",
			Decimals:    18,
			RPCTemplate: "https://polygon-mainnet.g.alchemy.com/v2/%s",
			ExplorerURL: "https://polygonscan.com",
		},
		{
			ChainID:     42161,
			Name:        "Arbitrum",
			Symbol:      "ETH",
			Decimals:    18,
			RPCTemplate: "https://arb-mainnet.g.alchemy.com/v2/%s",
			ExplorerURL: "https://arbiscan.io",
		},
		{
			ChainID:     10,
			Name:        "Optimism",
			Symbol:      "ETH",
			Decimals:    18,
			RPCTemplate: "https://opt-mainnet.g.alchemy.com/v2/%s",
			ExplorerURL: "https://optimistic.etherscan.io",
		},
		{
			ChainID:     43114,
			Name:        "Avalanche",
			Symbol:      "AVAX",
			Decimals:    18,
			RPCTemplate: "https://api.avax.network/ext/bc/C/rpc",
			ExplorerURL: "https://snowtrace.io",
		},
	}

	for _, chain := range chains {
		GlobalChainRegistry.byID[chain.ChainID] = chain
	}
}

// GetByID looks up a chain by its EVM chain ID
func (r *ChainRegistry) GetByID(chainID int64) (*ChainInfo, bool) {
	info, ok := r.byID[chainID]
	return info, ok
}

// IsSupported reports whether the chain ID is in the registry
func (r *ChainRegistry) IsSupported(chainID int64) bool {
	_, ok := r.byID[chainID]
	return ok
}

// RPCEndpoint resolves the RPC URL for a chain, injecting the provider key
// where the endpoint template has a key slot
func (r *ChainRegistry) RPCEndpoint(chainID int64, providerKey string) (string, error) {
	info, ok := r.byID[chainID]
	if !ok {
		return "", fmt.Errorf("no RPC endpoint for chain: %d", chainID)
	}
	if strings.Contains(info.RPCTemplate, "%s") {
		return fmt.Sprintf(info.RPCTemplate, providerKey), nil
	}
	return info.RPCTemplate, nil
}

// TxURL builds the block explorer link for a transaction hash
func (r *ChainRegistry) TxURL(chainID int64, txHash string) string {
	info, ok := r.byID[chainID]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", info.ExplorerURL, txHash)
}

// GetAllChains returns every registered chain
func (r *ChainRegistry) GetAllChains() []*ChainInfo {
	chains := make([]*ChainInfo, 0, len(r.byID))
	for _, chain := range r.byID {
		chains = append(chains, chain)
	}
	return chains
}
