package services

import (
	"fmt"
	"sync"

	"redeem-base/internal/utils"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
)

// ChainClientPool holds one RPC client per chain. Clients are dialed lazily
// on first use and cached for the process lifetime.
type ChainClientPool struct {
	mu          sync.RWMutex
	clients     map[int64]*ethclient.Client // chainID -> client
	providerKey string
	logger      *logrus.Logger
}

// NewChainClientPool creates an empty pool
func NewChainClientPool(providerKey string, logger *logrus.Logger) *ChainClientPool {
	return &ChainClientPool{
		clients:     make(map[int64]*ethclient.Client),
		providerKey: providerKey,
		logger:      logger,
	}
}

// Get returns the RPC client for a chain, dialing it if needed
func (p *ChainClientPool) Get(chainID int64) (*ethclient.Client, error) {
	p.mu.RLock()
	client, ok := p.clients[chainID]
	p.mu.RUnlock()
	if ok {
		return client, nil
	}

	endpoint, err := utils.GlobalChainRegistry.RPCEndpoint(chainID, p.providerKey)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if client, ok := p.clients[chainID]; ok {
		return client, nil
	}

	client, err = ethclient.Dial(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain %d RPC: %w", chainID, err)
	}

	p.logger.WithFields(logrus.Fields{
		"chain_id": chainID,
	}).Info("connected to RPC endpoint")

	p.clients[chainID] = client
	return client, nil
}

// Close closes every dialed client
func (p *ChainClientPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for chainID, client := range p.clients {
		client.Close()
		delete(p.clients, chainID)
	}
}
