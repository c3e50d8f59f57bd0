package app

import (
	"fmt"

	"redeem-base/internal/clients"
	"redeem-base/internal/config"
	"redeem-base/internal/handlers"
	"redeem-base/internal/services"

	"github.com/sirupsen/logrus"
)

// ServiceContainer wires configuration, clients, services and handlers
type ServiceContainer struct {
	Config *config.Config
	Logger *logrus.Logger

	// Clients
	RegistryClient *clients.CardRegistryClient
	ClientPool     *services.ChainClientPool

	// Core services
	DecryptionService *services.SecretDecryptionService
	Authorizer        *services.RedemptionAuthorizer
	LookupService     *services.CardLookupService
	RedemptionService *services.RedemptionService

	// Handlers
	CardHandler *handlers.CardHandler
}

// NewServiceContainer builds the full dependency graph from configuration
func NewServiceContainer(cfg *config.Config, logger *logrus.Logger) (*ServiceContainer, error) {
	registryClient := clients.NewCardRegistryClient(cfg.Registry.BaseURL, cfg.Registry.Timeout)
	clientPool := services.NewChainClientPool(cfg.Blockchain.RPCProviderKey, logger)

	lookupService, err := services.NewCardLookupService(registryClient, clientPool, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card lookup service: %w", err)
	}

	redemptionService, err := services.NewRedemptionService(cfg, clientPool, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create redemption service: %w", err)
	}

	decryptionService := services.NewSecretDecryptionService()
	authorizer := services.NewRedemptionAuthorizer()

	cardHandler := handlers.NewCardHandler(
		lookupService,
		decryptionService,
		authorizer,
		redemptionService,
		cfg.Blockchain.PartnerAddress,
		logger,
	)

	logger.WithFields(logrus.Fields{
		"operator": redemptionService.OperatorAddress().Hex(),
		"contract": cfg.Blockchain.ContractAddress,
	}).Info("service container initialized")

	return &ServiceContainer{
		Config:            cfg,
		Logger:            logger,
		RegistryClient:    registryClient,
		ClientPool:        clientPool,
		DecryptionService: decryptionService,
		Authorizer:        authorizer,
		LookupService:     lookupService,
		RedemptionService: redemptionService,
		CardHandler:       cardHandler,
	}, nil
}

// Close releases pooled RPC connections
func (c *ServiceContainer) Close() {
	c.ClientPool.Close()
}
