package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. It is loaded once at startup and
// treated as immutable afterwards; components receive it explicitly instead
// of reading ambient state.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Registry   RegistryConfig   `yaml:"registry"`
	Blockchain BlockchainConfig `yaml:"blockchain"`
}

// ServerConfig HTTP server configuration
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RegistryConfig card registry API configuration
type RegistryConfig struct {
	BaseURL string `yaml:"baseUrl"`
	Timeout int    `yaml:"timeout"` // request timeout (seconds)
}

// BlockchainConfig on-chain configuration
type BlockchainConfig struct {
	RPCProviderKey     string `yaml:"rpcProviderKey"`     // provider access key injected into RPC endpoint templates
	OperatorPrivateKey string `yaml:"operatorPrivateKey"` // hex private key of the gas-paying operator wallet
	PartnerAddress     string `yaml:"partnerAddress"`     // optional partner fee recipient (currently unused at the call site, see README)
	ContractAddress    string `yaml:"contractAddress"`    // card registry contract, same address on every chain
	ConfirmTimeout     int    `yaml:"confirmTimeout"`     // seconds to wait for a confirmation
}

// LoadConfig reads the optional YAML file, applies environment overrides and
// fills defaults. The operator private key is the only hard requirement.
func LoadConfig(configPath string) (*Config, error) {
	var config Config

	if configPath == "" {
		configPath = "config.yaml"
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	overrideFromEnv(&config)

	if config.Server.Port == 0 {
		config.Server.Port = 3000
	}
	if config.Registry.BaseURL == "" {
		config.Registry.BaseURL = "https://api.univoucher.com/v1"
	}
	if config.Registry.Timeout == 0 {
		config.Registry.Timeout = 15
	}
	if config.Blockchain.ContractAddress == "" {
		config.Blockchain.ContractAddress = "0x51553818203e38ce0E78e4dA05C07ac779ec5b58"
	}
	if config.Blockchain.ConfirmTimeout == 0 {
		config.Blockchain.ConfirmTimeout = 120
	}

	if config.Blockchain.OperatorPrivateKey == "" {
		return nil, fmt.Errorf("operator private key is not configured (set OPERATOR_PRIVATE_KEY)")
	}

	return &config, nil
}

// overrideFromEnv applies environment variable overrides
func overrideFromEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if baseURL := os.Getenv("CARD_API_BASE_URL"); baseURL != "" {
		config.Registry.BaseURL = baseURL
	}
	if key := os.Getenv("RPC_PROVIDER_KEY"); key != "" {
		config.Blockchain.RPCProviderKey = key
	}
	if key := os.Getenv("OPERATOR_PRIVATE_KEY"); key != "" {
		config.Blockchain.OperatorPrivateKey = key
	}
	if partner := os.Getenv("PARTNER_ADDRESS"); partner != "" {
		config.Blockchain.PartnerAddress = partner
	}
	if contract := os.Getenv("CONTRACT_ADDRESS"); contract != "" {
		config.Blockchain.ContractAddress = contract
	}
}
