package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// JWTSecretEnv overrides auth.jwt_secret so the secret can stay out of the config file.
const JWTSecretEnv = "AGREEMENT_JWT_SECRET"

// Config represents the agreement server configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Ethereum   EthereumConfig   `yaml:"ethereum"`
	Contracts  ContractsConfig  `yaml:"contracts"`
	Compiler   CompilerConfig   `yaml:"compiler"`
	Agreement  AgreementConfig  `yaml:"agreement"`
	Auth       AuthConfig       `yaml:"auth"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0" validate:"required"`
	Port            int           `yaml:"port" default:"5000" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"5m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
}

// EthereumConfig contains ledger client settings.
//
// Gas limits and gas price are fixed per operation class; no estimation is done.
type EthereumConfig struct {
	RPCURL             string        `yaml:"rpc_url" default:"http://127.0.0.1:8545" validate:"required,url"`
	ChainID            int64         `yaml:"chain_id" validate:"min=0"`
	GasPriceWei        string        `yaml:"gas_price_wei" default:"1000000000" validate:"required,numeric"`
	DeployGasLimit     uint64        `yaml:"deploy_gas_limit" default:"3000000" validate:"min=21000"`
	CallGasLimit       uint64        `yaml:"call_gas_limit" default:"300000" validate:"min=21000"`
	ConfirmationBlocks uint64        `yaml:"confirmation_blocks" default:"1" validate:"min=1"`
	PollingInterval    time.Duration `yaml:"polling_interval" default:"500ms" validate:"gt=0"`
	FinalityTimeout    time.Duration `yaml:"finality_timeout" default:"2m" validate:"gt=0"`
}

// ContractsConfig points at the Master Agreement interface description
type ContractsConfig struct {
	MasterABIPath string `yaml:"master_abi_path" default:"abi/MasterAgreement.json" validate:"required"`
}

// CompilerConfig contains the derivative source compiler settings
type CompilerConfig struct {
	SolcPath    string        `yaml:"solc_path" default:"solc" validate:"required"`
	SolcVersion string        `yaml:"solc_version" default:"0.8.0"`
	Timeout     time.Duration `yaml:"timeout" default:"2m" validate:"gt=0"`
}

// AgreementConfig seeds the session at start-up
type AgreementConfig struct {
	// MasterAddress is optional; when set it is applied as if ConfigureMaster had been called.
	MasterAddress string `yaml:"master_address" validate:"omitempty,eth_addr"`
}

// AuthConfig holds operator authentication settings.
// Authentication is disabled when JWTSecret is empty.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	JWTIssuer string `yaml:"jwt_issuer"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled bool `yaml:"enabled" default:"true"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// Load loads configuration from a YAML file, applies defaults and validates it
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Config from raw YAML
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if secret := os.Getenv(JWTSecretEnv); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}
	if cfg.Auth.JWTIssuer != "" && cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required when auth.jwt_issuer is set")
	}
	return nil
}
