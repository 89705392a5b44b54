// Package config loads the agent's configuration from a YAML file,
// environment variables, and defaults, grounded on the teacher's
// internal/infrastructure/config package: viper for layered loading,
// godotenv for local .env convenience, go-playground/validator for
// struct-tag validation.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the agent's full configuration.
type Config struct {
	Agent    AgentConfig    `mapstructure:"agent"`
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AgentConfig names the SpaceTraders agent this process operates and its
// starting fleet budget policy (spec.md §4.6).
type AgentConfig struct {
	Symbol              string `mapstructure:"symbol" validate:"required"`
	Token               string `mapstructure:"token" validate:"required"`
	FactionSymbol       string `mapstructure:"faction_symbol" validate:"required"`
	HomeSystem          string `mapstructure:"home_system" validate:"required"`
	ConstructionWaypoint string `mapstructure:"construction_waypoint"`
	StartingFleetID     string `mapstructure:"starting_fleet_id" validate:"required"`
	OperatingReserve    int    `mapstructure:"operating_reserve" validate:"min=0"`
}

// LoadConfig loads configuration with priority env > file > defaults, the
// same three-tier precedence the teacher's LoadConfig documents.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/spacetrader-agent")
	}

	v.SetEnvPrefix("STA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// MustLoadConfig loads configuration and panics on error, for use at the
// top of main.go.
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
