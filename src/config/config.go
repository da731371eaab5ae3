package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Databases DatabasesConfig `mapstructure:"databases"`
	Auth      AuthConfig      `mapstructure:"auth"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Outbox    OutboxConfig    `mapstructure:"outbox"`
}

type ServiceConfig struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"logLevel"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
	// DBPasswordSecretID, when set, overrides databases.sql.password with the
	// value stored in Secrets Manager.
	DBPasswordSecretID string `mapstructure:"dbPasswordSecretId"`
}

type OutboxConfig struct {
	// DispatchSpec is a cron spec for the notification outbox drain loop.
	DispatchSpec string `mapstructure:"dispatchSpec"`
	BatchSize    int    `mapstructure:"batchSize"`
}

// LoadConfig reads settings/appsettings.yaml from path, then merges the
// ENV-specific overlay (appsettings.<env>.yaml) when one exists.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	if env := os.Getenv("ENV"); env != "" {
		viper.SetConfigName("appsettings." + env)
		// The overlay is optional; a missing file is not an error.
		if err := viper.MergeInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Outbox.DispatchSpec == "" {
		cfg.Outbox.DispatchSpec = "@every 30s"
	}
	if cfg.Outbox.BatchSize <= 0 {
		cfg.Outbox.BatchSize = 50
	}
	return &cfg, nil
}
