package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

/* Config is a helper package; it could be an external lib */

type Config struct {
	Port           string `mapstructure:"PORT"`
	StorageDriver  string `mapstructure:"STORAGE_DRIVER"` // exchange store backend: postgres or redis
	PostgresDSN    string `mapstructure:"POSTGRES_DSN"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int    `mapstructure:"REDIS_DB"`
	RetentionLimit int    `mapstructure:"RETENTION_LIMIT"`
	SeedFile       string `mapstructure:"SEED_FILE"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("STORAGE_DRIVER", "postgres")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RETENTION_LIMIT", 10)
	viper.SetDefault("SEED_FILE", "integrations.yaml")

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env is fine, the environment still applies
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}
