package config

import (
	aws_handler "cryptofolio/src/utils/aws"

	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Auth            AuthConfig           `mapstructure:"auth"`
}

type ServiceConfig struct {
	Port            string `mapstructure:"port"`
	PriceWarmupCron string `mapstructure:"priceWarmupCron"`
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
	// PasswordSecretID, when set, overrides Password with the value stored
	// in AWS Secrets Manager.
	PasswordSecretID string `mapstructure:"passwordSecretId"`
	AWSRegion        string `mapstructure:"awsRegion"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type ExternalClientConfig struct {
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
}

type CoinGeckoConfig struct {
	BaseURL  string `mapstructure:"baseUrl"`
	Currency string `mapstructure:"currency"`
	CacheTTL int    `mapstructure:"cacheTtlSeconds"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwtSecret"`
	TokenTTLHours int    `mapstructure:"tokenTtlHours"`
}

func LoadConfig(path, env string) (*Config, error) {
	var cfg Config

	configName := "appsettings"
	if env != "" {
		configName = "appsettings." + env
	}

	viper.AddConfigPath(path)
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Databases.SQL.PasswordSecretID != "" {
		awsHandler, err := aws_handler.NewAWSHandler(cfg.Databases.SQL.AWSRegion)
		if err != nil {
			return nil, err
		}
		password, err := awsHandler.SecretManager.GetSecretValue(cfg.Databases.SQL.PasswordSecretID)
		if err != nil {
			return nil, err
		}
		cfg.Databases.SQL.Password = password
	}

	return &cfg, nil
}
