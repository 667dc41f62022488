package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort          int    `mapstructure:"APP_PORT"`
	DatabasePath     string `mapstructure:"DATABASE_PATH"`
	OpenAIAPIKey     string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel      string `mapstructure:"OPENAI_MODEL"`
	GoogleMapsAPIKey string `mapstructure:"GOOGLE_MAPS_API_KEY"`
	AdminPassword    string `mapstructure:"ADMIN_PASSWORD"`
	AllowedOrigin    string `mapstructure:"ALLOWED_ORIGIN"`
	MaxUploadBytes   int64  `mapstructure:"MAX_UPLOAD_BYTES"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 5001)
	viper.SetDefault("DATABASE_PATH", "/data/merlin.db")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o")
	viper.SetDefault("ADMIN_PASSWORD", "Password@123")
	viper.SetDefault("ALLOWED_ORIGIN", "*")
	viper.SetDefault("MAX_UPLOAD_BYTES", 100*1024*1024)
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
