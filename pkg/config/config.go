package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Meetings  MeetingsConfig  `mapstructure:"meetings"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	BaseURL string `mapstructure:"base_url"` // used to build detail-view links in replies
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	UseInMemory bool   `mapstructure:"use_in_memory"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type AssistantConfig struct {
	OpenAIKey      string  `mapstructure:"openai_key"`
	Model          string  `mapstructure:"model"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	Temperature    float64 `mapstructure:"temperature"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

type MeetingsConfig struct {
	// Meetings within this many days of now are classified as near future
	NearFutureDays int `mapstructure:"near_future_days"`
	// How often the reminder job scans for today's approved meetings
	ReminderIntervalMinutes int `mapstructure:"reminder_interval_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "projetakip")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.use_in_memory", false)
	v.SetDefault("assistant.model", "gpt-4o-mini")
	v.SetDefault("assistant.max_tokens", 300)
	v.SetDefault("assistant.temperature", 0.2)
	v.SetDefault("assistant.timeout_seconds", 10)
	v.SetDefault("meetings.near_future_days", 7)
	v.SetDefault("meetings.reminder_interval_minutes", 60)

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file when present; env vars and defaults carry otherwise
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Environment overrides for secrets
	if key := v.GetString("OPENAI_API_KEY"); key != "" {
		config.Assistant.OpenAIKey = key
	}
	if secret := v.GetString("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if pass := v.GetString("DB_PASS"); pass != "" {
		config.Database.Password = pass
	}

	return &config, nil
}
