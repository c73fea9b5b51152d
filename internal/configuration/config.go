package configuration

import (
	"encoding/json"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type MongoConfig struct {
	Uri                  string `json:"uri"`
	Database             string `json:"database"`
	UsersCollection      string `json:"usersCollection"`
	BlogsCollection      string `json:"blogsCollection"`
	DonationsCollection  string `json:"donationsCollection"`
	SellPlantsCollection string `json:"sellPlantsCollection"`
	SwapsCollection      string `json:"swapsCollection"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type AuthConfig struct {
	TokenSecret  string `json:"token_secret"`
	TokenTTLMins int    `json:"token_ttl_minutes"`
}

type ServerConfig struct {
	AppPort        int      `json:"app_port"`
	SocketPort     int      `json:"socket_port"`
	AllowedOrigins []string `json:"allowed_origins"`
	UploadsDir     string   `json:"uploads_dir"`
}

type Config struct {
	Mongo  MongoConfig  `json:"mongo"`
	Redis  RedisConfig  `json:"redis"`
	Auth   AuthConfig   `json:"auth"`
	Server ServerConfig `json:"server"`
}

// TokenTTL returns the configured access token lifetime, defaulting
// to 24 hours.
func (c AuthConfig) TokenTTL() time.Duration {
	if c.TokenTTLMins <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TokenTTLMins) * time.Minute
}

// LoadConfig reads the JSON config file. A .env file, when present,
// is loaded first so ${VAR} values and secret overrides resolve from
// the environment.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal([]byte(os.ExpandEnv(string(file))), &config); err != nil {
		return nil, err
	}

	// Secrets may come from the environment instead of the file.
	if v := os.Getenv("TOKEN_SECRET"); v != "" {
		config.Auth.TokenSecret = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		config.Mongo.Uri = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.Redis.Addr = v
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Mongo.UsersCollection == "" {
		c.Mongo.UsersCollection = "users"
	}
	if c.Mongo.BlogsCollection == "" {
		c.Mongo.BlogsCollection = "blogs"
	}
	if c.Mongo.DonationsCollection == "" {
		c.Mongo.DonationsCollection = "donations"
	}
	if c.Mongo.SellPlantsCollection == "" {
		c.Mongo.SellPlantsCollection = "sellplants"
	}
	if c.Mongo.SwapsCollection == "" {
		c.Mongo.SwapsCollection = "swaps"
	}
	if c.Server.AppPort == 0 {
		c.Server.AppPort = 8080
	}
	if c.Server.SocketPort == 0 {
		c.Server.SocketPort = 8081
	}
	if c.Server.UploadsDir == "" {
		c.Server.UploadsDir = "uploads"
	}
}
