package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	LLM        LLMConfig
	Generation GenerationConfig
	RateLimit  RateLimitConfig
	Cache      CacheConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LLMConfig struct {
	// Provider selects the langchaingo backend: "openai" or "ollama".
	Provider  string
	APIKey    string
	ServerURL string
	Model     string
	MaxTokens int
}

type GenerationConfig struct {
	MaxRetries        int
	MinInterval       time.Duration
	AttemptTimeout    time.Duration
	ChunkTokens       int
	MaxItems          int
	MaterialMinLength int
	MaterialMaxLength int
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type CacheConfig struct {
	TTL      time.Duration
	Capacity int
}

type LoggerConfig struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; defaults plus env vars are enough to run.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			Provider:  viper.GetString("llm.provider"),
			APIKey:    viper.GetString("llm.api_key"),
			ServerURL: viper.GetString("llm.server_url"),
			Model:     viper.GetString("llm.model"),
			MaxTokens: viper.GetInt("llm.max_tokens"),
		},
		Generation: GenerationConfig{
			MaxRetries:        viper.GetInt("generation.max_retries"),
			MinInterval:       viper.GetDuration("generation.min_interval_ms") * time.Millisecond,
			AttemptTimeout:    viper.GetDuration("generation.attempt_timeout") * time.Second,
			ChunkTokens:       viper.GetInt("generation.chunk_tokens"),
			MaxItems:          viper.GetInt("generation.max_items"),
			MaterialMinLength: viper.GetInt("generation.material_min_length"),
			MaterialMaxLength: viper.GetInt("generation.material_max_length"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: viper.GetInt("rate_limit.requests_per_minute"),
		},
		Cache: CacheConfig{
			TTL:      viper.GetDuration("cache.ttl_hours") * time.Hour,
			Capacity: viper.GetInt("cache.capacity"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if serverURL := os.Getenv("LLM_SERVER"); serverURL != "" {
		config.LLM.ServerURL = serverURL
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 120)
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.max_tokens", 4096)
	viper.SetDefault("generation.max_retries", 3)
	viper.SetDefault("generation.min_interval_ms", 500)
	viper.SetDefault("generation.attempt_timeout", 60)
	viper.SetDefault("generation.chunk_tokens", 2000)
	viper.SetDefault("generation.max_items", 10)
	viper.SetDefault("generation.material_min_length", 100)
	viper.SetDefault("generation.material_max_length", 50000)
	viper.SetDefault("rate_limit.requests_per_minute", 10)
	viper.SetDefault("cache.ttl_hours", 24)
	viper.SetDefault("cache.capacity", 500)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
}
