package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds server and interview settings. Values come from an optional
// YAML file first, then environment variables override.
type Config struct {
	Port          string `yaml:"port"`
	MongoURI      string `yaml:"mongoUri"`
	MongoDatabase string `yaml:"mongoDatabase"`
	RedisURI      string `yaml:"redisUri"`

	MinQuestions       int `yaml:"minQuestions"`
	MaxQuestions       int `yaml:"maxQuestions"`
	MaxDomainQuestions int `yaml:"maxDomainQuestions"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Port:               "8080",
		MongoDatabase:      "stressdost",
		MinQuestions:       3,
		MaxQuestions:       6,
		MaxDomainQuestions: 2,
	}
}

// Load builds the configuration from an optional YAML file (CONFIG_FILE, or
// ./config.yaml when present) with environment overrides on top.
func Load() *Config {
	cfg := Default()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Printf("Warning: invalid config file %s: %v", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("MONGO_DATABASE"); v != "" {
		cfg.MongoDatabase = v
	}
	if v := os.Getenv("REDIS_URI"); v != "" {
		cfg.RedisURI = v
	}
	cfg.MinQuestions = envInt("MIN_QUESTIONS", cfg.MinQuestions)
	cfg.MaxQuestions = envInt("MAX_QUESTIONS", cfg.MaxQuestions)
	cfg.MaxDomainQuestions = envInt("MAX_DOMAIN_QUESTIONS", cfg.MaxDomainQuestions)

	return cfg
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}
