package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Embedding struct {
		Provider       string `yaml:"provider"` // gemini, mock
		APIKey         string `yaml:"api_key"`
		BaseURL        string `yaml:"base_url"`
		Model          string `yaml:"model"`
		Dimension      int    `yaml:"dimension"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"embedding"`

	Matching struct {
		// BestMatchThreshold splits semantic matches into best/other. Tuned
		// empirically, a product decision rather than a derived constant.
		BestMatchThreshold float64 `yaml:"best_match_threshold"`
		CandidateLimit     int     `yaml:"candidate_limit"`
	} `yaml:"matching"`

	Worker struct {
		EmbeddingBackfillMinutes int `yaml:"embedding_backfill_minutes"`
	} `yaml:"worker"`

	SeedDemoData bool `yaml:"seed_demo_data"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Environment-variable mode (tests, containers).
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))

	cfg.Embedding.Provider = os.Getenv("EMBEDDING_PROVIDER")
	cfg.Embedding.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.SeedDemoData = os.Getenv("SEED_DEMO_DATA") == "true"

	if threshold := os.Getenv("BEST_MATCH_THRESHOLD"); threshold != "" {
		if v, err := strconv.ParseFloat(threshold, 64); err == nil {
			cfg.Matching.BestMatchThreshold = v
		}
	}

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "mock"
	}
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "gemini-embedding-001"
	}
	if cfg.Embedding.Dimension == 0 {
		cfg.Embedding.Dimension = 768
	}
	if cfg.Embedding.TimeoutSeconds == 0 {
		cfg.Embedding.TimeoutSeconds = 15
	}
	if cfg.Matching.BestMatchThreshold == 0 {
		cfg.Matching.BestMatchThreshold = 0.57
	}
	if cfg.Matching.CandidateLimit == 0 {
		cfg.Matching.CandidateLimit = 50
	}
	if cfg.Worker.EmbeddingBackfillMinutes == 0 {
		cfg.Worker.EmbeddingBackfillMinutes = 60
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
