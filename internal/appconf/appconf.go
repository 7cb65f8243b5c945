// Package appconf holds application configuration and the logic to build it
// from JSON config files, .env files, and environment variables.
package appconf

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment identifies which mode the application runs in.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// EnvFromString converts a string like "production" to an Environment.
// Unknown values map to Development.
func EnvFromString(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// String returns the lowercase name of the environment.
func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// Config holds the runtime settings for the application.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	Verbose   bool
	RateLimit int

	// Data inputs
	CitiesPath   string
	StationsPath string
	GTFSDir      string
	GTFSURL      string
	ScoringPath  string
}

// JSONConfig mirrors the on-disk JSON configuration file.
type JSONConfig struct {
	Port         int      `json:"port" validate:"required,min=1,max=65535"`
	Env          string   `json:"env" validate:"omitempty,oneof=development test production prod"`
	ApiKeys      []string `json:"api-keys"`
	Verbose      bool     `json:"verbose"`
	RateLimit    int      `json:"rate-limit" validate:"omitempty,min=1"`
	CitiesPath   string   `json:"cities-path"`
	StationsPath string   `json:"stations-path"`
	GTFSDir      string   `json:"gtfs-dir"`
	GTFSURL      string   `json:"gtfs-url"`
	ScoringPath  string   `json:"scoring-path"`
}

// LoadFromFile reads and validates a JSON config file.
func LoadFromFile(path string) (*JSONConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg JSONConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ToAppConfig converts the JSON form into the runtime Config.
func (j *JSONConfig) ToAppConfig() Config {
	rateLimit := j.RateLimit
	if rateLimit == 0 {
		rateLimit = 100
	}
	return Config{
		Port:         j.Port,
		Env:          EnvFromString(j.Env),
		ApiKeys:      j.ApiKeys,
		Verbose:      j.Verbose,
		RateLimit:    rateLimit,
		CitiesPath:   j.CitiesPath,
		StationsPath: j.StationsPath,
		GTFSDir:      j.GTFSDir,
		GTFSURL:      j.GTFSURL,
		ScoringPath:  j.ScoringPath,
	}
}

// LoadDotEnv loads a .env file into the process environment when present.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// FromEnv builds a Config from environment variables, applying defaults
// where variables are unset.
func FromEnv() Config {
	return Config{
		Port:         envInt("CHEMINOT_PORT", 4000),
		Env:          EnvFromString(os.Getenv("CHEMINOT_ENV")),
		ApiKeys:      splitKeys(os.Getenv("CHEMINOT_API_KEYS")),
		Verbose:      envBool("CHEMINOT_VERBOSE"),
		RateLimit:    envInt("CHEMINOT_RATE_LIMIT", 100),
		CitiesPath:   os.Getenv("CHEMINOT_CITIES_PATH"),
		StationsPath: os.Getenv("CHEMINOT_STATIONS_PATH"),
		GTFSDir:      os.Getenv("CHEMINOT_GTFS_DIR"),
		GTFSURL:      os.Getenv("CHEMINOT_GTFS_URL"),
		ScoringPath:  os.Getenv("CHEMINOT_SCORING_PATH"),
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func splitKeys(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
