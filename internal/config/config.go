package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
)

var Config *ServerConfig

type SourceKind string

const (
	SourceFixture   SourceKind = "fixture"
	SourceFirestore SourceKind = "firestore"
)

// ServerConfig is a struct that contains configuration values for the server.
type ServerConfig struct {
	// AllowedOrigins is a list of URLs that the server will accept requests from.
	AllowedOrigins []string `env:"CURRICULUM_ALLOWED_ORIGINS" envSeparator:","`
	// Port is the port the server should run on.
	Port int `env:"CURRICULUM_PORT"`
	// Source selects where courses are loaded from at the start of a session.
	Source SourceKind `env:"CURRICULUM_SOURCE"`
	// FixturePath is the YAML file read when Source is "fixture".
	FixturePath string `env:"CURRICULUM_FIXTURE_PATH"`
	// FirebaseProjectID and FirebaseCredentialsFile configure the Firestore source. An empty
	// credentials file means application default credentials.
	FirebaseProjectID       string `env:"CURRICULUM_FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `env:"CURRICULUM_FIREBASE_CREDENTIALS"`
	// NotificationBuffer caps how many undelivered notifications a session keeps.
	NotificationBuffer int `env:"CURRICULUM_NOTIFICATION_BUFFER"`
}

func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		AllowedOrigins:          []string{"http://localhost:3000"},
		Port:                    8080,
		Source:                  SourceFixture,
		FixturePath:             "fixtures/curriculum.yaml",
		FirebaseCredentialsFile: "firebase-config.json",
		NotificationBuffer:      100,
	}
}

// Load returns the default configuration overridden by any CURRICULUM_* environment variables, and
// installs it as Config.
func Load() (*ServerConfig, error) {
	cfg := DefaultConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.Source {
	case SourceFixture, SourceFirestore:
	default:
		return nil, fmt.Errorf("unknown course source %q", cfg.Source)
	}
	if cfg.NotificationBuffer <= 0 {
		return nil, fmt.Errorf("notification buffer must be positive, got %d", cfg.NotificationBuffer)
	}

	Config = cfg
	return cfg, nil
}

func init() {
	log.Println("🙂️ No configuration provided. Using the default configuration.")
	Config = DefaultConfig()
}
