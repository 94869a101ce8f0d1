package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

// Geometry sources.
const (
	GeometryIBGE      = "ibge"
	GeometryFile      = "file"
	GeometryFirestore = "firestore"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port               string
	GinMode            string
	LogLevel           string
	DataFile           string
	GeometrySource     string
	GeometryFile       string
	IBGEBaseURL        string
	GeometryCollection string
	StateAliases       util.AliasTable

	FirebaseProjectID   string
	FirebaseCredsBase64 string
	FirebaseCredsFile   string
	AllowedOrigins      string
}

// Load reads environment variables into a Config with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "release"),
		LogLevel:            strings.ToLower(getEnv("LOG_LEVEL", "info")),
		DataFile:            getEnv("DATA_FILE", "educacao_internet_brasil_2018_2025.csv"),
		GeometrySource:      strings.ToLower(getEnv("GEOMETRY_SOURCE", GeometryIBGE)),
		GeometryFile:        strings.TrimSpace(os.Getenv("GEOMETRY_FILE")),
		IBGEBaseURL:         getEnv("IBGE_BASE_URL", "https://servicodados.ibge.gov.br/api"),
		GeometryCollection:  getEnv("GEOMETRY_COLLECTION", "state_geometries"),
		FirebaseProjectID:   strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")),
		FirebaseCredsBase64: strings.TrimSpace(os.Getenv("FIREBASE_CREDS_BASE64")),
		FirebaseCredsFile:   strings.TrimSpace(os.Getenv("FIREBASE_CREDS_FILE")),
		AllowedOrigins:      strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")),
	}

	extra, err := util.ParseAliases(os.Getenv("STATE_ALIASES"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATE_ALIASES: %w", err)
	}
	cfg.StateAliases = util.DefaultStateAliases.Merge(extra)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DataFile == "" {
		return errors.New("DATA_FILE is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}
	switch c.GeometrySource {
	case GeometryIBGE:
		if c.IBGEBaseURL == "" {
			return errors.New("IBGE_BASE_URL is required for the ibge geometry source")
		}
	case GeometryFile:
		if c.GeometryFile == "" {
			return errors.New("GEOMETRY_FILE is required for the file geometry source")
		}
	case GeometryFirestore:
		if err := c.ValidateFirestore(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("GEOMETRY_SOURCE %q must be one of: ibge, file, firestore", c.GeometrySource)
	}
	return nil
}

// ValidateFirestore checks the settings needed to open a Firestore client.
func (c Config) ValidateFirestore() error {
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.FirebaseCredsBase64 == "" && c.FirebaseCredsFile == "" {
		return errors.New("provide FIREBASE_CREDS_BASE64 or FIREBASE_CREDS_FILE for Firestore auth")
	}
	if c.GeometryCollection == "" {
		return errors.New("GEOMETRY_COLLECTION is required")
	}
	return nil
}

// FirebaseCredentialsJSON returns the service account JSON bytes and the source used.
func (c Config) FirebaseCredentialsJSON() ([]byte, string, error) {
	if c.FirebaseCredsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.FirebaseCredsBase64)
		if err != nil {
			return nil, "base64", fmt.Errorf("decode FIREBASE_CREDS_BASE64: %w", err)
		}
		return decoded, "base64", nil
	}
	if c.FirebaseCredsFile != "" {
		data, err := os.ReadFile(c.FirebaseCredsFile)
		if err != nil {
			return nil, "file", fmt.Errorf("read FIREBASE_CREDS_FILE: %w", err)
		}
		return data, "file", nil
	}
	return nil, "", errors.New("no firebase credentials found")
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}
