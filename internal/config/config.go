package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"github.com/kozaktomas/name-that-face/internal/constants"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Location LocationConfig
	Backup   BackupConfig
	Web      WebConfig
	Policy   PolicyConfig
}

type DatabaseConfig struct {
	Driver       string // sqlite (default), postgres or mariadb
	URL          string // file path for sqlite, connection URL for postgres, DSN for mariadb
	MaxOpenConns int    // Maximum open connections (default 10)
	MaxIdleConns int    // Maximum idle connections (default 2)
}

type AuthConfig struct {
	PassphraseHash string // bcrypt hash, see `name-that-face passphrase`
}

// LocationConfig holds a fixed location fix. Both values must be set for it to be used.
type LocationConfig struct {
	Latitude  *float64
	Longitude *float64
}

type BackupConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string // defaults to name-that-face
	UseSSL    bool
}

type WebConfig struct {
	Host           string   // defaults to 127.0.0.1
	Port           int      // defaults to 8080
	AllowedOrigins []string // extra CORS origins, localhost is always allowed
}

type PolicyConfig struct {
	Picker PickerPolicy `yaml:"picker"`
	Auth   AuthMessages `yaml:"auth"`
}

type PickerPolicy struct {
	Exclude    []string `yaml:"exclude"`
	Extensions []string `yaml:"extensions"`
}

type AuthMessages struct {
	Unavailable string `yaml:"unavailable"`
	Failed      string `yaml:"failed"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an optional float environment variable. Returns nil if unset or invalid.
func envFloat(key string) *float64 {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// envString returns the env var or the default when it is empty.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envBool treats "1", "true" and "yes" (any case) as true.
func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// envList splits a comma-separated env var, dropping empty items.
func envList(key string) []string {
	var out []string
	for item := range strings.SplitSeq(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// LoadPolicy parses the embedded policy defaults.
func LoadPolicy() PolicyConfig {
	var policy PolicyConfig
	if err := yaml.Unmarshal(defaultsYAML, &policy); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}
	return policy
}

func Load() *Config {
	driver := strings.ToLower(envString("DATABASE_DRIVER", "sqlite"))
	url := os.Getenv("DATABASE_URL")
	if url == "" && driver == "sqlite" {
		url = constants.DefaultSQLitePath
	}

	return &Config{
		Database: DatabaseConfig{
			Driver:       driver,
			URL:          url,
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 2),
		},
		Auth: AuthConfig{
			PassphraseHash: os.Getenv("FACES_PASSPHRASE_HASH"),
		},
		Location: LocationConfig{
			Latitude:  envFloat("FACES_LATITUDE"),
			Longitude: envFloat("FACES_LONGITUDE"),
		},
		Backup: BackupConfig{
			Endpoint:  os.Getenv("BACKUP_ENDPOINT"),
			AccessKey: os.Getenv("BACKUP_ACCESS_KEY"),
			SecretKey: os.Getenv("BACKUP_SECRET_KEY"),
			Bucket:    envString("BACKUP_BUCKET", "name-that-face"),
			UseSSL:    envBool("BACKUP_USE_SSL"),
		},
		Web: WebConfig{
			Host:           envString("WEB_HOST", "127.0.0.1"),
			Port:           envInt("WEB_PORT", 8080),
			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
		},
		Policy: LoadPolicy(),
	}
}
