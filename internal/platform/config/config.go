package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config es toda la configuración del servicio. Se arma con defaults +
// archivo opcional (--config) + variables de entorno (ganan las env).
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string
	AppName   string

	DBDriver  string // memory | postgres | sqlite
	DBDSN     string
	DBMigrate bool

	AssetsDriver        string // memory | fs | s3
	AssetsBucket        string
	AssetsPublicBaseURL string
	AssetsFSRoot        string

	S3Region    string
	S3Endpoint  string
	S3PathStyle bool

	// AuthBaseURL vacío => modo dev (X-Debug-User-ID).
	AuthBaseURL string
	AuthAPIKey  string

	PetsRequireImage bool

	SweepGrace  time.Duration
	SweepPrefix string
}

var defaults = map[string]any{
	"PORT":                   "8080",
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "text",
	"APP_NAME":               "pet-social",
	"DB_DRIVER":              "memory",
	"DB_DSN":                 "",
	"DB_MIGRATE":             false,
	"ASSETS_DRIVER":          "memory",
	"ASSETS_BUCKET":          "pet-profiles",
	"ASSETS_PUBLIC_BASE_URL": "",
	"ASSETS_FS_ROOT":         "./data/assets",
	"S3_REGION":              "us-east-1",
	"S3_ENDPOINT":            "",
	"S3_PATH_STYLE":          false,
	"AUTH_BASE_URL":          "",
	"AUTH_API_KEY":           "",
	"PETS_REQUIRE_IMAGE":     true,
	"SWEEP_GRACE":            "1h",
	"SWEEP_PREFIX":           "",
}

// Load lee la configuración. configFile puede ser "" (solo env + defaults).
func Load(configFile string) (Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	if configFile = strings.TrimSpace(configFile); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := Config{
		Port:                v.GetString("PORT"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
		AppName:             v.GetString("APP_NAME"),
		DBDriver:            strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DBDSN:               v.GetString("DB_DSN"),
		DBMigrate:           v.GetBool("DB_MIGRATE"),
		AssetsDriver:        strings.ToLower(strings.TrimSpace(v.GetString("ASSETS_DRIVER"))),
		AssetsBucket:        v.GetString("ASSETS_BUCKET"),
		AssetsPublicBaseURL: strings.TrimSpace(v.GetString("ASSETS_PUBLIC_BASE_URL")),
		AssetsFSRoot:        v.GetString("ASSETS_FS_ROOT"),
		S3Region:            v.GetString("S3_REGION"),
		S3Endpoint:          strings.TrimSpace(v.GetString("S3_ENDPOINT")),
		S3PathStyle:         v.GetBool("S3_PATH_STYLE"),
		AuthBaseURL:         strings.TrimSpace(v.GetString("AUTH_BASE_URL")),
		AuthAPIKey:          v.GetString("AUTH_API_KEY"),
		PetsRequireImage:    v.GetBool("PETS_REQUIRE_IMAGE"),
		SweepGrace:          v.GetDuration("SWEEP_GRACE"),
		SweepPrefix:         v.GetString("SWEEP_PREFIX"),
	}

	if cfg.AssetsPublicBaseURL == "" && cfg.AssetsDriver != "s3" {
		cfg.AssetsPublicBaseURL = "http://localhost:" + cfg.Port + "/assets"
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AuthEnabled indica si hay verifier real (si no, modo dev).
func (c Config) AuthEnabled() bool { return c.AuthBaseURL != "" }

func (c Config) validate() error {
	var errs []error

	switch c.DBDriver {
	case "memory":
	case "postgres", "sqlite":
		if c.DBDriver == "postgres" && strings.TrimSpace(c.DBDSN) == "" {
			errs = append(errs, errors.New("DB_DSN is required for DB_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver))
	}

	switch c.AssetsDriver {
	case "memory", "fs":
	case "s3":
		if strings.TrimSpace(c.AssetsBucket) == "" {
			errs = append(errs, errors.New("ASSETS_BUCKET is required for ASSETS_DRIVER=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ASSETS_DRIVER %q", c.AssetsDriver))
	}

	if c.AuthBaseURL != "" && strings.TrimSpace(c.AuthAPIKey) == "" {
		errs = append(errs, errors.New("AUTH_API_KEY is required when AUTH_BASE_URL is set"))
	}
	if c.SweepGrace < 0 {
		errs = append(errs, errors.New("SWEEP_GRACE must not be negative"))
	}

	return errors.Join(errs...)
}
