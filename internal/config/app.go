package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type ExchangeRateAPI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

const (
	CatalogSourceStatic   = "static"
	CatalogSourcePostgres = "postgres"
)

type Catalog struct {
	Source string `mapstructure:"source"`
	// SeedDefaults upserts the built-in currency list into postgres at startup.
	SeedDefaults bool `mapstructure:"seed_defaults"`
}

type Session struct {
	DefaultSource string `mapstructure:"default_source"`
	DefaultTarget string `mapstructure:"default_target"`
	TTLMinutes    int    `mapstructure:"ttl_minutes"`
	MaxSessions   int64  `mapstructure:"max_sessions"`
}

type Connectivity struct {
	ProbeIntervalSec int `mapstructure:"probe_interval_sec"`
	ProbeTimeoutSec  int `mapstructure:"probe_timeout_sec"`
}

type Display struct {
	Locale string `mapstructure:"locale"`
}

type Assets struct {
	FlagURLTemplate string `mapstructure:"flag_url_template"`
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	DbServer        DbServer        `mapstructure:"db_server"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	Catalog         Catalog         `mapstructure:"catalog"`
	Session         Session         `mapstructure:"session"`
	Connectivity    Connectivity    `mapstructure:"connectivity"`
	Display         Display         `mapstructure:"display"`
	Assets          Assets          `mapstructure:"assets"`
	CORS            CORS            `mapstructure:"cors"`
	Logging         Logging         `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	return Load(".env", "config.yaml")
}

// Load reads envFile (optional) and configFile (optional) on top of built-in defaults.
func Load(envFile string, configFile string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	bindEnv(v)

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Session.DefaultSource = strings.ToUpper(strings.TrimSpace(cfg.Session.DefaultSource))
	cfg.Session.DefaultTarget = strings.ToUpper(strings.TrimSpace(cfg.Session.DefaultTarget))
	cfg.Catalog.Source = strings.ToLower(strings.TrimSpace(cfg.Catalog.Source))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *AppConfig) validate() error {
	if cfg.ExchangeRateAPI.APIKey == "" {
		return errors.New("exchange rate api key is required")
	}
	switch cfg.Catalog.Source {
	case CatalogSourceStatic, CatalogSourcePostgres:
	default:
		return fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
	if cfg.Session.DefaultSource == "" || cfg.Session.DefaultTarget == "" {
		return errors.New("default session currencies are required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("exchange_rate_api.base_url", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("catalog.source", CatalogSourceStatic)
	v.SetDefault("catalog.seed_defaults", false)
	v.SetDefault("session.default_source", "USD")
	v.SetDefault("session.default_target", "PHP")
	v.SetDefault("session.ttl_minutes", 60)
	v.SetDefault("session.max_sessions", 10000)
	v.SetDefault("connectivity.probe_interval_sec", 15)
	v.SetDefault("connectivity.probe_timeout_sec", 3)
	v.SetDefault("display.locale", "en")
	v.SetDefault("assets.flag_url_template", "https://flagsapi.com/%s/flat/64.png")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("logging.level", "info")
}

func bindEnv(v *viper.Viper) {
	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// exchange rate api env vars
	_ = v.BindEnv("exchange_rate_api.base_url", "EXCHANGE_RATE_API_BASE_URL")
	_ = v.BindEnv("exchange_rate_api.api_key", "EXCHANGE_RATE_API_KEY")

	_ = v.BindEnv("catalog.source", "CATALOG_SOURCE")
	_ = v.BindEnv("catalog.seed_defaults", "CATALOG_SEED_DEFAULTS")
	_ = v.BindEnv("session.default_source", "SESSION_DEFAULT_SOURCE")
	_ = v.BindEnv("session.default_target", "SESSION_DEFAULT_TARGET")
	_ = v.BindEnv("session.ttl_minutes", "SESSION_TTL_MINUTES")
	_ = v.BindEnv("session.max_sessions", "SESSION_MAX_SESSIONS")
	_ = v.BindEnv("display.locale", "DISPLAY_LOCALE")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
}
