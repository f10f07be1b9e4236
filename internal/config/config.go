package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// communitySource weights crowd-sourced data that has no SourceConfig entry.
const communitySource = "Community"

type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Sources     SourcesConfig   `mapstructure:"sources"`
	Patch       PatchConfig     `mapstructure:"patch"`
	Features    FeaturesConfig  `mapstructure:"features"`
	Security    SecurityConfig  `mapstructure:"security"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	DatabaseURL string `mapstructure:"database_url"`
	MaxConns    int32  `mapstructure:"max_conns"`
}

type RedisConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type CacheConfig struct {
	AnalysisTTL time.Duration `mapstructure:"analysis_ttl"`
	ChampionTTL time.Duration `mapstructure:"champion_ttl"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
}

// SourceConfig is one upstream build/matchup site.
type SourceConfig struct {
	Name        string `mapstructure:"name"`
	URL         string `mapstructure:"url"`
	Reliability int    `mapstructure:"reliability"`
}

type SourcesConfig struct {
	Weights         map[string]float64 `mapstructure:"weights"`
	RefreshInterval time.Duration      `mapstructure:"refresh_interval"`
	List            []SourceConfig     `mapstructure:"list"`
}

type PatchConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	FeedURL        string        `mapstructure:"feed_url"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	InitialVersion string        `mapstructure:"initial_version"`
	InitialDate    string        `mapstructure:"initial_date"`
}

// ReleaseDate parses InitialDate; an empty or malformed date is zero.
func (p PatchConfig) ReleaseDate() time.Time {
	t, err := time.Parse("2006-01-02", p.InitialDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

type FeaturesConfig struct {
	FuzzySearch      bool `mapstructure:"fuzzy_search"`
	CounterPicks     bool `mapstructure:"counter_picks"`
	BuildAggregation bool `mapstructure:"build_aggregation"`
}

type SecurityConfig struct {
	AdminAPIKey string `mapstructure:"admin_api_key" json:"-" yaml:"-"`
}

type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("security.admin_api_key", "ADMIN_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind ADMIN_API_KEY environment variable: %w", err)
	}

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Normalize environment to lowercase for consistent comparison
	config.Environment = strings.ToLower(config.Environment)
	config.Sources.Weights = canonicalWeights(config.Sources.Weights, config.Sources.List)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks ranges and required secrets.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	for name, w := range c.Sources.Weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("source weight for %s must be between 0 and 1, got %v", name, w)
		}
	}

	durations := map[string]time.Duration{
		"cache.analysis_ttl":       c.Cache.AnalysisTTL,
		"cache.champion_ttl":       c.Cache.ChampionTTL,
		"sources.refresh_interval": c.Sources.RefreshInterval,
		"patch.poll_interval":      c.Patch.PollInterval,
		"patch.request_timeout":    c.Patch.RequestTimeout,
	}
	for key, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%s must be a positive duration, got %v", key, d)
		}
	}

	if c.Environment != "development" && c.Environment != "test" && c.Security.AdminAPIKey == "" {
		return errors.New("ADMIN_API_KEY environment variable is required in non-development environments")
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry sample ratio must be between 0 and 1, got %v", c.Telemetry.SampleRatio)
	}
	return nil
}

// canonicalWeights restores source name casing, which viper folds to lowercase.
func canonicalWeights(weights map[string]float64, sources []SourceConfig) map[string]float64 {
	names := []string{communitySource}
	for _, s := range sources {
		names = append(names, s.Name)
	}
	out := make(map[string]float64, len(weights))
	for key, w := range weights {
		name := key
		for _, n := range names {
			if strings.EqualFold(n, key) {
				name = n
				break
			}
		}
		out[name] = w
	}
	return out
}

// DSN builds a connection string from parts unless DatabaseURL is set.
func (d DatabaseConfig) DSN() string {
	if d.DatabaseURL != "" {
		return d.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")

	// Database
	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "riftcounter")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.database_url", "")
	viper.SetDefault("database.max_conns", 10)

	// Redis
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.dial_timeout", "5s")

	// Cache
	viper.SetDefault("cache.analysis_ttl", "30m")
	viper.SetDefault("cache.champion_ttl", "1h")
	viper.SetDefault("cache.key_prefix", "analysis:")

	// Sources
	viper.SetDefault("sources.weights", map[string]float64{
		"WildRiftFire":   1.0,
		"WR-META":        0.9,
		"WildRiftGuides": 0.8,
		"Community":      0.6,
	})
	viper.SetDefault("sources.refresh_interval", "24h")
	viper.SetDefault("sources.list", []map[string]interface{}{
		{"name": "WildRiftFire", "url": "https://wildriftfire.com", "reliability": 85},
		{"name": "WR-META", "url": "https://wr-meta.com", "reliability": 80},
		{"name": "WildRiftGuides", "url": "https://wildriftguides.gg", "reliability": 75},
	})

	// Patch watcher
	viper.SetDefault("patch.enabled", true)
	viper.SetDefault("patch.feed_url", "https://wildrift.leagueoflegends.com/en-us/news/")
	viper.SetDefault("patch.poll_interval", "6h")
	viper.SetDefault("patch.request_timeout", "15s")
	viper.SetDefault("patch.initial_version", "5.4")
	viper.SetDefault("patch.initial_date", "2025-12-01")

	// Features
	viper.SetDefault("features.fuzzy_search", true)
	viper.SetDefault("features.counter_picks", true)
	viper.SetDefault("features.build_aggregation", true)

	// Security
	viper.SetDefault("security.admin_api_key", "")

	// Telemetry
	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.otlp_endpoint", "")
	viper.SetDefault("telemetry.service_name", "riftcounter")
	viper.SetDefault("telemetry.sample_ratio", 1.0)
}
