package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pracazumbi/presenca-api/internal/ingest"
)

var (
	errMissingPostgres = errors.New("postgres settings are required when source.kind is postgres")
	errMissingCSVPath  = errors.New("source.csv_path is required when source.kind is csv")
	errLongSeparator   = errors.New("must be a single character")
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type AppConfig struct {
	API       *APIConfig       `mapstructure:"api"`
	Gin       *GinConfig       `mapstructure:"gin"`
	Postgres  *PostgresConfig  `mapstructure:"postgres"`
	Source    *SourceConfig    `mapstructure:"source"`
	Dashboard *DashboardConfig `mapstructure:"dashboard"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	LogLevel           string   `mapstructure:"log_level"`
	BaseURL            string   `mapstructure:"base_url"`
	Port               string   `mapstructure:"port"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

// SourceConfig selects where attendance is read from. With SkipMalformed
// the csv source logs and drops unreadable rows instead of failing every
// request.
type SourceConfig struct {
	Kind          string `mapstructure:"kind"`
	CSVPath       string `mapstructure:"csv_path"`
	Separator     string `mapstructure:"separator"`
	Encoding      string `mapstructure:"encoding"`
	Dedupe        bool   `mapstructure:"dedupe"`
	SkipMalformed bool   `mapstructure:"skip_malformed"`
}

type DashboardConfig struct {
	DefaultLimit           int     `mapstructure:"default_limit"`
	MaxLimit               int     `mapstructure:"max_limit"`
	RankingSize            int     `mapstructure:"ranking_size"`
	EncouragementThreshold float64 `mapstructure:"encouragement_threshold"`
	Signature              string  `mapstructure:"signature"`
}

func (c *PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, sslMode)
}

// SeparatorRune returns the first rune of the configured separator, or 0 to let
// the reader pick its default.
func (c *SourceConfig) SeparatorRune() rune {
	for _, r := range c.Separator {
		return r
	}
	return 0
}

func (c *AppConfig) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.API, validation.Required),
		validation.Field(&c.Gin, validation.Required),
		validation.Field(&c.Source, validation.Required),
		validation.Field(&c.Dashboard, validation.Required),
	)
	if err != nil {
		return err
	}

	if c.Source.Kind == SourcePostgres && c.Postgres == nil {
		return errMissingPostgres
	}

	return nil
}

func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Environment, validation.Required, validation.In("development", "test", "production")),
		validation.Field(&c.Port, validation.Required),
	)
}

func (c *GinConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In("debug", "release", "test")),
	)
}

func (c *SourceConfig) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Kind, validation.Required, validation.In(SourceCSV, SourcePostgres)),
		validation.Field(&c.Separator, validation.By(singleRune)),
		validation.Field(&c.Encoding, validation.By(knownEncoding)),
	)
	if err != nil {
		return err
	}

	if c.Kind == SourceCSV && c.CSVPath == "" {
		return errMissingCSVPath
	}

	return nil
}

func singleRune(value interface{}) error {
	s, _ := value.(string)
	if utf8.RuneCountInString(s) > 1 {
		return errLongSeparator
	}
	return nil
}

func knownEncoding(value interface{}) error {
	s, _ := value.(string)
	if !ingest.KnownEncoding(s) {
		return fmt.Errorf("must be one of %s", strings.Join(ingest.Encodings(), ", "))
	}
	return nil
}

func (c *DashboardConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultLimit, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxLimit, validation.Required, validation.Min(c.DefaultLimit)),
		validation.Field(&c.RankingSize, validation.Required, validation.Min(1)),
		validation.Field(&c.EncouragementThreshold, validation.Min(0.0), validation.Max(100.0)),
	)
}

var (
	mu sync.Mutex
	v  *viper.Viper
)

func Load(path string) (*AppConfig, error) {
	mu.Lock()
	defer mu.Unlock()

	v = viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	return unmarshal(v)
}

// Watch reloads the configuration file whenever it changes on disk and
// hands the new, validated configuration to onChange. Invalid edits are
// logged and ignored.
func Watch(onChange func(*AppConfig)) {
	mu.Lock()
	defer mu.Unlock()

	if v == nil {
		return
	}

	current := v
	current.OnConfigChange(func(e fsnotify.Event) {
		conf, err := unmarshal(current)
		if err != nil {
			zap.L().Warn("ignoring invalid config change", zap.String("file", e.Name), zap.Error(err))
			return
		}

		zap.L().Info("config reloaded", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		onChange(conf)
	})
	current.WatchConfig()
}

func unmarshal(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("conf.Validate -> %w", err)
	}

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.log_level", "info")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.allowed_cors_domains", []string{})
	v.SetDefault("gin.mode", "debug")
	// Every key needs a default for AutomaticEnv to reach it in Unmarshal.
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("source.kind", SourceCSV)
	v.SetDefault("source.csv_path", "")
	v.SetDefault("source.dedupe", false)
	v.SetDefault("source.skip_malformed", true)
	v.SetDefault("source.separator", ";")
	v.SetDefault("source.encoding", "utf-8")
	v.SetDefault("dashboard.default_limit", 10)
	v.SetDefault("dashboard.max_limit", 20)
	v.SetDefault("dashboard.ranking_size", 10)
	v.SetDefault("dashboard.encouragement_threshold", 40)
	v.SetDefault("dashboard.signature", "Professora")
}
